package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"novatrend/pkg/feargreed"
)

type FearGreedSource interface {
	Index(ctx context.Context) (feargreed.Index, error)
}

type MarketHandler struct {
	fearGreed FearGreedSource
	now       func() time.Time
}

func NewMarketHandler(fearGreed FearGreedSource) *MarketHandler {
	return &MarketHandler{fearGreed: fearGreed, now: time.Now}
}

// GetFearGreed answers with a neutral index when the upstream fails.
func (h *MarketHandler) GetFearGreed(c *gin.Context) {
	idx, err := h.fearGreed.Index(c.Request.Context())
	if err != nil {
		slog.Error("error fetching fear greed index", "error", err)
		idx = feargreed.Neutral(h.now())
	}

	updated := idx.UpdatedAt
	if updated.IsZero() {
		updated = h.now()
	}

	c.JSON(http.StatusOK, FearGreedResponse{
		Value:         idx.Value,
		Label:         feargreed.Label(idx.Value),
		PreviousClose: idx.Previous,
		LastUpdated:   updated.Format(time.RFC3339),
	})
}
