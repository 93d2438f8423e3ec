package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"novatrend/internal/model"
)

type RecordSource interface {
	Records(ctx context.Context, category string, region model.Region) []model.AnalyzedRecord
}

type NewsHandler struct {
	source RecordSource
}

func NewNewsHandler(source RecordSource) *NewsHandler {
	return &NewsHandler{source: source}
}

func (h *NewsHandler) GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "NovaTrend API",
		"docs":    "/api/docs",
	})
}

func (h *NewsHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "NovaTrend API",
	})
}

func (h *NewsHandler) GetStockNews(c *gin.Context) {
	region := model.Region(c.Query("region"))
	if region != model.RegionNone && !region.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid region"})
		return
	}

	h.list(c, model.CategoryStock, region, nil)
}

func (h *NewsHandler) GetCryptoNews(c *gin.Context) {
	h.list(c, model.CategoryCrypto, model.RegionNone, nil)
}

func (h *NewsHandler) GetKpopNews(c *gin.Context) {
	var match func(model.AnalyzedRecord) bool
	if idol := strings.TrimSpace(c.Query("idol")); idol != "" {
		match = mentions(idol)
	}

	h.list(c, model.CategoryKpop, model.RegionNone, match)
}

func (h *NewsHandler) list(c *gin.Context, category string, region model.Region, match func(model.AnalyzedRecord) bool) {
	grade := model.Grade(c.Query("grade"))
	if grade != "" && !grade.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid grade"})
		return
	}

	page := getQueryPage(c)
	limit := getQueryLimit(c)

	var filtered []model.AnalyzedRecord
	for _, r := range h.source.Records(c.Request.Context(), category, region) {
		if grade != "" && r.Grade != grade {
			continue
		}
		if match != nil && !match(r) {
			continue
		}
		filtered = append(filtered, r)
	}

	items := []NewsItemResponse{}
	for _, r := range paginate(filtered, page, limit) {
		items = append(items, toNewsItemResponse(r))
	}

	c.JSON(http.StatusOK, NewsListResponse{
		Items: items,
		Total: len(filtered),
		Page:  page,
		Limit: limit,
	})
}

// mentions matches records whose keywords or headline contain term,
// ignoring case.
func mentions(term string) func(model.AnalyzedRecord) bool {
	term = strings.ToLower(term)
	return func(r model.AnalyzedRecord) bool {
		if strings.Contains(strings.ToLower(r.Headline), term) {
			return true
		}
		return strings.Contains(strings.ToLower(strings.Join(r.Keywords, " ")), term)
	}
}
