// Package feargreed reads the crypto Fear & Greed Index from alternative.me.
package feargreed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

const defaultURL = "https://api.alternative.me/fng/?limit=2"

const (
	LabelExtremeFear  = "extreme fear"
	LabelFear         = "fear"
	LabelNeutral      = "neutral"
	LabelGreed        = "greed"
	LabelExtremeGreed = "extreme greed"
)

// Label buckets an index value. Ranges are half-open except the last:
// [0,25) [25,45) [45,55) [55,75) [75,100].
func Label(value int) string {
	switch {
	case value < 25:
		return LabelExtremeFear
	case value < 45:
		return LabelFear
	case value < 55:
		return LabelNeutral
	case value < 75:
		return LabelGreed
	default:
		return LabelExtremeGreed
	}
}

type Index struct {
	Value     int
	Previous  *int
	UpdatedAt time.Time
}

// Neutral is served when the index cannot be fetched.
func Neutral(now time.Time) Index {
	return Index{Value: 50, UpdatedAt: now}
}

type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		url:        defaultURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Index returns the latest value and, when reported, the one before it.
func (c *Client) Index(ctx context.Context) (Index, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Index{}, fmt.Errorf("fear greed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Index{}, fmt.Errorf("fear greed fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Index{}, fmt.Errorf("fear greed fetch: status %d", resp.StatusCode)
	}

	var raw fngResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Index{}, fmt.Errorf("fear greed decode: %w", err)
	}
	if len(raw.Data) == 0 {
		return Index{}, fmt.Errorf("fear greed: empty data")
	}

	value, err := raw.Data[0].value()
	if err != nil {
		return Index{}, err
	}

	idx := Index{Value: value}
	if ts, err := strconv.ParseInt(raw.Data[0].Timestamp, 10, 64); err == nil {
		idx.UpdatedAt = time.Unix(ts, 0).UTC()
	}
	if len(raw.Data) > 1 {
		if prev, err := raw.Data[1].value(); err == nil {
			idx.Previous = &prev
		}
	}

	return idx, nil
}

type fngResponse struct {
	Data []fngEntry `json:"data"`
}

type fngEntry struct {
	Value     string `json:"value"`
	Timestamp string `json:"timestamp"`
}

func (e fngEntry) value() (int, error) {
	v, err := strconv.Atoi(e.Value)
	if err != nil {
		return 0, fmt.Errorf("fear greed value %q: %w", e.Value, err)
	}
	if v < 0 || v > 100 {
		return 0, fmt.Errorf("fear greed value %d out of range", v)
	}
	return v, nil
}
