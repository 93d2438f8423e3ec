package handler

import (
	"time"

	"novatrend/internal/model"
)

type NewsItemResponse struct {
	ID          string   `json:"id"`
	Headline    string   `json:"headline"`
	Summary     string   `json:"summary"`
	Source      string   `json:"source"`
	URL         string   `json:"url"`
	Grade       string   `json:"grade"`
	Confidence  float64  `json:"confidence"`
	PublishedAt string   `json:"published_at"`
	Region      *string  `json:"region"`
	Keywords    []string `json:"keywords"`
}

type NewsListResponse struct {
	Items []NewsItemResponse `json:"items"`
	Total int                `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type FearGreedResponse struct {
	Value         int    `json:"value"`
	Label         string `json:"label"`
	PreviousClose *int   `json:"previous_close"`
	LastUpdated   string `json:"last_updated"`
}

func toNewsItemResponse(r model.AnalyzedRecord) NewsItemResponse {
	item := NewsItemResponse{
		ID:          r.ID,
		Headline:    r.Headline,
		Summary:     r.Summary,
		Source:      r.Source,
		URL:         r.URL,
		Grade:       string(r.Grade),
		Confidence:  r.Confidence,
		PublishedAt: r.PublishedAt.Format(time.RFC3339),
		Keywords:    r.Keywords,
	}
	if r.Region != model.RegionNone {
		region := string(r.Region)
		item.Region = &region
	}
	if item.Keywords == nil {
		item.Keywords = []string{}
	}
	return item
}
