package news

import (
	"context"
	"time"
)

type Article struct {
	Title       string
	Description string
	Link        string
	Source      string
	PublishedAt time.Time
	// Confidence is the provider's relevance of the article to the query,
	// 0 when the provider reports none.
	Confidence float64
}

// Searcher returns up to count articles matching query. A searcher without
// credentials returns an empty list and no error.
type Searcher interface {
	Search(ctx context.Context, query string, count int) ([]Article, error)
	Name() string
}
