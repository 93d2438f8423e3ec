package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"novatrend/internal/metrics"
	"novatrend/internal/model"
	"novatrend/pkg/news"
)

// Collector runs every query of a feed against one searcher. A failed query
// contributes no records and never aborts the others.
type Collector struct {
	Concurrency int
	Timeout     time.Duration
}

// Collect returns the records of all queries, grouped in query order.
func (c Collector) Collect(ctx context.Context, searcher news.Searcher, queries []string, perQuery int) []model.RawRecord {
	results := make([][]model.RawRecord, len(queries))

	var g errgroup.Group
	if c.Concurrency > 0 {
		g.SetLimit(c.Concurrency)
	}

	for i, query := range queries {
		g.Go(func() error {
			results[i] = c.search(ctx, searcher, query, perQuery)
			return nil
		})
	}
	g.Wait()

	var all []model.RawRecord
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}

func (c Collector) search(ctx context.Context, searcher news.Searcher, query string, perQuery int) []model.RawRecord {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	articles, err := searcher.Search(ctx, query, perQuery)
	if err != nil {
		slog.Warn("search failed", "source", searcher.Name(), "query", query, "error", err)
		metrics.QueryFailures.WithLabelValues(searcher.Name()).Inc()
		return nil
	}

	records := make([]model.RawRecord, 0, len(articles))
	for _, a := range articles {
		records = append(records, toRawRecord(a, query))
	}
	return records
}

func toRawRecord(a news.Article, query string) model.RawRecord {
	source := a.Source
	if source == "" {
		source = model.SourceFromLink(a.Link)
	}

	return model.RawRecord{
		Title:       a.Title,
		Description: a.Description,
		Link:        a.Link,
		Source:      source,
		PublishedAt: a.PublishedAt,
		Query:       query,
		Confidence:  a.Confidence,
	}
}
