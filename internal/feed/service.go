// Package feed serves the records of catalog feeds, backed by a Redis cache
// and a Postgres snapshot of the last non-empty result.
package feed

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"novatrend/internal/config"
	"novatrend/internal/model"
	"novatrend/internal/pipeline"
	"novatrend/pkg/news"
)

type Cache interface {
	Get(ctx context.Context, feed string) ([]model.AnalyzedRecord, bool, error)
	Set(ctx context.Context, feed string, records []model.AnalyzedRecord) error
}

type SnapshotStore interface {
	Save(ctx context.Context, feed string, records []model.AnalyzedRecord) error
	Load(ctx context.Context, feed string) ([]model.AnalyzedRecord, error)
}

type Runner interface {
	Run(ctx context.Context, req pipeline.Request) pipeline.Result
}

type Service struct {
	feeds     []config.Feed
	searchers map[string]news.Searcher
	runner    Runner
	cache     Cache
	snapshots SnapshotStore
}

// NewService takes one searcher per feed name. cache and snapshots may be
// nil.
func NewService(feeds []config.Feed, searchers map[string]news.Searcher, runner Runner, cache Cache, snapshots SnapshotStore) *Service {
	return &Service{
		feeds:     feeds,
		searchers: searchers,
		runner:    runner,
		cache:     cache,
		snapshots: snapshots,
	}
}

// Records returns the records of every feed in category, restricted to
// region unless it is empty, concatenated in catalog order.
func (s *Service) Records(ctx context.Context, category string, region model.Region) []model.AnalyzedRecord {
	feeds := s.match(category, region)
	results := make([][]model.AnalyzedRecord, len(feeds))

	var g errgroup.Group
	for i, f := range feeds {
		g.Go(func() error {
			results[i] = s.feedRecords(ctx, f)
			return nil
		})
	}
	g.Wait()

	all := []model.AnalyzedRecord{}
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}

// Refresh runs every feed, bypassing cached results, and returns the record
// count per feed.
func (s *Service) Refresh(ctx context.Context) map[string]int {
	counts := make(map[string]int, len(s.feeds))
	for _, f := range s.feeds {
		counts[f.Name] = len(s.refresh(ctx, f))
	}
	return counts
}

func (s *Service) match(category string, region model.Region) []config.Feed {
	var out []config.Feed
	for _, f := range s.feeds {
		if f.Category != category {
			continue
		}
		if region != model.RegionNone && f.Region != region {
			continue
		}
		out = append(out, f)
	}
	return out
}

func (s *Service) feedRecords(ctx context.Context, f config.Feed) []model.AnalyzedRecord {
	if s.cache != nil {
		records, ok, err := s.cache.Get(ctx, f.Name)
		if err != nil {
			slog.Warn("feed cache read failed", "feed", f.Name, "error", err)
		} else if ok {
			return records
		}
	}

	return s.refresh(ctx, f)
}

func (s *Service) refresh(ctx context.Context, f config.Feed) []model.AnalyzedRecord {
	searcher, ok := s.searchers[f.Name]
	if !ok {
		slog.Error("no searcher for feed", "feed", f.Name, "source", f.Source)
		return s.lastSnapshot(ctx, f)
	}

	res := s.runner.Run(ctx, pipeline.Request{
		Feed:     f.Name,
		Searcher: searcher,
		Queries:  f.Queries,
		PerQuery: f.PerQuery,
		Region:   f.Region,
	})

	if len(res.Records) == 0 {
		return s.lastSnapshot(ctx, f)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, f.Name, res.Records); err != nil {
			slog.Warn("feed cache write failed", "feed", f.Name, "error", err)
		}
	}
	if s.snapshots != nil {
		if err := s.snapshots.Save(ctx, f.Name, res.Records); err != nil {
			slog.Warn("snapshot save failed", "feed", f.Name, "error", err)
		}
	}

	return res.Records
}

func (s *Service) lastSnapshot(ctx context.Context, f config.Feed) []model.AnalyzedRecord {
	if s.snapshots == nil {
		return nil
	}

	records, err := s.snapshots.Load(ctx, f.Name)
	if err != nil {
		slog.Warn("snapshot load failed", "feed", f.Name, "error", err)
		return nil
	}
	if len(records) > 0 {
		slog.Info("serving last snapshot", "feed", f.Name, "records", len(records))
	}
	return records
}
