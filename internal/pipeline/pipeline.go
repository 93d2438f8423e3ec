// Package pipeline turns a feed's queries into graded, deduplicated records:
// collect, deduplicate, classify, normalize.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"novatrend/internal/dedup"
	"novatrend/internal/metrics"
	"novatrend/internal/model"
	"novatrend/internal/sentiment"
	"novatrend/pkg/news"
)

type Options struct {
	Threshold     float64
	Concurrency   int
	SearchTimeout time.Duration
}

type Pipeline struct {
	collector   Collector
	analyzer    *sentiment.Analyzer
	threshold   float64
	concurrency int
	now         func() time.Time
}

func New(analyzer *sentiment.Analyzer, opts Options) *Pipeline {
	if opts.Threshold == 0 {
		opts.Threshold = dedup.DefaultThreshold
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}

	return &Pipeline{
		collector:   Collector{Concurrency: opts.Concurrency, Timeout: opts.SearchTimeout},
		analyzer:    analyzer,
		threshold:   opts.Threshold,
		concurrency: opts.Concurrency,
		now:         time.Now,
	}
}

type Request struct {
	// Feed labels logs and metrics.
	Feed     string
	Searcher news.Searcher
	Queries  []string
	PerQuery int
	Region   model.Region
}

type Result struct {
	Records []model.AnalyzedRecord
	Total   int
}

// Run never fails: collection and classification errors degrade the result
// instead.
func (p *Pipeline) Run(ctx context.Context, req Request) Result {
	start := time.Now()
	defer func() {
		metrics.PipelineDuration.WithLabelValues(req.Feed).Observe(time.Since(start).Seconds())
	}()

	raw := p.collector.Collect(ctx, req.Searcher, req.Queries, req.PerQuery)
	metrics.RecordsCollected.WithLabelValues(req.Feed).Add(float64(len(raw)))
	if len(raw) == 0 {
		slog.Info("no records collected", "feed", req.Feed)
		return Result{Records: []model.AnalyzedRecord{}}
	}

	unique := dedup.Deduplicate(raw, p.threshold)
	metrics.DuplicatesDropped.WithLabelValues(req.Feed).Add(float64(len(raw) - len(unique)))

	assessments := p.classify(ctx, req.Feed, unique)
	records := sentiment.Normalize(unique, assessments, req.Region, p.now())

	slog.Info("pipeline complete", "feed", req.Feed, "collected", len(raw), "unique", len(unique))
	return Result{Records: records, Total: len(records)}
}

// classify grades records concurrently. assessments[i] belongs to records[i].
func (p *Pipeline) classify(ctx context.Context, feed string, records []model.RawRecord) []sentiment.Assessment {
	assessments := make([]sentiment.Assessment, len(records))

	var g errgroup.Group
	g.SetLimit(p.concurrency)

	for i, r := range records {
		g.Go(func() error {
			a := p.analyzer.Assess(ctx, sentiment.Text(r))
			if a.Degraded() {
				reason := sentiment.Reason(a.Err)
				slog.Warn("classification fell back", "feed", feed, "reason", reason, "error", a.Err)
				metrics.ClassifierFallbacks.WithLabelValues(reason).Inc()
			}
			assessments[i] = a
			return nil
		})
	}
	g.Wait()

	return assessments
}
