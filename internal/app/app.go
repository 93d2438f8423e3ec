// Package app wires configuration, storage and the news pipeline into the
// feed service shared by the binaries.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"novatrend/db"
	"novatrend/internal/config"
	"novatrend/internal/feed"
	"novatrend/internal/pipeline"
	"novatrend/internal/repository"
	"novatrend/internal/sentiment"
	"novatrend/pkg/classifier"
)

var newClassifier = classifier.New

type App struct {
	Config  *config.Config
	Feeds   *feed.Service
	closers []func()
}

// New builds the feed service. Postgres and Redis are optional: an unset
// URL or a failed connection leaves that layer out. A classifier that
// cannot be built leaves every record on the fallback grade.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	feeds, err := config.LoadFeeds(cfg.FeedsConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load feeds: %w", err)
	}

	a := &App{Config: cfg}

	c, err := newClassifier(ctx, classifier.Options{
		Provider:         cfg.ClassifierProvider,
		HuggingFaceKey:   cfg.HuggingFaceKey,
		HuggingFaceModel: cfg.SentimentModel,
		OpenAIKey:        cfg.OpenAIKey,
		AnthropicKey:     cfg.AnthropicKey,
		GeminiKey:        cfg.GeminiKey,
	})
	switch {
	case errors.Is(err, classifier.ErrNotConfigured), errors.Is(err, classifier.ErrUnavailable):
		slog.Warn("classifier unusable, grading with fallback", "provider", cfg.ClassifierProvider, "error", err)
		c = nil
	case err != nil:
		return nil, fmt.Errorf("build classifier: %w", err)
	default:
		slog.Info("classifier ready", "provider", c.Name())
		if closer, ok := c.(io.Closer); ok {
			a.closers = append(a.closers, func() { closer.Close() })
		}
	}

	p := pipeline.New(sentiment.NewAnalyzer(c, cfg.ClassifyTimeout), pipeline.Options{
		Threshold:     cfg.DedupThreshold,
		Concurrency:   cfg.PipelineConcurrency,
		SearchTimeout: cfg.SearchTimeout,
	})

	var (
		cache     feed.Cache
		snapshots feed.SnapshotStore
	)

	if cfg.RedisURL != "" {
		if err := db.ConnectRedis(ctx, cfg.RedisURL); err != nil {
			slog.Error("error connecting to Redis, running without cache", "error", err)
		} else {
			cache = repository.NewFeedCache(db.Redis, cfg.CacheTTL)
			a.closers = append(a.closers, db.CloseRedis)
		}
	}

	if cfg.DatabaseURL != "" {
		if err := db.Connect(cfg.DatabaseURL); err != nil {
			slog.Error("error connecting to DB, running without snapshots", "error", err)
		} else {
			repo := repository.NewSnapshotRepository(db.DB)
			if err := repo.EnsureSchema(ctx); err != nil {
				db.Close()
				return nil, fmt.Errorf("create snapshot schema: %w", err)
			}
			snapshots = repo
			a.closers = append(a.closers, db.Close)
		}
	}

	a.Feeds = feed.NewService(feeds, feed.Searchers(cfg, feeds), p, cache, snapshots)
	return a, nil
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
