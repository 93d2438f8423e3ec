package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"novatrend/internal/app"
	"novatrend/internal/config"
	"novatrend/internal/logger"
)

// fetcher runs every catalog feed once so the cache and snapshots are warm
// before traffic arrives.
func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	logger.Init(os.Stdout, cfg.LogLevel)

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("error starting app: %v", err)
	}
	defer a.Close()

	counts := a.Feeds.Refresh(context.Background())

	var total int
	for feed, n := range counts {
		slog.Info("feed refreshed", "feed", feed, "records", n)
		total += n
	}

	slog.Info("fetch complete", "feeds", len(counts), "records", total)
}
