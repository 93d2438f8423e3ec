package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"novatrend/internal/app"
	"novatrend/internal/config"
	"novatrend/internal/handler"
	"novatrend/internal/logger"
	"novatrend/pkg/feargreed"
)

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

	newsHandler := handler.NewNewsHandler(a.Feeds)
	marketHandler := handler.NewMarketHandler(feargreed.NewClient())

	r := gin.Default()

	slog.Info("AllowOrigins URL:", "urls", cfg.AllowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/", newsHandler.GetRoot)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/health", newsHandler.GetHealth)
	api.GET("/news/stock", newsHandler.GetStockNews)
	api.GET("/news/crypto", newsHandler.GetCryptoNews)
	api.GET("/news/kpop", newsHandler.GetKpopNews)
	api.GET("/crypto/fear-greed", marketHandler.GetFearGreed)

	err = r.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
