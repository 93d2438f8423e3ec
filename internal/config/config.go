// Package config loads runtime settings from the environment and the feed
// catalog from YAML.
package config

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string

	DatabaseURL string
	RedisURL    string
	CacheTTL    time.Duration

	FeedsConfigPath string

	DedupThreshold      float64
	PipelineConcurrency int
	SearchTimeout       time.Duration
	ClassifyTimeout     time.Duration

	ClassifierProvider string
	HuggingFaceKey     string
	SentimentModel     string
	OpenAIKey          string
	AnthropicKey       string
	GeminiKey          string

	NaverClientID     string
	NaverClientSecret string
	FinnhubKey        string
	AlphaVantageKey   string
	MassiveKey        string
}

var defaultOrigins = []string{"http://localhost:3000", "https://novatrend.com"}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Port:     getEnvOrDefault("PORT", "8080"),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		CacheTTL:    getEnvDurationOrDefault("CACHE_TTL", 10*time.Minute),

		FeedsConfigPath: getEnvOrDefault("FEEDS_CONFIG_PATH", "configs/feeds.yaml"),

		DedupThreshold:      getEnvFloatOrDefault("DEDUP_THRESHOLD", 0.4),
		PipelineConcurrency: getEnvIntOrDefault("PIPELINE_CONCURRENCY", 4),
		SearchTimeout:       getEnvDurationOrDefault("SEARCH_TIMEOUT", 10*time.Second),
		ClassifyTimeout:     getEnvDurationOrDefault("CLASSIFY_TIMEOUT", 10*time.Second),

		ClassifierProvider: getEnvOrDefault("CLASSIFIER_PROVIDER", "huggingface"),
		HuggingFaceKey:     os.Getenv("HUGGINGFACE_API_KEY"),
		SentimentModel:     os.Getenv("SENTIMENT_MODEL"),
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		AnthropicKey:       os.Getenv("ANTHROPIC_API_KEY"),
		GeminiKey:          os.Getenv("GEMINI_API_KEY"),

		NaverClientID:     os.Getenv("NAVER_CLIENT_ID"),
		NaverClientSecret: os.Getenv("NAVER_CLIENT_SECRET"),
		FinnhubKey:        os.Getenv("FINNHUB_API_KEY"),
		AlphaVantageKey:   os.Getenv("ALPHA_VANTAGE_API_KEY"),
		MassiveKey:        os.Getenv("MASSIVE_API_KEY"),
	}

	cfg.AllowedOrigins = append([]string{}, defaultOrigins...)
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, frontendURL)
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if math.IsNaN(c.DedupThreshold) || c.DedupThreshold <= 0 || c.DedupThreshold >= 1 {
		return fmt.Errorf("DEDUP_THRESHOLD must be between 0 and 1, got %v", c.DedupThreshold)
	}
	if c.PipelineConcurrency < 1 {
		return fmt.Errorf("PIPELINE_CONCURRENCY must be positive, got %d", c.PipelineConcurrency)
	}
	switch c.ClassifierProvider {
	case "huggingface", "openai", "anthropic", "gemini":
	default:
		return fmt.Errorf("unknown CLASSIFIER_PROVIDER %q", c.ClassifierProvider)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
		slog.Warn("invalid environment value, using default", "key", key, "value", value, "default", defaultValue)
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f
		}
		slog.Warn("invalid environment value, using default", "key", key, "value", value, "default", defaultValue)
	}
	return defaultValue
}

// getEnvDurationOrDefault accepts Go durations ("30s") or whole seconds.
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	slog.Warn("invalid environment value, using default", "key", key, "value", value, "default", defaultValue.String())
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
