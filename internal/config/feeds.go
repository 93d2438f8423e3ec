package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"novatrend/internal/model"
)

// Search backends a feed can name.
const (
	SourceNaver        = "naver"
	SourceFinnhub      = "finnhub"
	SourceAlphaVantage = "alphavantage"
	SourceMassive      = "massive"
	SourceRSS          = "rss"
)

// Feed is one catalog entry: a fixed query list run against one backend.
type Feed struct {
	Name     string       `yaml:"name"`
	Category string       `yaml:"category"`
	Region   model.Region `yaml:"region"`
	Source   string       `yaml:"source"`
	PerQuery int          `yaml:"per_query"`
	Queries  []string     `yaml:"queries"`

	// Language and Country select the Google News edition for rss feeds.
	Language string `yaml:"language"`
	Country  string `yaml:"country"`
}

type FeedsConfig struct {
	Feeds []Feed `yaml:"feeds"`
}

const defaultPerQuery = 10

// LoadFeeds reads the feed catalog from a YAML file.
func LoadFeeds(path string) ([]Feed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	seen := make(map[string]bool, len(cfg.Feeds))
	for i := range cfg.Feeds {
		feed := &cfg.Feeds[i]
		if feed.PerQuery <= 0 {
			feed.PerQuery = defaultPerQuery
		}
		if err := feed.validate(); err != nil {
			return nil, fmt.Errorf("feed %d (%s): %w", i, feed.Name, err)
		}
		if seen[feed.Name] {
			return nil, fmt.Errorf("duplicate feed name %q", feed.Name)
		}
		seen[feed.Name] = true
	}

	return cfg.Feeds, nil
}

func (f Feed) validate() error {
	if f.Name == "" {
		return fmt.Errorf("name is required")
	}
	switch f.Category {
	case model.CategoryStock, model.CategoryCrypto, model.CategoryKpop:
	default:
		return fmt.Errorf("unknown category %q", f.Category)
	}
	if f.Region != model.RegionNone && !f.Region.Valid() {
		return fmt.Errorf("unknown region %q", f.Region)
	}
	switch f.Source {
	case SourceNaver, SourceFinnhub, SourceAlphaVantage, SourceMassive, SourceRSS:
	default:
		return fmt.Errorf("unknown source %q", f.Source)
	}
	if len(f.Queries) == 0 {
		return fmt.Errorf("no queries")
	}
	return nil
}
