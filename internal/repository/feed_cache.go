package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"novatrend/internal/model"
)

const feedCacheKeyPrefix = "novatrend:feed:"

// FeedCache keeps the latest pipeline result of each feed in Redis.
type FeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewFeedCache(client *redis.Client, ttl time.Duration) *FeedCache {
	return &FeedCache{client: client, ttl: ttl}
}

func feedCacheKey(feed string) string {
	return feedCacheKeyPrefix + feed
}

// Get reports ok=false on a miss.
func (c *FeedCache) Get(ctx context.Context, feed string) ([]model.AnalyzedRecord, bool, error) {
	data, err := c.client.Get(ctx, feedCacheKey(feed)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	records, err := decodeRecords(data)
	if err != nil {
		return nil, false, fmt.Errorf("decode cached feed %s: %w", feed, err)
	}
	return records, true, nil
}

func (c *FeedCache) Set(ctx context.Context, feed string, records []model.AnalyzedRecord) error {
	data, err := encodeRecords(records)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, feedCacheKey(feed), data, c.ttl).Err()
}

type cachedRecord struct {
	ID          string       `json:"id"`
	Headline    string       `json:"headline"`
	Summary     string       `json:"summary"`
	Source      string       `json:"source"`
	URL         string       `json:"url"`
	Grade       model.Grade  `json:"grade"`
	Confidence  float64      `json:"confidence"`
	PublishedAt time.Time    `json:"published_at"`
	Region      model.Region `json:"region,omitempty"`
	Keywords    []string     `json:"keywords"`
}

func encodeRecords(records []model.AnalyzedRecord) ([]byte, error) {
	out := make([]cachedRecord, len(records))
	for i, r := range records {
		out[i] = cachedRecord(r)
	}
	return json.Marshal(out)
}

func decodeRecords(data []byte) ([]model.AnalyzedRecord, error) {
	var in []cachedRecord
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	records := make([]model.AnalyzedRecord, len(in))
	for i, r := range in {
		records[i] = model.AnalyzedRecord(r)
	}
	return records, nil
}
