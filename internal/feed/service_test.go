package feed

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/go-playground/assert/v2"

	"novatrend/internal/config"
	"novatrend/internal/model"
	"novatrend/internal/pipeline"
	"novatrend/pkg/news"
)

type fakeRunner struct {
	mu      sync.Mutex
	results map[string][]model.AnalyzedRecord
	runs    []string
}

func (f *fakeRunner) Run(ctx context.Context, req pipeline.Request) pipeline.Result {
	f.mu.Lock()
	f.runs = append(f.runs, req.Feed)
	f.mu.Unlock()

	records := f.results[req.Feed]
	return pipeline.Result{Records: records, Total: len(records)}
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]model.AnalyzedRecord
	err     error
}

func (c *fakeCache) Get(ctx context.Context, feed string) ([]model.AnalyzedRecord, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, false, c.err
	}
	r, ok := c.entries[feed]
	return r, ok, nil
}

func (c *fakeCache) Set(ctx context.Context, feed string, records []model.AnalyzedRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = map[string][]model.AnalyzedRecord{}
	}
	c.entries[feed] = records
	return c.err
}

type fakeSnapshots struct {
	mu    sync.Mutex
	saved map[string][]model.AnalyzedRecord
}

func (s *fakeSnapshots) Save(ctx context.Context, feed string, records []model.AnalyzedRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saved == nil {
		s.saved = map[string][]model.AnalyzedRecord{}
	}
	s.saved[feed] = records
	return nil
}

func (s *fakeSnapshots) Load(ctx context.Context, feed string) ([]model.AnalyzedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved[feed], nil
}

type nopSearcher struct{}

func (nopSearcher) Search(ctx context.Context, query string, count int) ([]news.Article, error) {
	return nil, nil
}

func (nopSearcher) Name() string { return "nop" }

var testFeeds = []config.Feed{
	{Name: "stock-kr", Category: model.CategoryStock, Region: model.RegionKR, Source: config.SourceNaver, Queries: []string{"코스피"}},
	{Name: "stock-us", Category: model.CategoryStock, Region: model.RegionUS, Source: config.SourceFinnhub, Queries: []string{"AAPL"}},
	{Name: "crypto", Category: model.CategoryCrypto, Source: config.SourceNaver, Queries: []string{"비트코인"}},
}

func testSearchers() map[string]news.Searcher {
	out := map[string]news.Searcher{}
	for _, f := range testFeeds {
		out[f.Name] = nopSearcher{}
	}
	return out
}

func rec(id string) model.AnalyzedRecord {
	return model.AnalyzedRecord{ID: id, Grade: model.GradeGood, Confidence: 0.5}
}

func ids(records []model.AnalyzedRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestRecordsConcatenatesInCatalogOrder(t *testing.T) {
	runner := &fakeRunner{results: map[string][]model.AnalyzedRecord{
		"stock-kr": {rec("kr1"), rec("kr2")},
		"stock-us": {rec("us1")},
		"crypto":   {rec("c1")},
	}}
	svc := NewService(testFeeds, testSearchers(), runner, nil, nil)

	assert.Equal(t, []string{"kr1", "kr2", "us1"}, ids(svc.Records(context.Background(), model.CategoryStock, model.RegionNone)))
	assert.Equal(t, []string{"us1"}, ids(svc.Records(context.Background(), model.CategoryStock, model.RegionUS)))
	assert.Equal(t, []string{"c1"}, ids(svc.Records(context.Background(), model.CategoryCrypto, model.RegionNone)))
}

func TestRecordsUnknownCategory(t *testing.T) {
	svc := NewService(testFeeds, testSearchers(), &fakeRunner{}, nil, nil)

	got := svc.Records(context.Background(), model.CategoryKpop, model.RegionNone)
	assert.Equal(t, 0, len(got))
	assert.NotEqual(t, nil, got)
}

func TestRecordsUsesCache(t *testing.T) {
	runner := &fakeRunner{results: map[string][]model.AnalyzedRecord{"crypto": {rec("fresh")}}}
	cache := &fakeCache{entries: map[string][]model.AnalyzedRecord{"crypto": {rec("cached")}}}
	svc := NewService(testFeeds, testSearchers(), runner, cache, nil)

	got := svc.Records(context.Background(), model.CategoryCrypto, model.RegionNone)

	assert.Equal(t, []string{"cached"}, ids(got))
	assert.Equal(t, 0, len(runner.runs))
}

func TestRecordsFillsCacheAndSnapshot(t *testing.T) {
	runner := &fakeRunner{results: map[string][]model.AnalyzedRecord{"crypto": {rec("fresh")}}}
	cache := &fakeCache{}
	snapshots := &fakeSnapshots{}
	svc := NewService(testFeeds, testSearchers(), runner, cache, snapshots)

	got := svc.Records(context.Background(), model.CategoryCrypto, model.RegionNone)

	assert.Equal(t, []string{"fresh"}, ids(got))
	assert.Equal(t, []string{"fresh"}, ids(cache.entries["crypto"]))
	assert.Equal(t, []string{"fresh"}, ids(snapshots.saved["crypto"]))
}

func TestRecordsFallsBackToSnapshot(t *testing.T) {
	snapshots := &fakeSnapshots{saved: map[string][]model.AnalyzedRecord{"crypto": {rec("old")}}}
	cache := &fakeCache{}
	svc := NewService(testFeeds, testSearchers(), &fakeRunner{}, cache, snapshots)

	got := svc.Records(context.Background(), model.CategoryCrypto, model.RegionNone)

	assert.Equal(t, []string{"old"}, ids(got))
	_, cached := cache.entries["crypto"]
	assert.Equal(t, false, cached)
}

func TestRecordsCacheErrorRunsPipeline(t *testing.T) {
	runner := &fakeRunner{results: map[string][]model.AnalyzedRecord{"crypto": {rec("fresh")}}}
	cache := &fakeCache{err: errors.New("connection refused")}
	svc := NewService(testFeeds, testSearchers(), runner, cache, nil)

	got := svc.Records(context.Background(), model.CategoryCrypto, model.RegionNone)

	assert.Equal(t, []string{"fresh"}, ids(got))
}

func TestRefreshBypassesCache(t *testing.T) {
	runner := &fakeRunner{results: map[string][]model.AnalyzedRecord{
		"stock-kr": {rec("kr1")},
		"crypto":   {rec("c1"), rec("c2")},
	}}
	cache := &fakeCache{entries: map[string][]model.AnalyzedRecord{"crypto": {rec("stale")}}}
	svc := NewService(testFeeds, testSearchers(), runner, cache, nil)

	counts := svc.Refresh(context.Background())

	assert.Equal(t, map[string]int{"stock-kr": 1, "stock-us": 0, "crypto": 2}, counts)
	assert.Equal(t, []string{"c1", "c2"}, ids(cache.entries["crypto"]))
}

func TestMissingSearcher(t *testing.T) {
	runner := &fakeRunner{}
	svc := NewService(testFeeds, map[string]news.Searcher{}, runner, nil, nil)

	got := svc.Records(context.Background(), model.CategoryCrypto, model.RegionNone)

	assert.Equal(t, 0, len(got))
	assert.Equal(t, 0, len(runner.runs))
}

func TestSearchers(t *testing.T) {
	feeds := append([]config.Feed{
		{Name: "eu", Source: config.SourceRSS},
		{Name: "av", Source: config.SourceAlphaVantage},
		{Name: "mv", Source: config.SourceMassive},
	}, testFeeds...)

	got := Searchers(&config.Config{}, feeds)

	assert.Equal(t, 6, len(got))
	assert.Equal(t, "GoogleNews", got["eu"].Name())
	assert.Equal(t, "AlphaVantage", got["av"].Name())
	assert.Equal(t, "Massive", got["mv"].Name())
	assert.Equal(t, "FinnHub", got["stock-us"].Name())
	assert.Equal(t, got["stock-kr"], got["crypto"])
}
