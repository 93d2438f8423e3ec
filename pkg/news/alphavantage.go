package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type AlphaVantageClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewAlphaVantageClient(apiKey string) *AlphaVantageClient {
	return &AlphaVantageClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *AlphaVantageClient) Name() string {
	return "AlphaVantage"
}

// Search queries NEWS_SENTIMENT by ticker. Each article's confidence is the
// highest relevance score reported for the queried ticker.
func (c *AlphaVantageClient) Search(ctx context.Context, query string, count int) ([]Article, error) {
	if c.apiKey == "" {
		return []Article{}, nil
	}

	ticker := strings.ToUpper(query)

	params := url.Values{}
	params.Set("function", "NEWS_SENTIMENT")
	params.Set("tickers", ticker)
	params.Set("sort", "LATEST")
	params.Set("limit", strconv.Itoa(count))
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.alphavantage.co/query?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("alphavantage request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}
	defer resp.Body.Close()

	var raw avResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", err)
	}
	if raw.Information != "" && len(raw.Feed) == 0 {
		return nil, fmt.Errorf("alphavantage: %s", raw.Information)
	}

	articles := make([]Article, 0, len(raw.Feed))
	for _, item := range raw.Feed {
		if count > 0 && len(articles) >= count {
			break
		}

		publishedAt, err := time.Parse("20060102T150405", item.TimePublished)
		if err != nil {
			publishedAt = time.Time{}
		}

		articles = append(articles, Article{
			Title:       item.Title,
			Description: item.Summary,
			Link:        item.URL,
			Source:      item.Source,
			PublishedAt: publishedAt,
			Confidence:  item.relevance(ticker),
		})
	}

	return articles, nil
}

type avResponse struct {
	Feed        []avFeedItem `json:"feed"`
	Information string       `json:"Information"`
}

type avFeedItem struct {
	Title           string              `json:"title"`
	Summary         string              `json:"summary"`
	URL             string              `json:"url"`
	Source          string              `json:"source"`
	TimePublished   string              `json:"time_published"`
	TickerSentiment []avTickerSentiment `json:"ticker_sentiment"`
}

type avTickerSentiment struct {
	Ticker         string `json:"ticker"`
	RelevanceScore string `json:"relevance_score"`
}

func (item avFeedItem) relevance(ticker string) float64 {
	var best float64
	for _, ts := range item.TickerSentiment {
		if !strings.EqualFold(ts.Ticker, ticker) {
			continue
		}
		score, err := strconv.ParseFloat(ts.RelevanceScore, 64)
		if err != nil {
			continue
		}
		if score > best {
			best = score
		}
	}
	return best
}
