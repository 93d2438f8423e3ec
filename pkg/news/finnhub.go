package news

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

const finnhubLookback = 7 * 24 * time.Hour

// FinnHubClient searches company news. The query is a ticker symbol.
type FinnHubClient struct {
	apiKey string
	client *finnhub.DefaultApiService
	now    func() time.Time
}

func NewFinnHubClient(apiKey string) *FinnHubClient {
	return newFinnHubClient(apiKey, &http.Client{Timeout: 30 * time.Second})
}

func newFinnHubClient(apiKey string, httpClient *http.Client) *FinnHubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	cfg.HTTPClient = httpClient
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnHubClient{apiKey: apiKey, client: client, now: time.Now}
}

func (c *FinnHubClient) Search(ctx context.Context, query string, count int) ([]Article, error) {
	if c.apiKey == "" {
		return []Article{}, nil
	}

	to := c.now()
	from := to.Add(-finnhubLookback)

	res, _, err := c.client.CompanyNews(ctx).
		Symbol(strings.ToUpper(query)).
		From(from.Format("2006-01-02")).
		To(to.Format("2006-01-02")).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub company news: %w", err)
	}

	var articles []Article

	for _, news := range res {
		if count > 0 && len(articles) >= count {
			break
		}

		var a Article

		if news.Headline != nil {
			a.Title = *news.Headline
		}

		if news.Summary != nil {
			a.Description = *news.Summary
		}

		if news.Url != nil {
			a.Link = *news.Url
		}

		if news.Datetime != nil {
			a.PublishedAt = time.Unix(*news.Datetime, 0)
		}

		if news.Source != nil {
			a.Source = *news.Source
		}

		articles = append(articles, a)
	}

	return articles, nil
}

func (c *FinnHubClient) Name() string {
	return "FinnHub"
}
