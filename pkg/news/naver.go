package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	naverNewsURL      = "https://openapi.naver.com/v1/search/news.json"
	naverMaxDisplay   = 100
	naverRequestsPerS = 10
)

type NaverClient struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client
	limiter      *rate.Limiter
}

func NewNaverClient(clientID, clientSecret string) *NaverClient {
	return &NaverClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		limiter:      rate.NewLimiter(rate.Limit(naverRequestsPerS), 1),
	}
}

func (c *NaverClient) Name() string {
	return "Naver"
}

func (c *NaverClient) Search(ctx context.Context, query string, count int) ([]Article, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return []Article{}, nil
	}

	if count <= 0 || count > naverMaxDisplay {
		count = naverMaxDisplay
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("naver rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("display", strconv.Itoa(count))
	params.Set("sort", "date")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, naverNewsURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("naver request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("naver fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("naver fetch: status %d", resp.StatusCode)
	}

	var raw naverResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("naver decode: %w", err)
	}

	articles := make([]Article, 0, len(raw.Items))
	for _, item := range raw.Items {
		link := item.OriginalLink
		if link == "" {
			link = item.Link
		}

		publishedAt, err := time.Parse(time.RFC1123Z, item.PubDate)
		if err != nil {
			publishedAt = time.Time{}
		}

		articles = append(articles, Article{
			Title:       plainText(item.Title),
			Description: plainText(item.Description),
			Link:        link,
			PublishedAt: publishedAt,
		})
	}

	return articles, nil
}

type naverResponse struct {
	Items []naverItem `json:"items"`
}

type naverItem struct {
	Title        string `json:"title"`
	OriginalLink string `json:"originallink"`
	Link         string `json:"link"`
	Description  string `json:"description"`
	PubDate      string `json:"pubDate"`
}
