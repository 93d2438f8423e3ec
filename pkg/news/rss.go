package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const googleNewsSearchURL = "https://news.google.com/rss/search"

// RSSClient searches Google News through its RSS endpoint. It needs no key.
type RSSClient struct {
	language string
	country  string
	baseURL  string
	parser   *gofeed.Parser
}

// NewRSSClient takes a language like "en-US" and a country like "US".
func NewRSSClient(language, country string) *RSSClient {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: 30 * time.Second}
	return &RSSClient{
		language: language,
		country:  country,
		baseURL:  googleNewsSearchURL,
		parser:   parser,
	}
}

func (c *RSSClient) Name() string {
	return "GoogleNews"
}

func (c *RSSClient) Search(ctx context.Context, query string, count int) ([]Article, error) {
	lang := strings.SplitN(c.language, "-", 2)[0]

	params := url.Values{}
	params.Set("q", query)
	params.Set("hl", c.language)
	params.Set("gl", c.country)
	params.Set("ceid", c.country+":"+lang)

	feed, err := c.parser.ParseURLWithContext(c.baseURL+"?"+params.Encode(), ctx)
	if err != nil {
		return nil, fmt.Errorf("rss fetch: %w", err)
	}

	articles := make([]Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if count > 0 && len(articles) >= count {
			break
		}

		title, source := splitPublisher(item.Title)

		a := Article{
			Title:       title,
			Description: plainText(item.Description),
			Link:        item.Link,
			Source:      source,
		}
		if item.PublishedParsed != nil {
			a.PublishedAt = *item.PublishedParsed
		}

		articles = append(articles, a)
	}

	return articles, nil
}

// splitPublisher separates the " - Publisher" suffix Google News appends to
// every headline.
func splitPublisher(title string) (string, string) {
	title = strings.TrimSpace(title)
	idx := strings.LastIndex(title, " - ")
	if idx <= 0 {
		return title, ""
	}
	return strings.TrimSpace(title[:idx]), strings.TrimSpace(title[idx+3:])
}
