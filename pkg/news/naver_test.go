package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
	"golang.org/x/time/rate"
)

const naverPayload = `{
  "items": [
    {
      "title": "<b>삼성전자</b>, 분기 실적 &quot;사상 최대&quot;",
      "originallink": "https://www.hankyung.com/article/1",
      "link": "https://n.news.naver.com/article/1",
      "description": "HBM 수요에 <b>삼성전자</b> 영업이익 급증",
      "pubDate": "Mon, 02 Mar 2026 09:15:00 +0900"
    },
    {
      "title": "코스피 하락",
      "originallink": "",
      "link": "https://n.news.naver.com/article/2",
      "description": "",
      "pubDate": "not a date"
    }
  ]
}`

func newTestNaverClient(base string) *NaverClient {
	return &NaverClient{
		clientID:     "id",
		clientSecret: "secret",
		httpClient:   testClient(base),
		limiter:      rate.NewLimiter(rate.Inf, 1),
	}
}

func TestNaverSearch(t *testing.T) {
	var r *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r = req
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(naverPayload))
	}))
	defer srv.Close()

	articles, err := newTestNaverClient(srv.URL).Search(context.Background(), "삼성전자", 10)

	assert.Equal(t, nil, err)
	assert.Equal(t, "id", r.Header.Get("X-Naver-Client-Id"))
	assert.Equal(t, "secret", r.Header.Get("X-Naver-Client-Secret"))
	assert.Equal(t, "삼성전자", r.URL.Query().Get("query"))
	assert.Equal(t, "10", r.URL.Query().Get("display"))
	assert.Equal(t, "date", r.URL.Query().Get("sort"))

	assert.Equal(t, 2, len(articles))
	assert.Equal(t, `삼성전자, 분기 실적 "사상 최대"`, articles[0].Title)
	assert.Equal(t, "HBM 수요에 삼성전자 영업이익 급증", articles[0].Description)
	assert.Equal(t, "https://www.hankyung.com/article/1", articles[0].Link)
	assert.Equal(t, 2026, articles[0].PublishedAt.Year())
	assert.Equal(t, 0, articles[0].PublishedAt.UTC().Hour())

	assert.Equal(t, "https://n.news.naver.com/article/2", articles[1].Link)
	assert.Equal(t, true, articles[1].PublishedAt.IsZero())
}

func TestNaverSearchClampsDisplay(t *testing.T) {
	var display string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		display = req.URL.Query().Get("display")
		w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	_, err := newTestNaverClient(srv.URL).Search(context.Background(), "코스피", 500)
	assert.Equal(t, nil, err)
	assert.Equal(t, "100", display)
}

func TestNaverSearchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestNaverClient(srv.URL).Search(context.Background(), "코스피", 10)
	assert.NotEqual(t, nil, err)
}

func TestNaverSearchWithoutCredentials(t *testing.T) {
	articles, err := NewNaverClient("", "").Search(context.Background(), "코스피", 10)
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(articles))
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "plain", plainText("  plain "))
	assert.Equal(t, "a & b", plainText("a &amp; b"))
	assert.Equal(t, "one two", plainText(`<a href="x">one</a>&nbsp;<font>two</font>`))
}
