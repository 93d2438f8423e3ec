package feed

import (
	"novatrend/internal/config"
	"novatrend/pkg/news"
)

// Searchers builds the searcher of each feed. Feeds on the same keyed
// backend share one client so its rate limit holds across feeds.
func Searchers(cfg *config.Config, feeds []config.Feed) map[string]news.Searcher {
	var (
		naver        = news.NewNaverClient(cfg.NaverClientID, cfg.NaverClientSecret)
		finnhub      = news.NewFinnHubClient(cfg.FinnhubKey)
		alphaVantage = news.NewAlphaVantageClient(cfg.AlphaVantageKey)
		massive      = news.NewMassiveClient(cfg.MassiveKey)
	)

	out := make(map[string]news.Searcher, len(feeds))
	for _, f := range feeds {
		switch f.Source {
		case config.SourceNaver:
			out[f.Name] = naver
		case config.SourceFinnhub:
			out[f.Name] = finnhub
		case config.SourceAlphaVantage:
			out[f.Name] = alphaVantage
		case config.SourceMassive:
			out[f.Name] = massive
		case config.SourceRSS:
			out[f.Name] = news.NewRSSClient(orDefault(f.Language, "en-US"), orDefault(f.Country, "US"))
		}
	}
	return out
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
