package feed

import (
	"gonewsag/internal/config"
)

// NewSource creates the feed source selected by configuration
func NewSource(cfg *config.Config) Source {
	if cfg.FeedSource == "rss" {
		return NewRSSSource(cfg.FeedTimeout)
	}
	return NewNewsAPIClient(cfg.NewsAPIBaseURL, cfg.NewsAPIKey, cfg.FeedTimeout)
}
