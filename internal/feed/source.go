package feed

import (
	"context"
	"time"

	"gonewsag/internal/config"
)

// Item is one raw upstream article record, before identity resolution
type Item struct {
	Title       string
	Description string
	ImageURL    string
	URL         string
	PublishedAt time.Time
	SourceName  string
}

// Source is the upstream feed seam. Implementations return an UpstreamError
// on network failure, timeout or a non-2xx upstream response.
type Source interface {
	Fetch(ctx context.Context, category config.CategoryConfig, query string, pageSize int) ([]Item, error)
}
