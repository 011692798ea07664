package feed

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"gonewsag/internal/config"
	"gonewsag/internal/models"

	"github.com/mmcdole/gofeed"
)

// RSSSource fetches headlines from per-category RSS feed lists. Partial
// failures degrade to whatever feeds succeeded; only an all-feeds failure
// surfaces as an UpstreamError.
type RSSSource struct {
	parser  *gofeed.Parser
	timeout time.Duration
}

func NewRSSSource(timeout time.Duration) *RSSSource {
	return &RSSSource{
		parser:  gofeed.NewParser(),
		timeout: timeout,
	}
}

func (s *RSSSource) Fetch(ctx context.Context, category config.CategoryConfig, query string, pageSize int) ([]Item, error) {
	if len(category.FeedURLs) == 0 {
		return nil, &models.UpstreamError{
			Category: category.Upstream,
			Err:      fmt.Errorf("no feed URLs configured"),
		}
	}

	var items []Item
	failures := 0
	for _, feedURL := range category.FeedURLs {
		fetched, err := s.fetchOne(ctx, feedURL)
		if err != nil {
			log.Printf("Error fetching feed %s: %v", feedURL, err)
			failures++
			continue
		}
		items = append(items, fetched...)
	}

	if failures == len(category.FeedURLs) {
		return nil, &models.UpstreamError{
			Category: category.Upstream,
			Err:      fmt.Errorf("all %d feeds failed", failures),
		}
	}

	if query != "" {
		items = filterItems(items, query)
	}
	if pageSize > 0 && len(items) > pageSize {
		items = items[:pageSize]
	}
	return items, nil
}

func (s *RSSSource) fetchOne(ctx context.Context, feedURL string) ([]Item, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	parsed, err := s.parser.ParseURLWithContext(feedURL, fetchCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %v", err)
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		item := Item{
			Title:       entry.Title,
			Description: entry.Description,
			URL:         entry.Link,
			SourceName:  parsed.Title,
		}
		if entry.PublishedParsed != nil {
			item.PublishedAt = *entry.PublishedParsed
		}
		if entry.Image != nil {
			item.ImageURL = entry.Image.URL
		} else {
			for _, enc := range entry.Enclosures {
				if strings.HasPrefix(enc.Type, "image/") {
					item.ImageURL = enc.URL
					break
				}
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// filterItems applies the search term locally since RSS has no server-side
// query support
func filterItems(items []Item, query string) []Item {
	query = strings.ToLower(query)

	var matched []Item
	for _, item := range items {
		text := strings.ToLower(item.Title + " " + item.Description)
		if strings.Contains(text, query) {
			matched = append(matched, item)
		}
	}
	return matched
}
