package aggregator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"gonewsag/internal/cache"
	"gonewsag/internal/catalog"
	"gonewsag/internal/config"
	"gonewsag/internal/engagement"
	"gonewsag/internal/feed"
	"gonewsag/internal/identity"
	"gonewsag/internal/models"
)

// fakeSource serves canned items per upstream category
type fakeSource struct {
	mu    sync.Mutex
	items map[string][]feed.Item
	fail  map[string]bool
	calls int
}

func (f *fakeSource) Fetch(ctx context.Context, category config.CategoryConfig, query string, pageSize int) ([]feed.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail[category.Upstream] {
		return nil, &models.UpstreamError{Category: category.Upstream, Err: errors.New("simulated failure")}
	}
	return f.items[category.Upstream], nil
}

func testConfig() *config.Config {
	return &config.Config{
		CacheTTL:        5 * time.Minute,
		FeedTimeout:     time.Second,
		DefaultPageSize: 10,
		MaxPageSize:     100,
		Categories: map[string]config.CategoryConfig{
			"technology": {Upstream: "technology"},
			"business":   {Upstream: "business"},
		},
	}
}

func newTestAggregator(source feed.Source, persist func()) (*Aggregator, *engagement.Store) {
	cfg := testConfig()
	eng := engagement.NewStore()
	agg := New(cache.NewManager(cfg.CacheTTL), catalog.New(config.AggregateCategory), eng, source, cfg, persist)
	return agg, eng
}

func techItems(n int) []feed.Item {
	items := make([]feed.Item, 0, n)
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		items = append(items, feed.Item{
			Title:       fmt.Sprintf("Story %d", i),
			Description: fmt.Sprintf("Summary %d", i),
			URL:         fmt.Sprintf("https://example.com/tech/%d", i),
			PublishedAt: base.Add(time.Duration(i) * time.Hour),
			SourceName:  "Example",
		})
	}
	return items
}

func TestAggregator_Pagination(t *testing.T) {
	source := &fakeSource{items: map[string][]feed.Item{"technology": techItems(25)}}
	agg, _ := newTestAggregator(source, nil)

	page1, err := agg.ListArticles("technology", "", 1, 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(page1.Items) != 10 {
		t.Errorf("Expected 10 items on page 1, got %d", len(page1.Items))
	}
	if page1.TotalResults != 25 {
		t.Errorf("Expected totalResults 25, got %d", page1.TotalResults)
	}
	if page1.Items[0].Title != "Story 0" {
		t.Errorf("Expected page 1 to start at the first item, got %s", page1.Items[0].Title)
	}

	page3, _ := agg.ListArticles("technology", "", 3, 10)
	if len(page3.Items) != 5 {
		t.Errorf("Expected 5 items on page 3, got %d", len(page3.Items))
	}
	if page3.TotalResults != 25 {
		t.Errorf("Expected totalResults 25 on page 3, got %d", page3.TotalResults)
	}

	// A page past the end is empty, not an error
	page4, err := agg.ListArticles("technology", "", 4, 10)
	if err != nil {
		t.Fatalf("Expected no error past the end, got %v", err)
	}
	if len(page4.Items) != 0 {
		t.Errorf("Expected empty page past the end, got %d items", len(page4.Items))
	}
	if page4.TotalResults != 25 {
		t.Errorf("Expected totalResults 25 past the end, got %d", page4.TotalResults)
	}
}

func TestAggregator_AggregateDedup(t *testing.T) {
	shared := feed.Item{
		Title:       "Shared story",
		URL:         "https://example.com/shared",
		PublishedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		SourceName:  "Example",
	}
	source := &fakeSource{items: map[string][]feed.Item{
		"technology": {shared},
		"business":   {shared},
	}}
	agg, _ := newTestAggregator(source, nil)

	page, err := agg.ListArticles(config.AggregateCategory, "", 1, 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("Expected shared URL to appear once in the aggregate view, got %d items", len(page.Items))
	}

	// Both sightings merged into one catalog record with both memberships
	article := page.Items[0]
	if !article.HasCategory("technology") || !article.HasCategory("business") {
		t.Errorf("Expected merged membership, got %v", article.Categories)
	}
}

func TestAggregator_AggregateSortNewestFirst(t *testing.T) {
	source := &fakeSource{items: map[string][]feed.Item{
		"technology": {
			{Title: "Old", URL: "https://example.com/old", PublishedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
			{Title: "Undated", URL: "https://example.com/undated"},
		},
		"business": {
			{Title: "New", URL: "https://example.com/new", PublishedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		},
	}}
	agg, _ := newTestAggregator(source, nil)

	page, _ := agg.ListArticles(config.AggregateCategory, "", 1, 10)
	if len(page.Items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(page.Items))
	}
	if page.Items[0].Title != "New" || page.Items[1].Title != "Old" || page.Items[2].Title != "Undated" {
		t.Errorf("Expected newest-first with undated last, got %s, %s, %s",
			page.Items[0].Title, page.Items[1].Title, page.Items[2].Title)
	}
}

func TestAggregator_DegradedWhenAllUpstreamsFail(t *testing.T) {
	source := &fakeSource{fail: map[string]bool{"technology": true, "business": true}}
	agg, _ := newTestAggregator(source, nil)

	page, err := agg.ListArticles(config.AggregateCategory, "", 1, 10)
	if err != nil {
		t.Fatalf("Expected degraded result instead of error, got %v", err)
	}
	if !page.Degraded {
		t.Error("Expected page to be marked degraded")
	}
	if len(page.Items) == 0 {
		t.Error("Expected non-empty placeholder set")
	}
	for _, item := range page.Items {
		if item.Source != "system" {
			t.Errorf("Expected placeholder source 'system', got %s", item.Source)
		}
	}
}

func TestAggregator_PartialFailureDegradesSilently(t *testing.T) {
	source := &fakeSource{
		items: map[string][]feed.Item{"business": {{Title: "Survivor", URL: "https://example.com/b"}}},
		fail:  map[string]bool{"technology": true},
	}
	agg, _ := newTestAggregator(source, nil)

	page, err := agg.ListArticles(config.AggregateCategory, "", 1, 10)
	if err != nil {
		t.Fatalf("Expected no error on partial failure, got %v", err)
	}
	if page.Degraded {
		t.Error("Expected partial failure not to be marked degraded")
	}
	if len(page.Items) != 1 || page.Items[0].Title != "Survivor" {
		t.Errorf("Expected the surviving category's items, got %+v", page.Items)
	}
}

func TestAggregator_UnknownCategory(t *testing.T) {
	source := &fakeSource{}
	agg, _ := newTestAggregator(source, nil)

	_, err := agg.ListArticles("gardening", "", 1, 10)
	var nf *models.NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("Expected NotFoundError for unknown category, got %v", err)
	}
}

func TestAggregator_LikeCountEnrichment(t *testing.T) {
	url := "https://example.com/liked"
	source := &fakeSource{items: map[string][]feed.Item{
		"technology": {{Title: "Liked story", URL: url}},
	}}
	agg, eng := newTestAggregator(source, nil)

	// Prime the catalog, then like the article
	if _, err := agg.ListArticles("technology", "", 1, 10); err != nil {
		t.Fatal(err)
	}
	id := identity.NewResolver().Resolve(url)
	eng.ToggleArticleLike(id, "alice")
	eng.ToggleArticleLike(id, "bob")

	page, _ := agg.ListArticles("technology", "", 1, 10)
	if page.Items[0].Likes != 2 {
		t.Errorf("Expected like count 2, got %d", page.Items[0].Likes)
	}

	view, err := agg.GetArticle(id)
	if err != nil {
		t.Fatalf("Expected article lookup to succeed, got %v", err)
	}
	if view.Likes != 2 {
		t.Errorf("Expected like count 2 on single fetch, got %d", view.Likes)
	}
}

func TestAggregator_GetArticleUnknown(t *testing.T) {
	agg, _ := newTestAggregator(&fakeSource{}, nil)

	_, err := agg.GetArticle("missing")
	var nf *models.NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("Expected NotFoundError, got %v", err)
	}
}

func TestAggregator_FetchesAreCached(t *testing.T) {
	source := &fakeSource{items: map[string][]feed.Item{"technology": techItems(3)}}
	agg, _ := newTestAggregator(source, nil)

	agg.ListArticles("technology", "", 1, 10)
	agg.ListArticles("technology", "", 2, 10)

	source.mu.Lock()
	calls := source.calls
	source.mu.Unlock()
	if calls != 1 {
		t.Errorf("Expected a single upstream call across pages, got %d", calls)
	}
}

func TestAggregator_PersistCalledAfterUpserts(t *testing.T) {
	source := &fakeSource{items: map[string][]feed.Item{"technology": techItems(3)}}
	flushes := 0
	agg, _ := newTestAggregator(source, func() { flushes++ })

	agg.ListArticles("technology", "", 1, 10)
	if flushes != 1 {
		t.Errorf("Expected exactly one batched flush per fetch round, got %d", flushes)
	}
}

func TestAggregator_RefreshCategory(t *testing.T) {
	source := &fakeSource{items: map[string][]feed.Item{"technology": techItems(3)}}
	agg, _ := newTestAggregator(source, nil)

	agg.ListArticles("technology", "", 1, 10)
	if err := agg.RefreshCategory("technology"); err != nil {
		t.Errorf("Expected refresh to succeed, got %v", err)
	}

	source.mu.Lock()
	calls := source.calls
	source.mu.Unlock()
	if calls != 2 {
		t.Errorf("Expected refresh to bypass the cache, got %d calls", calls)
	}

	if err := agg.RefreshCategory("gardening"); err == nil {
		t.Error("Expected refresh of unknown category to fail")
	}
}

func TestAggregator_AvailableCategories(t *testing.T) {
	agg, _ := newTestAggregator(&fakeSource{}, nil)

	names := agg.AvailableCategories()
	if len(names) != 3 {
		t.Fatalf("Expected 3 categories, got %d", len(names))
	}
	if names[0] != config.AggregateCategory {
		t.Errorf("Expected aggregate category first, got %s", names[0])
	}
}
