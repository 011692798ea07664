package aggregator

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"gonewsag/internal/cache"
	"gonewsag/internal/catalog"
	"gonewsag/internal/config"
	"gonewsag/internal/engagement"
	"gonewsag/internal/feed"
	"gonewsag/internal/identity"
	"gonewsag/internal/models"
)

// Aggregator merges upstream category feeds into the article catalog and
// serves deduplicated, time-ordered, paginated views of it
type Aggregator struct {
	cacheManager *cache.Manager
	catalog      *catalog.Catalog
	engagement   *engagement.Store
	source       feed.Source
	resolver     *identity.Resolver
	categories   map[string]config.CategoryConfig
	cacheTTL     time.Duration
	fetchTimeout time.Duration
	pageSize     int
	maxPageSize  int
	persist      func()
}

// sighting is one raw record tagged with the category it was fetched under
type sighting struct {
	category string
	item     feed.Item
}

type fetchResult struct {
	category string
	items    []feed.Item
	err      error
}

// New creates an aggregator. persist is invoked once after any fetch round
// that upserted articles, batching catalog writes per round instead of per
// article; nil disables persistence.
func New(cacheManager *cache.Manager, cat *catalog.Catalog, eng *engagement.Store, source feed.Source, cfg *config.Config, persist func()) *Aggregator {
	if persist == nil {
		persist = func() {}
	}
	return &Aggregator{
		cacheManager: cacheManager,
		catalog:      cat,
		engagement:   eng,
		source:       source,
		resolver:     identity.NewResolver(),
		categories:   cfg.Categories,
		cacheTTL:     cfg.CacheTTL,
		fetchTimeout: cfg.FeedTimeout + 5*time.Second,
		pageSize:     cfg.DefaultPageSize,
		maxPageSize:  cfg.MaxPageSize,
		persist:      persist,
	}
}

// AvailableCategories returns the aggregate category followed by every
// concrete category
func (a *Aggregator) AvailableCategories() []string {
	names := make([]string, 0, len(a.categories)+1)
	names = append(names, config.AggregateCategory)
	for name := range a.categories {
		names = append(names, name)
	}
	sort.Strings(names[1:])
	return names
}

// ListArticles returns one page of the requested category. The aggregate
// category fans out to every concrete category, dedups by canonical URL and
// sorts newest-first; a concrete category lists its own feed. Upstream
// failures degrade: partial results are served silently, a total failure
// yields a fixed placeholder set instead of an error.
func (a *Aggregator) ListArticles(category, query string, page, pageSize int) (*models.ArticlePage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = a.pageSize
	}
	if pageSize > a.maxPageSize {
		pageSize = a.maxPageSize
	}

	targets, err := a.targetCategories(category)
	if err != nil {
		return nil, err
	}

	sightings, allFailed := a.fetchCategoriesParallel(targets, query)
	if len(sightings) == 0 && allFailed {
		return a.degradedPage(category, page, pageSize), nil
	}

	articles := make([]models.Article, 0, len(sightings))
	for _, s := range sightings {
		id := a.resolver.Resolve(s.item.URL)
		articles = append(articles, a.catalog.Upsert(id, catalog.Incoming{
			Title:       s.item.Title,
			Summary:     s.item.Description,
			Image:       s.item.ImageURL,
			URL:         s.item.URL,
			Source:      s.item.SourceName,
			PublishedAt: s.item.PublishedAt,
		}, s.category))
	}
	if len(articles) > 0 {
		a.persist()
	}

	if category == config.AggregateCategory {
		articles = dedupByURL(articles)
		sortByPublishedDesc(articles)
	} else {
		articles = filterByCategory(articles, category)
	}

	items := make([]models.ArticleView, 0, len(articles))
	for _, article := range articles {
		items = append(items, models.ArticleView{
			Article: article,
			Likes:   a.engagement.ArticleLikes(article.ID),
		})
	}

	total := len(items)
	return &models.ArticlePage{
		Category:     category,
		Items:        pageSlice(items, page, pageSize),
		TotalResults: total,
		Page:         page,
		PageSize:     pageSize,
		Updated:      time.Now(),
	}, nil
}

// GetArticle returns one catalogued article with its like count
func (a *Aggregator) GetArticle(id string) (*models.ArticleView, error) {
	article, ok := a.catalog.Get(id)
	if !ok {
		return nil, &models.NotFoundError{Resource: "article", ID: id}
	}
	return &models.ArticleView{
		Article: article,
		Likes:   a.engagement.ArticleLikes(id),
	}, nil
}

// Trending lists the configured trending category through the same
// aggregation machinery
func (a *Aggregator) Trending(category string, limit int) (*models.ArticlePage, error) {
	return a.ListArticles(category, "", 1, limit)
}

// RefreshCategory drops the cached fetch for a category and re-lists it,
// pulling fresh articles into the catalog
func (a *Aggregator) RefreshCategory(category string) error {
	if _, err := a.targetCategories(category); err != nil {
		return err
	}
	a.cacheManager.Delete(cache.FeedKey(category, ""))
	_, err := a.ListArticles(category, "", 1, a.pageSize)
	return err
}

func (a *Aggregator) targetCategories(category string) ([]string, error) {
	if category == config.AggregateCategory {
		names := make([]string, 0, len(a.categories))
		for name := range a.categories {
			names = append(names, name)
		}
		sort.Strings(names)
		return names, nil
	}
	if _, ok := a.categories[category]; !ok {
		return nil, &models.NotFoundError{Resource: "category", ID: category}
	}
	return []string{category}, nil
}

// fetchCategoriesParallel fans out one fetch per category and joins them all
// before any catalog mutation happens. Failed categories are logged and
// skipped; the second return value reports whether every fetch failed.
func (a *Aggregator) fetchCategoriesParallel(names []string, query string) ([]sighting, bool) {
	results := make(chan fetchResult, len(names))
	var wg sync.WaitGroup

	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			items, err := a.fetchCategory(name, query)
			results <- fetchResult{category: name, items: items, err: err}
		}(name)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	fetched := make(map[string][]feed.Item, len(names))
	failures := 0
	timeout := time.After(a.fetchTimeout)

collect:
	for {
		select {
		case result, ok := <-results:
			if !ok {
				break collect
			}
			if result.err != nil {
				log.Printf("Error fetching category %s: %v", result.category, result.err)
				failures++
			} else {
				fetched[result.category] = result.items
			}
		case <-timeout:
			log.Printf("Timeout waiting for category fetches")
			break collect
		}
	}

	// Re-assemble in requested order so aggregate dedup stays stable
	var sightings []sighting
	for _, name := range names {
		for _, item := range fetched[name] {
			sightings = append(sightings, sighting{category: name, item: item})
		}
	}
	return sightings, len(fetched) == 0
}

func (a *Aggregator) fetchCategory(name, query string) ([]feed.Item, error) {
	key := cache.FeedKey(name, query)
	if cached, found := a.cacheManager.Get(key); found {
		if items, ok := cached.([]feed.Item); ok {
			return items, nil
		}
	}

	items, err := a.source.Fetch(context.Background(), a.categories[name], query, a.maxPageSize)
	if err != nil {
		return nil, err
	}
	a.cacheManager.Set(key, items, a.cacheTTL)
	return items, nil
}

// degradedPage is served when every upstream fetch failed: a fixed,
// clearly-marked placeholder set instead of an error
func (a *Aggregator) degradedPage(category string, page, pageSize int) *models.ArticlePage {
	items := make([]models.ArticleView, 0, 3)
	for i := 1; i <= 3; i++ {
		items = append(items, models.ArticleView{Article: models.Article{
			ID:              fmt.Sprintf("unavailable-%d", i),
			Title:           "News temporarily unavailable",
			Summary:         "We could not reach any news source. Please check back shortly.",
			Source:          "system",
			Categories:      []string{category},
			PrimaryCategory: category,
		}})
	}

	total := len(items)
	return &models.ArticlePage{
		Category:     category,
		Items:        pageSlice(items, page, pageSize),
		TotalResults: total,
		Page:         page,
		PageSize:     pageSize,
		Degraded:     true,
		Updated:      time.Now(),
	}
}

// dedupByURL keeps the first occurrence of each canonical URL; records
// without a URL are kept as-is
func dedupByURL(articles []models.Article) []models.Article {
	seen := make(map[string]bool, len(articles))
	out := articles[:0]
	for _, article := range articles {
		if article.URL != "" {
			if seen[article.URL] {
				continue
			}
			seen[article.URL] = true
		}
		out = append(out, article)
	}
	return out
}

// sortByPublishedDesc orders newest first; a missing timestamp sorts as the
// epoch, landing at the end
func sortByPublishedDesc(articles []models.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
}

func filterByCategory(articles []models.Article, category string) []models.Article {
	out := articles[:0]
	for _, article := range articles {
		if article.HasCategory(category) {
			out = append(out, article)
		}
	}
	return out
}

// pageSlice applies the page window; pages past the end return an empty,
// non-nil slice
func pageSlice(items []models.ArticleView, page, pageSize int) []models.ArticleView {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []models.ArticleView{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
