package catalog

import (
	"sync"
	"time"

	"gonewsag/internal/models"
)

// Catalog owns the canonical article records, keyed by id. Articles are
// created on first sighting, enriched on every later sighting and never
// deleted.
type Catalog struct {
	mu                sync.RWMutex
	articles          map[string]*models.Article
	aggregateCategory string
}

// Incoming holds the fields observed in one feed sighting of an article
type Incoming struct {
	Title       string
	Summary     string
	Image       string
	URL         string
	Source      string
	PublishedAt time.Time
}

func New(aggregateCategory string) *Catalog {
	return &Catalog{
		articles:          make(map[string]*models.Article),
		aggregateCategory: aggregateCategory,
	}
}

// Upsert records a sighting of an article. A new id creates the record with
// membership {sightedCategory, aggregate}. A known id merges field by field:
// the existing value wins whenever it is populated, so a later sighting can
// fill gaps but never erase data. Category membership accumulates as a set
// union; the primary category follows the most recent sighting.
func (c *Catalog) Upsert(id string, in Incoming, sightedCategory string) models.Article {
	c.mu.Lock()
	defer c.mu.Unlock()

	article, exists := c.articles[id]
	if !exists {
		article = &models.Article{
			ID:          id,
			Title:       in.Title,
			Summary:     in.Summary,
			Image:       in.Image,
			URL:         in.URL,
			Source:      in.Source,
			PublishedAt: in.PublishedAt,
		}
		article.AddCategory(sightedCategory)
		article.AddCategory(c.aggregateCategory)
		c.articles[id] = article
	} else {
		article.Title = keepExisting(article.Title, in.Title)
		article.Summary = keepExisting(article.Summary, in.Summary)
		article.Image = keepExisting(article.Image, in.Image)
		article.URL = keepExisting(article.URL, in.URL)
		article.Source = keepExisting(article.Source, in.Source)
		article.PublishedAt = keepExistingTime(article.PublishedAt, in.PublishedAt)
		article.AddCategory(sightedCategory)
	}
	article.PrimaryCategory = sightedCategory

	return cloneArticle(article)
}

// Get returns the article for an id
func (c *Catalog) Get(id string) (models.Article, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	article, ok := c.articles[id]
	if !ok {
		return models.Article{}, false
	}
	return cloneArticle(article), true
}

// Len returns the number of known articles
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.articles)
}

// Export returns the catalog in its persisted map form
func (c *Catalog) Export() map[string]models.Article {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]models.Article, len(c.articles))
	for id, article := range c.articles {
		out[id] = cloneArticle(article)
	}
	return out
}

// Restore replaces the catalog content from its persisted map form
func (c *Catalog) Restore(articles map[string]models.Article) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.articles = make(map[string]*models.Article, len(articles))
	for id, article := range articles {
		restored := article
		restored.ID = id
		restored.Categories = append([]string(nil), article.Categories...)
		restored.AddCategory(c.aggregateCategory)
		c.articles[id] = &restored
	}
}

// keepExisting is the merge rule for text fields: the existing value wins
// unless it is empty
func keepExisting(existing, incoming string) string {
	if existing != "" {
		return existing
	}
	return incoming
}

// keepExistingTime is the merge rule for timestamps: the existing value wins
// unless it is the zero time
func keepExistingTime(existing, incoming time.Time) time.Time {
	if !existing.IsZero() {
		return existing
	}
	return incoming
}

func cloneArticle(a *models.Article) models.Article {
	out := *a
	out.Categories = append([]string(nil), a.Categories...)
	return out
}
