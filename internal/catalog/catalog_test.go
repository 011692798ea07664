package catalog

import (
	"testing"
	"time"

	"gonewsag/internal/models"
)

func TestCatalog_UpsertCreates(t *testing.T) {
	c := New("news")

	published := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	article := c.Upsert("id-1", Incoming{
		Title:       "First sighting",
		Summary:     "A summary",
		URL:         "https://example.com/a",
		Source:      "Example",
		PublishedAt: published,
	}, "technology")

	if article.ID != "id-1" {
		t.Errorf("Expected id 'id-1', got %s", article.ID)
	}
	if !article.HasCategory("technology") {
		t.Error("Expected membership in sighted category 'technology'")
	}
	if !article.HasCategory("news") {
		t.Error("Expected implicit membership in the aggregate category")
	}
	if article.PrimaryCategory != "technology" {
		t.Errorf("Expected primary category 'technology', got %s", article.PrimaryCategory)
	}
	if !article.PublishedAt.Equal(published) {
		t.Errorf("Expected published time %v, got %v", published, article.PublishedAt)
	}
}

func TestCatalog_UpsertIdenticalIsUnchanged(t *testing.T) {
	c := New("news")

	in := Incoming{
		Title:       "Stable",
		Summary:     "Same every time",
		URL:         "https://example.com/a",
		Source:      "Example",
		PublishedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	first := c.Upsert("id-1", in, "technology")
	second := c.Upsert("id-1", in, "technology")

	if first.Title != second.Title || first.Summary != second.Summary ||
		first.URL != second.URL || first.Source != second.Source ||
		!first.PublishedAt.Equal(second.PublishedAt) {
		t.Error("Expected identical re-upsert to leave the record unchanged")
	}
	if len(second.Categories) != len(first.Categories) {
		t.Errorf("Expected membership to stay %v, got %v", first.Categories, second.Categories)
	}
}

func TestCatalog_MergeFillsEmptyFields(t *testing.T) {
	c := New("news")

	c.Upsert("id-1", Incoming{Title: "Only a title"}, "technology")
	merged := c.Upsert("id-1", Incoming{
		Title:       "A different title",
		Summary:     "Now with a summary",
		Image:       "https://example.com/cover.jpg",
		PublishedAt: time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC),
	}, "technology")

	if merged.Title != "Only a title" {
		t.Errorf("Expected populated title to survive merge, got %s", merged.Title)
	}
	if merged.Summary != "Now with a summary" {
		t.Errorf("Expected empty summary to be filled, got %s", merged.Summary)
	}
	if merged.Image != "https://example.com/cover.jpg" {
		t.Errorf("Expected empty image to be filled, got %s", merged.Image)
	}
	if merged.PublishedAt.IsZero() {
		t.Error("Expected zero published time to be filled")
	}
}

func TestCatalog_MergeNeverErases(t *testing.T) {
	c := New("news")

	published := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c.Upsert("id-1", Incoming{
		Title:       "Full record",
		Summary:     "Summary",
		Image:       "https://example.com/cover.jpg",
		URL:         "https://example.com/a",
		Source:      "Example",
		PublishedAt: published,
	}, "technology")

	merged := c.Upsert("id-1", Incoming{}, "business")

	if merged.Title != "Full record" || merged.Summary != "Summary" ||
		merged.Image != "https://example.com/cover.jpg" || merged.URL != "https://example.com/a" ||
		merged.Source != "Example" || !merged.PublishedAt.Equal(published) {
		t.Error("Expected empty sighting to leave populated fields intact")
	}
}

func TestCatalog_MembershipAccumulates(t *testing.T) {
	c := New("news")

	c.Upsert("id-1", Incoming{Title: "Shared story"}, "technology")
	merged := c.Upsert("id-1", Incoming{Title: "Shared story"}, "business")

	if !merged.HasCategory("technology") || !merged.HasCategory("business") || !merged.HasCategory("news") {
		t.Errorf("Expected membership union, got %v", merged.Categories)
	}
	if merged.PrimaryCategory != "business" {
		t.Errorf("Expected primary category to follow the latest sighting, got %s", merged.PrimaryCategory)
	}

	// Re-sighting an existing category must not duplicate it
	again := c.Upsert("id-1", Incoming{Title: "Shared story"}, "technology")
	count := 0
	for _, cat := range again.Categories {
		if cat == "technology" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected 'technology' once in membership, found %d times", count)
	}
}

func TestCatalog_GetUnknown(t *testing.T) {
	c := New("news")

	if _, ok := c.Get("missing"); ok {
		t.Error("Expected lookup of unknown id to report not found")
	}
}

func TestCatalog_ExportRestore(t *testing.T) {
	c := New("news")
	c.Upsert("id-1", Incoming{Title: "Kept", URL: "https://example.com/a"}, "technology")

	exported := c.Export()

	restored := New("news")
	restored.Restore(exported)

	article, ok := restored.Get("id-1")
	if !ok {
		t.Fatal("Expected restored catalog to contain id-1")
	}
	if article.Title != "Kept" {
		t.Errorf("Expected title 'Kept', got %s", article.Title)
	}
	if !article.HasCategory("news") {
		t.Error("Expected aggregate membership after restore")
	}
}

func TestCatalog_RestoreLegacyWithoutAggregate(t *testing.T) {
	c := New("news")
	c.Restore(map[string]models.Article{
		"id-1": {Title: "Old record", Categories: []string{"technology"}},
	})

	article, _ := c.Get("id-1")
	if !article.HasCategory("news") {
		t.Error("Expected aggregate membership to be backfilled on restore")
	}
}
