package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gonewsag/internal/models"
)

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("Expected store creation to succeed, got %v", err)
	}
	defer store.Close()

	state := models.NewPersistedState()
	state.Users = []models.UserRecord{{Username: "alice", Password: "hash"}}
	state.Likes["article-1"] = models.LikeRecord{Count: 2, Users: []string{"alice", "bob"}}
	state.Articles["article-1"] = models.Article{
		ID:          "article-1",
		Title:       "A story",
		Source:      "Example",
		PublishedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Categories:  []string{"technology", "news"},
	}
	state.Comments["article-1"] = []models.CommentRecord{
		{ID: "c1", Author: "alice", Text: "hello", Likes: 1, LikedBy: []string{"bob"}},
	}

	if err := store.Save(state); err != nil {
		t.Fatalf("Expected save to succeed, got %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Expected load to succeed, got %v", err)
	}

	if len(loaded.Users) != 1 || loaded.Users[0].Username != "alice" {
		t.Errorf("Expected user alice to round trip, got %+v", loaded.Users)
	}
	if rec := loaded.Likes["article-1"]; rec.Count != 2 || len(rec.Users) != 2 {
		t.Errorf("Expected like record to round trip, got %+v", rec)
	}
	if art := loaded.Articles["article-1"]; art.Title != "A story" || len(art.Categories) != 2 {
		t.Errorf("Expected article to round trip, got %+v", art)
	}
	if cms := loaded.Comments["article-1"]; len(cms) != 1 || cms[0].LikedBy[0] != "bob" {
		t.Errorf("Expected comment to round trip, got %+v", cms)
	}
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Expected store creation to succeed, got %v", err)
	}

	state, err := store.Load()
	if err != nil {
		t.Fatalf("Expected missing file to load as empty state, got %v", err)
	}
	if state == nil || state.Likes == nil || state.Articles == nil || state.Comments == nil {
		t.Error("Expected empty state with initialized maps")
	}
}

func TestFileStore_LoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, stateFileName), []byte("{not json"), 0640); err != nil {
		t.Fatal(err)
	}

	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("Expected store creation to succeed, got %v", err)
	}

	state, err := store.Load()
	if err != nil {
		t.Fatalf("Expected corrupt file to load as empty state, got %v", err)
	}
	if len(state.Articles) != 0 || len(state.Users) != 0 {
		t.Error("Expected empty state after corrupt file")
	}
}

func TestFileStore_SaveOverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewFileStore(dir)

	first := models.NewPersistedState()
	first.Users = []models.UserRecord{{Username: "alice", Password: "hash"}}
	if err := store.Save(first); err != nil {
		t.Fatal(err)
	}

	second := models.NewPersistedState()
	second.Users = []models.UserRecord{{Username: "bob", Password: "hash"}}
	if err := store.Save(second); err != nil {
		t.Fatal(err)
	}

	loaded, _ := store.Load()
	if len(loaded.Users) != 1 || loaded.Users[0].Username != "bob" {
		t.Errorf("Expected latest save to win, got %+v", loaded.Users)
	}

	// No temp file left behind
	if _, err := os.Stat(filepath.Join(dir, stateFileName+".tmp")); !os.IsNotExist(err) {
		t.Error("Expected temp file to be renamed away")
	}
}
