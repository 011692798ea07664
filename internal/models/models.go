package models

import (
	"time"
)

// Article represents a single catalogued news article
type Article struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Summary         string    `json:"summary"`
	Image           string    `json:"image,omitempty"`
	URL             string    `json:"url,omitempty"`
	Source          string    `json:"source"`
	PublishedAt     time.Time `json:"published_at"`
	Categories      []string  `json:"categories"`
	PrimaryCategory string    `json:"primary_category"`
}

// HasCategory reports whether the article belongs to the given category
func (a *Article) HasCategory(category string) bool {
	for _, c := range a.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// AddCategory adds a category membership, keeping the set free of duplicates
func (a *Article) AddCategory(category string) {
	if category == "" || a.HasCategory(category) {
		return
	}
	a.Categories = append(a.Categories, category)
}

// ArticleView is an article enriched with its current engagement counts
type ArticleView struct {
	Article
	Likes int `json:"likes"`
}

// ArticlePage represents one page of a listed category
type ArticlePage struct {
	Category     string        `json:"category"`
	Items        []ArticleView `json:"items"`
	TotalResults int           `json:"total_results"`
	Page         int           `json:"page"`
	PageSize     int           `json:"page_size"`
	Degraded     bool          `json:"degraded,omitempty"`
	Updated      time.Time     `json:"updated"`
}

// CommentView is a comment annotated for a specific viewer
type CommentView struct {
	ID        string    `json:"id"`
	ArticleID string    `json:"article_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Likes     int       `json:"likes"`
	Liked     bool      `json:"liked"`
}

// ToggleResult is the outcome of a like toggle
type ToggleResult struct {
	Count int  `json:"count"`
	Liked bool `json:"liked"`
}

// UserRecord is the persisted form of a user account
type UserRecord struct {
	Username string `json:"username"`
	Password string `json:"password"` // bcrypt hash, opaque to the rest of the system
}

// LikeRecord is the persisted form of an article's like state. Users is the
// storage (array) form of the like-set; Count is reconciled against
// len(Users) on load.
type LikeRecord struct {
	Count int      `json:"count"`
	Users []string `json:"users"`
}

// CommentRecord is the persisted form of a comment. ID and LikedBy may be
// absent in records written before comment likes existed; Likes carries the
// legacy plain count for such records.
type CommentRecord struct {
	ID        string    `json:"id,omitempty"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Likes     int       `json:"likes"`
	LikedBy   []string  `json:"liked_by,omitempty"`
}

// PersistedState is the single-document layout of the durable state file
type PersistedState struct {
	Users    []UserRecord               `json:"users"`
	Likes    map[string]LikeRecord      `json:"likes"`
	Articles map[string]Article         `json:"articles"`
	Comments map[string][]CommentRecord `json:"comments"`
}

// NewPersistedState returns an empty state with all maps initialized
func NewPersistedState() *PersistedState {
	return &PersistedState{
		Likes:    make(map[string]LikeRecord),
		Articles: make(map[string]Article),
		Comments: make(map[string][]CommentRecord),
	}
}
