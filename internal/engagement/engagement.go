package engagement

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"gonewsag/internal/models"
)

// MaxCommentLength is the maximum accepted comment size in characters
const MaxCommentLength = 300

// Store owns per-article like state and comment threads. Likes are sets of
// usernames; counts are always derived from set cardinality, never carried
// as independent counters.
type Store struct {
	mu       sync.RWMutex
	likes    map[string]map[string]struct{}
	comments map[string][]*comment
}

// comment is the in-memory comment record. id and likedBy stay unset for
// records restored from the pre-comment-like file format until the thread is
// first read; legacyLikes preserves the plain count such records carried.
type comment struct {
	id          string
	author      string
	text        string
	createdAt   time.Time
	likedBy     map[string]struct{}
	legacyLikes int
}

func NewStore() *Store {
	return &Store{
		likes:    make(map[string]map[string]struct{}),
		comments: make(map[string][]*comment),
	}
}

// ToggleArticleLike flips username's membership in the article's like-set.
// Repeated application by the same user alternates liked/unliked; the
// returned count is the set size after the flip.
func (s *Store) ToggleArticleLike(articleID, username string) models.ToggleResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.likes[articleID]
	if !ok {
		set = make(map[string]struct{})
		s.likes[articleID] = set
	}

	if _, liked := set[username]; liked {
		delete(set, username)
		return models.ToggleResult{Count: len(set), Liked: false}
	}
	set[username] = struct{}{}
	return models.ToggleResult{Count: len(set), Liked: true}
}

// ArticleLikes returns the current like count for an article
func (s *Store) ArticleLikes(articleID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.likes[articleID])
}

// AddComment appends a comment to an article's thread. Text is trimmed and
// must be non-empty and at most MaxCommentLength characters.
func (s *Store) AddComment(articleID, username, text string) (models.CommentView, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.CommentView{}, &models.ValidationError{Reason: "comment text is required"}
	}
	if utf8.RuneCountInString(text) > MaxCommentLength {
		return models.CommentView{}, &models.ValidationError{
			Reason: fmt.Sprintf("comment text exceeds %d characters", MaxCommentLength),
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	cm := &comment{
		id:        commentID(articleID, username, now, text),
		author:    username,
		text:      text,
		createdAt: now,
		likedBy:   make(map[string]struct{}),
	}
	s.comments[articleID] = append(s.comments[articleID], cm)

	return cm.view(articleID, username), nil
}

// ToggleCommentLike flips username's membership in one comment's like-set
func (s *Store) ToggleCommentLike(articleID, commentID, username string) (models.ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cm := range s.comments[articleID] {
		cm.upgrade(articleID)
		if cm.id != commentID {
			continue
		}
		if _, liked := cm.likedBy[username]; liked {
			delete(cm.likedBy, username)
			return models.ToggleResult{Count: cm.likeCount(), Liked: false}, nil
		}
		cm.likedBy[username] = struct{}{}
		return models.ToggleResult{Count: cm.likeCount(), Liked: true}, nil
	}

	return models.ToggleResult{}, &models.NotFoundError{Resource: "comment", ID: commentID}
}

// ListComments returns an article's comments newest-first, each annotated
// with whether viewer currently likes it. An empty viewer annotates nothing.
func (s *Store) ListComments(articleID, viewer string) []models.CommentView {
	s.mu.Lock()
	defer s.mu.Unlock()

	thread := s.comments[articleID]
	views := make([]models.CommentView, 0, len(thread))
	for i := len(thread) - 1; i >= 0; i-- {
		thread[i].upgrade(articleID)
		views = append(views, thread[i].view(articleID, viewer))
	}
	return views
}

// Export returns the like and comment state in its persisted (array) form
func (s *Store) Export() (map[string]models.LikeRecord, map[string][]models.CommentRecord) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	likes := make(map[string]models.LikeRecord, len(s.likes))
	for articleID, set := range s.likes {
		likes[articleID] = models.LikeRecord{Count: len(set), Users: sortedMembers(set)}
	}

	comments := make(map[string][]models.CommentRecord, len(s.comments))
	for articleID, thread := range s.comments {
		records := make([]models.CommentRecord, 0, len(thread))
		for _, cm := range thread {
			rec := models.CommentRecord{
				ID:        cm.id,
				Author:    cm.author,
				Text:      cm.text,
				CreatedAt: cm.createdAt,
				Likes:     cm.likeCount(),
			}
			if cm.likedBy != nil {
				rec.LikedBy = sortedMembers(cm.likedBy)
			}
			records = append(records, rec)
		}
		comments[articleID] = records
	}

	return likes, comments
}

// Restore replaces the store content from its persisted form. Like counts
// are recomputed from set cardinality; a stored comment count exceeding its
// liked-by set is preserved as a legacy baseline.
func (s *Store) Restore(likes map[string]models.LikeRecord, comments map[string][]models.CommentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.likes = make(map[string]map[string]struct{}, len(likes))
	for articleID, rec := range likes {
		set := make(map[string]struct{}, len(rec.Users))
		for _, user := range rec.Users {
			set[user] = struct{}{}
		}
		s.likes[articleID] = set
	}

	s.comments = make(map[string][]*comment, len(comments))
	for articleID, records := range comments {
		thread := make([]*comment, 0, len(records))
		for _, rec := range records {
			cm := &comment{
				id:        rec.ID,
				author:    rec.Author,
				text:      rec.Text,
				createdAt: rec.CreatedAt,
			}
			if rec.LikedBy != nil {
				cm.likedBy = make(map[string]struct{}, len(rec.LikedBy))
				for _, user := range rec.LikedBy {
					cm.likedBy[user] = struct{}{}
				}
				if rec.Likes > len(rec.LikedBy) {
					cm.legacyLikes = rec.Likes - len(rec.LikedBy)
				}
			} else {
				// Pre-comment-like record: keep the plain count as the
				// baseline, upgrade on first read
				cm.legacyLikes = rec.Likes
			}
			thread = append(thread, cm)
		}
		s.comments[articleID] = thread
	}
}

// upgrade backfills id and like-set on records from the legacy file format.
// Caller holds the write lock.
func (cm *comment) upgrade(articleID string) {
	if cm.id == "" {
		cm.id = commentID(articleID, cm.author, cm.createdAt, cm.text)
	}
	if cm.likedBy == nil {
		cm.likedBy = make(map[string]struct{})
	}
}

func (cm *comment) likeCount() int {
	return cm.legacyLikes + len(cm.likedBy)
}

func (cm *comment) view(articleID, viewer string) models.CommentView {
	liked := false
	if viewer != "" {
		_, liked = cm.likedBy[viewer]
	}
	return models.CommentView{
		ID:        cm.id,
		ArticleID: articleID,
		Author:    cm.author,
		Text:      cm.text,
		CreatedAt: cm.createdAt,
		Likes:     cm.likeCount(),
		Liked:     liked,
	}
}

// commentID derives a deterministic id from the comment's identifying
// fields. Exact duplicate resubmission within the same millisecond collapses
// to the same id.
func commentID(articleID, author string, createdAt time.Time, text string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d|%s", articleID, author, createdAt.UnixMilli(), text)))
	return hex.EncodeToString(sum[:])
}

func sortedMembers(set map[string]struct{}) []string {
	members := make([]string, 0, len(set))
	for user := range set {
		members = append(members, user)
	}
	sort.Strings(members)
	return members
}
