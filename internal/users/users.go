package users

import (
	"sort"
	"strings"
	"sync"

	"gonewsag/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// Registry owns the registered user accounts. Passwords are stored as
// bcrypt hashes; the raw credential never leaves the Register/Authenticate
// calls.
type Registry struct {
	mu    sync.RWMutex
	users map[string]string // username -> bcrypt hash
}

func NewRegistry() *Registry {
	return &Registry{users: make(map[string]string)}
}

// Register creates a new account. Missing credentials and duplicate
// usernames are validation failures.
func (r *Registry) Register(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return &models.ValidationError{Reason: "username and password are required"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[username]; exists {
		return &models.ValidationError{Reason: "username already taken"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	r.users[username] = string(hash)
	return nil
}

// Authenticate checks a credential pair. Unknown users and wrong passwords
// both report the same auth failure.
func (r *Registry) Authenticate(username, password string) error {
	r.mu.RLock()
	hash, exists := r.users[strings.TrimSpace(username)]
	r.mu.RUnlock()

	if !exists || bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return &models.AuthError{Reason: "invalid credentials"}
	}
	return nil
}

// Exists reports whether the username is registered
func (r *Registry) Exists(username string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.users[username]
	return exists
}

// Export returns the accounts in their persisted form, sorted by username
func (r *Registry) Export() []models.UserRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]models.UserRecord, 0, len(r.users))
	for username, hash := range r.users {
		records = append(records, models.UserRecord{Username: username, Password: hash})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Username < records[j].Username })
	return records
}

// Restore replaces the registry content from its persisted form
func (r *Registry) Restore(records []models.UserRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = make(map[string]string, len(records))
	for _, rec := range records {
		if rec.Username == "" {
			continue
		}
		r.users[rec.Username] = rec.Password
	}
}
