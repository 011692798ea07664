package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"gonewsag/internal/models"
)

const stateFileName = "state.json"

// FileStore persists the application state as a single JSON document.
// Writes go to a temp file first and are renamed into place so a crash
// mid-write never leaves a half-written state file behind.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %v", err)
	}
	return &FileStore{path: filepath.Join(dataDir, stateFileName)}, nil
}

func (s *FileStore) Save(state *models.PersistedState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return &models.PersistenceError{Op: "encode", Err: err}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0640); err != nil {
		return &models.PersistenceError{Op: "write", Err: err}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return &models.PersistenceError{Op: "rename", Err: err}
	}
	return nil
}

// Load reads the state file. A missing or unreadable file is not fatal:
// the service starts from empty state and logs the condition.
func (s *FileStore) Load() (*models.PersistedState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("No state file at %s, starting with empty state", s.path)
		} else {
			log.Printf("Warning: failed to read state file %s, starting with empty state: %v", s.path, err)
		}
		return models.NewPersistedState(), nil
	}

	state := models.NewPersistedState()
	if err := json.Unmarshal(data, state); err != nil {
		log.Printf("Warning: state file %s is corrupt, starting with empty state: %v", s.path, err)
		return models.NewPersistedState(), nil
	}

	// Unmarshalling may have nilled the maps on a partial document
	if state.Likes == nil {
		state.Likes = make(map[string]models.LikeRecord)
	}
	if state.Articles == nil {
		state.Articles = make(map[string]models.Article)
	}
	if state.Comments == nil {
		state.Comments = make(map[string][]models.CommentRecord)
	}

	return state, nil
}

func (s *FileStore) Close() error {
	return nil
}
