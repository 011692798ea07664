package storage

import (
	"gonewsag/internal/models"
)

// Store defines the durable backend for the application state. The whole
// state travels as one document: write-through callers save it after every
// mutation and load it once at startup.
type Store interface {
	Save(state *models.PersistedState) error
	Load() (*models.PersistedState, error)
	Close() error
}
