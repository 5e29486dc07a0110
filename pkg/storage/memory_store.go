package storage

import (
	"context"
	"sync"

	"github.com/reqguard/go-reqguard/pkg/models"
)

// MemoryStore is a thread-safe in-memory user directory, intended for
// tests and local development.
type MemoryStore struct {
	users map[string]*models.User // key: user id
	mu    sync.RWMutex
}

// NewMemoryStore creates an empty in-memory directory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]*models.User),
	}
}

// Put adds or replaces a user record.
func (m *MemoryStore) Put(user *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

// GetByID returns the stored user, or nil, nil when absent.
func (m *MemoryStore) GetByID(_ context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	// Copy so callers can annotate (e.g. IsAdmin) without mutating the store.
	u := *user
	return &u, nil
}
