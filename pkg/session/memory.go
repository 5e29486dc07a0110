package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory session store. It's suitable for
// single-server deployments; use RedisStore when session state must be
// shared.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*storedSession
	done     chan struct{}
}

type storedSession struct {
	payload   map[string]any
	expiresAt time.Time // zero means no expiry
}

// NewMemoryStore creates an in-memory store that sweeps expired entries
// once a minute.
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		sessions: make(map[string]*storedSession),
		done:     make(chan struct{}),
	}
	go store.cleanupLoop(time.Minute)
	return store
}

func (m *MemoryStore) Enabled() bool { return true }

func (m *MemoryStore) Get(_ context.Context, key string) (map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[key]
	if !ok {
		return nil, nil
	}
	if !s.expiresAt.IsZero() && time.Now().After(s.expiresAt) {
		return nil, nil
	}
	return s.payload, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, payload map[string]any, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[key] = &storedSession{payload: payload, expiresAt: expiresAt}
	return nil
}

// Close stops the cleanup loop.
func (m *MemoryStore) Close() {
	close(m.done)
}

func (m *MemoryStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.removeExpired()
		}
	}
}

func (m *MemoryStore) removeExpired() {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, s := range m.sessions {
		if !s.expiresAt.IsZero() && now.After(s.expiresAt) {
			delete(m.sessions, key)
		}
	}
}
