// Package session provides the key/value store behind session-backed
// bearer tokens. Implementations can use any backend: in-memory for
// single-process deployments, Redis for shared state.
//
// The store is gated by an enabled flag: callers must check Enabled before
// reading or writing, and a disabled store degrades to "session not
// retrievable later" rather than an error.
package session

import (
	"context"
	"time"
)

// Store maps a random session key to an arbitrary payload with optional
// expiry.
type Store interface {
	// Enabled reports whether the store is backed by anything at all.
	Enabled() bool

	// Get retrieves the payload stored under key. A missing or expired
	// key yields nil, nil.
	Get(ctx context.Context, key string) (map[string]any, error)

	// Set stores payload under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, payload map[string]any, ttl time.Duration) error
}

// Disabled returns a Store that holds nothing. Writes are dropped and
// reads always miss.
func Disabled() Store {
	return disabledStore{}
}

type disabledStore struct{}

func (disabledStore) Enabled() bool { return false }

func (disabledStore) Get(context.Context, string) (map[string]any, error) {
	return nil, nil
}

func (disabledStore) Set(context.Context, string, map[string]any, time.Duration) error {
	return nil
}
