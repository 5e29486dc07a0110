package storage

import (
	"context"

	"github.com/reqguard/go-reqguard/pkg/models"
)

// UserDirectory defines the lookup the auth resolver needs from the user
// store. Implementations can use any backend: in-memory, SQLite, an
// external directory service, etc.
//
// The resolver treats a failed lookup the same as a missing user, so
// implementations should reserve errors for genuine backend failures.
type UserDirectory interface {
	// GetByID retrieves a user record by id.
	// Returns nil, nil if no such user exists.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
