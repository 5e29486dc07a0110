package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqguard/go-reqguard/pkg/models"
)

func TestMemoryStoreGetByID(t *testing.T) {
	store := NewMemoryStore()
	store.Put(&models.User{ID: "u1", Username: "alice", Role: models.RoleAdmin})

	user, err := store.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)

	// Annotating the returned copy must not leak into the store.
	user.IsAdmin = true
	again, err := store.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, again.IsAdmin)
}

func TestMemoryStoreMissingUser(t *testing.T) {
	store := NewMemoryStore()

	user, err := store.GetByID(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &models.User{ID: "u1", Username: "alice", Role: models.RoleUser}))

	user, err := store.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, models.RoleUser, user.Role)

	missing, err := store.GetByID(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSQLiteStoreRejectsUnknownRole(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	err = store.Put(context.Background(), &models.User{ID: "u2", Role: "owner"})
	assert.Error(t, err)
}
