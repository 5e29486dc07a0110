package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/reqguard/go-reqguard/pkg/models"
)

// SQLiteStore is a user directory backed by an embedded SQLite database,
// so the server can run standalone without an external directory service.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed initializes) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'user'
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init users table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// GetByID returns the stored user, or nil, nil when absent.
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, role FROM users WHERE id = ?", id).
		Scan(&u.ID, &u.Username, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

// Put adds or replaces a user record.
func (s *SQLiteStore) Put(ctx context.Context, user *models.User) error {
	if !models.IsValidRole(user.Role) {
		return fmt.Errorf("invalid role: %s", user.Role)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, role) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET username = excluded.username, role = excluded.role`,
		user.ID, user.Username, user.Role)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
