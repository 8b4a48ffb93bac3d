package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/rewear-marketplace-api/internal/database"
)

// PostgresStore keeps the key->value namespace in a single kv_records
// table. Records are still whole serialized collections; the table is
// not a relational schema for the domain.
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore creates a Postgres-backed store.
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Get retrieves the value stored under key.
func (s *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM kv_records WHERE key = $1", key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set stores value under key, overwriting any existing value.
func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_records (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query, key, value, time.Now())
	return err
}

// Remove deletes the value stored under key. Removing a missing key is
// not an error.
func (s *PostgresStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM kv_records WHERE key = $1", key)
	return err
}

// Compile-time check that PostgresStore implements the Store interface
var _ Store = (*PostgresStore)(nil)
