package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when a key has no stored value.
var ErrKeyNotFound = errors.New("key not found")

// Store is a flat key->string persistence namespace. Values are whole
// serialized records; there are no partial updates and no transactions.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
