package mocks

import (
	"context"
	"sync"

	"github.com/rewear-marketplace-api/internal/storage"
)

// MockStore is an in-memory Store with per-key fault injection and call
// recording, used to exercise persistence-failure paths.
type MockStore struct {
	mu      sync.Mutex
	records map[string]string

	// SetErrors maps keys to errors returned by Set for that key.
	SetErrors map[string]error
	// GetErrors maps keys to errors returned by Get for that key.
	GetErrors map[string]error
	// RemoveErrors maps keys to errors returned by Remove for that key.
	RemoveErrors map[string]error

	// SetCalls records every key passed to Set, in order.
	SetCalls []string
}

// NewMockStore creates an empty mock store.
func NewMockStore() *MockStore {
	return &MockStore{
		records:      make(map[string]string),
		SetErrors:    make(map[string]error),
		GetErrors:    make(map[string]error),
		RemoveErrors: make(map[string]error),
	}
}

// Seed stores a value without going through Set (no recording, no
// fault injection).
func (m *MockStore) Seed(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = value
}

// Value returns the currently stored value for key.
func (m *MockStore) Value(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.records[key]
	return value, ok
}

// Get retrieves the value stored under key.
func (m *MockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.GetErrors[key]; err != nil {
		return "", err
	}
	value, ok := m.records[key]
	if !ok {
		return "", storage.ErrKeyNotFound
	}
	return value, nil
}

// Set stores value under key unless a fault is configured.
func (m *MockStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetCalls = append(m.SetCalls, key)
	if err := m.SetErrors[key]; err != nil {
		return err
	}
	m.records[key] = value
	return nil
}

// Remove deletes the value stored under key unless a fault is configured.
func (m *MockStore) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.RemoveErrors[key]; err != nil {
		return err
	}
	delete(m.records, key)
	return nil
}

// Compile-time check that MockStore implements the Store interface
var _ storage.Store = (*MockStore)(nil)
