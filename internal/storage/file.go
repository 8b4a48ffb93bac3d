package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore is a filesystem-backed implementation of the Store
// interface. Each key is stored as one file under the root directory:
//
//	<root>/
//	  <key>.json
//
// Writes are atomic (temp file + rename) so a crash mid-write never
// leaves a half-written record behind.
type FileStore struct {
	root string
}

// NewFileStore creates a file store rooted at the given directory,
// creating it if necessary.
func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileStore{root: root}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.root, key+".json")
}

// Get retrieves the value stored under key.
func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to read record: %w", err)
	}
	return string(data), nil
}

// Set stores value under key using an atomic write.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	destPath := s.path(key)

	// Temp file in the same directory so the rename stays on one filesystem
	tmpFile, err := os.CreateTemp(s.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.WriteString(value); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write record: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// Remove deletes the value stored under key. Removing a missing key is
// not an error.
func (s *FileStore) Remove(ctx context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove record: %w", err)
	}
	return nil
}

// Compile-time check that FileStore implements the Store interface
var _ Store = (*FileStore)(nil)
