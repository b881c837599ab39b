package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/huangsam/hangarlog/internal/contract"
	"github.com/huangsam/hangarlog/schema"
)

// FSStore keeps each photo as a file in one directory.
type FSStore struct {
	dir string
}

var _ contract.BlobStore = &FSStore{} // Compile-time check

// NewFSStore returns a store rooted at dir. The directory is created on first save.
func NewFSStore(dir string) *FSStore {
	return &FSStore{dir: dir}
}

func (s *FSStore) path(key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, key), nil
}

// Save writes the data under a new key.
func (s *FSStore) Save(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create photo directory %s: %w", s.dir, err)
	}

	key := NewKey(data)
	path := filepath.Join(s.dir, key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write photo %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to store photo %s: %w", key, err)
	}
	return key, nil
}

// Load reads the data stored under key.
func (s *FSStore) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, schema.ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read photo %s: %w", key, err)
	}
	return data, nil
}

// Delete removes the data stored under key. Missing keys are not an error.
func (s *FSStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete photo %s: %w", key, err)
	}
	return nil
}
