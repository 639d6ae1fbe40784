// Package storage persists uploaded document bytes in a flat directory of
// randomly named files.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DiskStore saves files under a single directory. File names are generated
// with uuid so a client-supplied filename never reaches the filesystem.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed and returns a store.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save writes data under a fresh uuid-based name with the given extension
// and returns the full path.
func (s *DiskStore) Save(data []byte, ext string) (string, error) {
	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return path, nil
}

// Remove deletes a stored file. A file that is already gone is not an error.
func (s *DiskStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
