package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultFileName is the blob file name inside the data directory.
const DefaultFileName = "garden.json"

// FileBackend keeps the blob in a single JSON file.
type FileBackend struct {
	mu   sync.Mutex
	path string
}

// NewFileBackend stores the blob as DefaultFileName under dir. If dir is
// empty, it defaults to the user config directory.
func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("get config dir: %w", err)
		}
		dir = filepath.Join(base, "flowergarden")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileBackend{path: filepath.Join(dir, DefaultFileName)}, nil
}

// Path returns the blob file location.
func (b *FileBackend) Path() string { return b.path }

func (b *FileBackend) Read(ctx context.Context) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", b.path, err)
	}
	return data, nil
}

// Write replaces the file atomically so a crash never leaves half a garden.
func (b *FileBackend) Write(ctx context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(b.path), ".garden-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("replace %s: %w", b.path, err)
	}
	return nil
}

var _ Backend = (*FileBackend)(nil)
