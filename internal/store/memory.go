package store

import (
	"bytes"
	"context"
	"sync"
)

// MemoryBackend keeps the blob in process memory. ReadErr and WriteErr, when
// set, are returned instead of touching the blob.
type MemoryBackend struct {
	mu       sync.Mutex
	data     []byte
	ReadErr  error
	WriteErr error
}

// NewMemoryBackend returns an in-memory backend holding seed. A nil seed
// means nothing is stored yet.
func NewMemoryBackend(seed []byte) *MemoryBackend {
	return &MemoryBackend{data: bytes.Clone(seed)}
}

func (b *MemoryBackend) Read(ctx context.Context) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ReadErr != nil {
		return nil, b.ReadErr
	}
	if b.data == nil {
		return nil, ErrNotFound
	}
	return bytes.Clone(b.data), nil
}

func (b *MemoryBackend) Write(ctx context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.WriteErr != nil {
		return b.WriteErr
	}
	b.data = bytes.Clone(data)
	return nil
}

var _ Backend = (*MemoryBackend)(nil)
