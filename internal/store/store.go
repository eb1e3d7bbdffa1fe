// Package store persists the garden as a single blob.
//
// The blob lives behind a Backend: a JSON file in the data directory, a key in
// the fyne application preferences, or process memory. Load never fails; a
// missing or unreadable blob is an empty garden. Save reports every failure so
// the caller can keep its in-memory state.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"FlowerGarden/internal/state"
)

// DefaultQuota mirrors the usual browser local storage limit.
const DefaultQuota = 5 << 20

var (
	// ErrNotFound is returned by a Backend that holds no blob yet.
	ErrNotFound = errors.New("garden not found")

	// ErrQuotaExceeded is returned when the encoded garden is larger than the
	// store's quota.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Backend reads and writes the raw blob.
type Backend interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// Option configures a Store.
type Option func(*Store)

// WithQuota caps the encoded blob size in bytes. Zero or less disables it.
func WithQuota(n int) Option {
	return func(s *Store) { s.quota = n }
}

// WithLogger sets the logger used for absorbed read failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Store loads and saves gardens through a Backend.
type Store struct {
	backend Backend
	quota   int
	logger  *log.Logger
}

// New returns a Store over b.
func New(b Backend, opts ...Option) *Store {
	s := &Store{
		backend: b,
		quota:   DefaultQuota,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the persisted garden, or an empty one if nothing usable is
// stored.
func (s *Store) Load(ctx context.Context) state.Garden {
	data, err := s.backend.Read(ctx)
	if errors.Is(err, ErrNotFound) {
		s.logger.Debug("No garden stored yet")
		return state.Garden{}
	}
	if err != nil {
		s.logger.Warn("Could not read garden, starting empty", "err", err)
		return state.Garden{}
	}

	g, skipped, err := Decode(data)
	if err != nil {
		s.logger.Warn("Stored garden is malformed, starting empty", "err", err)
		return state.Garden{}
	}
	if skipped > 0 {
		s.logger.Warn("Dropped unreadable or duplicate flowers", "count", skipped)
	}
	s.logger.Debug("Loaded garden", "flowers", g.Len(), "bytes", len(data))
	return g
}

// Save overwrites the stored blob with g.
func (s *Store) Save(ctx context.Context, g state.Garden) error {
	data, err := Encode(g)
	if err != nil {
		return fmt.Errorf("encode garden: %w", err)
	}
	if s.quota > 0 && len(data) > s.quota {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrQuotaExceeded, len(data), s.quota)
	}
	if err := s.backend.Write(ctx, data); err != nil {
		return fmt.Errorf("write garden: %w", err)
	}
	s.logger.Debug("Saved garden", "flowers", g.Len(), "bytes", len(data))
	return nil
}
