package state

import (
	"time"

	"github.com/google/uuid"
)

// NewFlowerID returns a fresh unique flower id.
func NewFlowerID() string {
	return uuid.NewString()
}

// Stamp normalises t to the precision kept by the persisted timestamp format
// (UTC, milliseconds) so a planted flower reloads with an identical CreatedAt.
func Stamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
