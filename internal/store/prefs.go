package store

import (
	"context"

	"fyne.io/fyne/v2"
)

// DefaultKey is the preferences key holding the garden blob.
const DefaultKey = "garden_flowers"

// PrefsBackend keeps the blob under one key of the fyne app preferences.
type PrefsBackend struct {
	prefs fyne.Preferences
	key   string
}

// NewPrefsBackend uses key in prefs, or DefaultKey if key is empty.
func NewPrefsBackend(prefs fyne.Preferences, key string) *PrefsBackend {
	if key == "" {
		key = DefaultKey
	}
	return &PrefsBackend{prefs: prefs, key: key}
}

func (b *PrefsBackend) Read(ctx context.Context) ([]byte, error) {
	v := b.prefs.String(b.key)
	if v == "" {
		return nil, ErrNotFound
	}
	return []byte(v), nil
}

func (b *PrefsBackend) Write(ctx context.Context, data []byte) error {
	b.prefs.SetString(b.key, string(data))
	return nil
}

var _ Backend = (*PrefsBackend)(nil)
