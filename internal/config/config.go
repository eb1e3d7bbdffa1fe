// Package config loads FlowerGarden settings from an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"

	"FlowerGarden/internal/garden"
	"FlowerGarden/internal/render"
	"FlowerGarden/internal/state"
	"FlowerGarden/internal/store"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendPrefs  = "prefs"
	BackendMemory = "memory"
)

// FileName is the config file looked up in the user config directory.
const FileName = "config.toml"

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Duration is a time.Duration written as a string such as "2s" in TOML.
type Duration struct{ time.Duration }

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Canvas holds drawing settings.
type Canvas struct {
	Size        int             `toml:"size"`
	Palette     []string        `toml:"palette"`
	Thicknesses []float64       `toml:"thicknesses"`
	Brush       state.BrushKind `toml:"brush"`
	Accent      string          `toml:"accent"`
	SprayDots   int             `toml:"spray_dots"`
}

// Storage selects where the garden is kept.
type Storage struct {
	Backend    string `toml:"backend"`
	Dir        string `toml:"dir"`
	Key        string `toml:"key"`
	QuotaBytes int    `toml:"quota_bytes"`
}

// Status configures the transient message.
type Status struct {
	Delay Duration `toml:"delay"`
}

// Config is the full application configuration.
type Config struct {
	Canvas  Canvas  `toml:"canvas"`
	Storage Storage `toml:"storage"`
	Status  Status  `toml:"status"`
	Planter string  `toml:"planter"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Canvas: Canvas{
			Size:        render.DefaultSize,
			Palette:     append([]string(nil), garden.DefaultPalette...),
			Thicknesses: append([]float64(nil), garden.DefaultThicknesses...),
			Brush:       state.BrushLine,
			Accent:      render.DefaultAccent,
			SprayDots:   render.DefaultSprayDots,
		},
		Storage: Storage{
			Backend:    BackendFile,
			Key:        store.DefaultKey,
			QuotaBytes: store.DefaultQuota,
		},
		Status: Status{Delay: Duration{garden.DefaultStatusDelay}},
	}
}

// DefaultPath returns the config file location in the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(dir, "flowergarden", FileName), nil
}

// Load reads path over the defaults. An empty path means DefaultPath, and a
// missing default file is not an error. An explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, cfg.Validate()
		}
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the configuration for values the app cannot run with.
func (c Config) Validate() error {
	if c.Canvas.Size <= 0 {
		return fmt.Errorf("canvas.size must be positive, got %d", c.Canvas.Size)
	}
	if len(c.Canvas.Palette) == 0 {
		return errors.New("canvas.palette must not be empty")
	}
	for _, col := range append([]string{c.Canvas.Accent}, c.Canvas.Palette...) {
		if !hexColor.MatchString(col) {
			return fmt.Errorf("invalid colour %q, want #RRGGBB", col)
		}
	}
	if len(c.Canvas.Thicknesses) == 0 {
		return errors.New("canvas.thicknesses must not be empty")
	}
	for _, t := range c.Canvas.Thicknesses {
		if t <= 0 {
			return fmt.Errorf("canvas.thicknesses must be positive, got %g", t)
		}
	}
	if c.Canvas.SprayDots <= 0 {
		return fmt.Errorf("canvas.spray_dots must be positive, got %d", c.Canvas.SprayDots)
	}
	switch c.Storage.Backend {
	case BackendFile, BackendPrefs, BackendMemory:
	default:
		return fmt.Errorf("unknown storage.backend %q", c.Storage.Backend)
	}
	if c.Status.Delay.Duration <= 0 {
		return errors.New("status.delay must be positive")
	}
	return nil
}
