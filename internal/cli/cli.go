// Package cli implements the flowergarden command line: the GUI by default
// and a few gallery maintenance commands.
package cli

import (
	"context"
	"fmt"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"FlowerGarden/internal/config"
	"FlowerGarden/internal/garden"
	"FlowerGarden/internal/render"
	"FlowerGarden/internal/store"
	"FlowerGarden/internal/ui"
)

// AppID identifies the application to Fyne, which keys preferences on it.
const AppID = "io.github.flowergarden"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// NewApp creates the Fyne app. It is only called for the GUI and the
	// prefs backend.
	NewApp func() fyne.App

	configPath string
	dataDir    string
	backend    string
	ephemeral  bool

	app fyne.App
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		NewApp: func() fyne.App { return app.NewWithID(AppID) },
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root command. Run without a subcommand it opens
// the drawing window.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "flowergarden",
		Short:        "Draw flowers and plant them in your garden",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			ui.RunApp(c.fyneApp(), ctrl, c.Logger)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default is the user config dir)")
	flags.StringVar(&c.dataDir, "data-dir", "", "directory holding garden.json for the file backend")
	flags.StringVar(&c.backend, "backend", "", "storage backend: file, prefs or memory")
	flags.BoolVar(&c.ephemeral, "ephemeral", false, "keep the garden in memory only")

	root.AddCommand(c.galleryCommand())
	return root
}

func (c *CLI) fyneApp() fyne.App {
	if c.app == nil {
		c.app = c.NewApp()
	}
	return c.app
}

// loadConfig reads the config file and applies the command line overrides.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	if c.dataDir != "" {
		cfg.Storage.Dir = c.dataDir
	}
	if c.backend != "" {
		cfg.Storage.Backend = c.backend
	}
	if c.ephemeral {
		cfg.Storage.Backend = config.BackendMemory
	}
	return cfg, cfg.Validate()
}

func (c *CLI) newBackend(s config.Storage) (store.Backend, error) {
	switch s.Backend {
	case config.BackendFile:
		b, err := store.NewFileBackend(s.Dir)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("Using file backend", "path", b.Path())
		return b, nil
	case config.BackendPrefs:
		c.Logger.Debug("Using preferences backend", "key", s.Key)
		return store.NewPrefsBackend(c.fyneApp().Preferences(), s.Key), nil
	case config.BackendMemory:
		c.Logger.Warn("Garden is kept in memory only and will be lost on exit")
		return store.NewMemoryBackend(nil), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", s.Backend)
}

// open builds a controller from the configuration and loads the garden.
func (c *CLI) open(ctx context.Context) (*garden.Controller, config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	b, err := c.newBackend(cfg.Storage)
	if err != nil {
		return nil, cfg, err
	}

	st := store.New(b, store.WithQuota(cfg.Storage.QuotaBytes), store.WithLogger(c.Logger.WithPrefix("store")))
	surface := render.NewSurface(cfg.Canvas.Size, cfg.Canvas.Size,
		render.WithAccent(cfg.Canvas.Accent),
		render.WithSprayDots(cfg.Canvas.SprayDots),
	)
	ctrl := garden.New(st, surface,
		garden.WithPalette(cfg.Canvas.Palette),
		garden.WithThicknesses(cfg.Canvas.Thicknesses),
		garden.WithBrush(cfg.Canvas.Brush),
		garden.WithPlanter(cfg.Planter),
		garden.WithStatusDelay(cfg.Status.Delay.Duration),
		garden.WithLogger(c.Logger.WithPrefix("garden")),
	)
	ctrl.Load(ctx)
	return ctrl, cfg, nil
}
