// Package garden ties the drawing surface, the current tool and the planted
// garden together. A Controller is driven by pointer and button events from
// the UI and is not safe for concurrent use; only its Status may be touched
// from other goroutines.
package garden

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"FlowerGarden/internal/render"
	"FlowerGarden/internal/state"
	"FlowerGarden/internal/store"
)

// User-facing status messages.
const (
	MsgEmptyCanvas = "Draw something first! 🎨"
	MsgPlanted     = "🌸 Planted! 🌸"
)

var (
	// ErrEmptyCanvas is returned by Plant when nothing has been drawn.
	ErrEmptyCanvas = errors.New("canvas is empty")

	// ErrUnknownColor is returned when a colour is not in the palette.
	ErrUnknownColor = errors.New("colour not in palette")

	// ErrUnknownThickness is returned when a thickness is not offered.
	ErrUnknownThickness = errors.New("thickness not offered")
)

// DefaultPalette is the set of colours offered to the user.
var DefaultPalette = []string{"#E91E63", "#FFCDD2", "#FFEB3B", "#81D4FA", "#2E7D32"}

// DefaultThicknesses is the set of pen widths offered to the user.
var DefaultThicknesses = []float64{2, 4, 8, 12}

// View is the screen currently shown.
type View int

const (
	ViewDraw View = iota
	ViewGallery
)

func (v View) String() string {
	if v == ViewGallery {
		return "gallery"
	}
	return "draw"
}

// Tool is the current pen selection.
type Tool struct {
	Color     string
	Thickness float64
	Brush     state.BrushKind
}

// Option configures a Controller.
type Option func(*Controller)

// WithPalette replaces the colour palette. The first colour becomes current.
func WithPalette(colors []string) Option {
	return func(c *Controller) {
		if len(colors) > 0 {
			c.palette = append([]string(nil), colors...)
		}
	}
}

// WithThicknesses replaces the offered pen widths.
func WithThicknesses(ts []float64) Option {
	return func(c *Controller) {
		if len(ts) > 0 {
			c.thicknesses = append([]float64(nil), ts...)
		}
	}
}

// WithBrush sets the initial brush.
func WithBrush(k state.BrushKind) Option {
	return func(c *Controller) { c.tool.Brush = k }
}

// WithPlanter tags every planted flower with id.
func WithPlanter(id string) Option {
	return func(c *Controller) { c.planter = id }
}

// WithClock overrides the time source used to stamp flowers.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithIDs overrides the generator of new flower ids.
func WithIDs(next func() string) Option {
	return func(c *Controller) { c.newID = next }
}

// WithScheduler overrides the timer used to clear status messages.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

// WithStatusDelay sets how long status messages stay visible.
func WithStatusDelay(d time.Duration) Option {
	return func(c *Controller) { c.delay = d }
}

// WithLogger sets the controller's logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// Controller owns the garden, the surface, the tool and the stroke in
// progress.
type Controller struct {
	store   *store.Store
	surface *render.Surface
	logger  *log.Logger

	palette     []string
	thicknesses []float64
	tool        Tool
	planter     string

	garden  state.Garden
	stroke  *state.Stroke
	view    View
	dirty   bool
	saveErr error

	now    func() time.Time
	newID  func() string
	sched  Scheduler
	delay  time.Duration
	status *Status

	onChange func()
}

// New creates a controller. Call Load before use to read the stored garden.
func New(st *store.Store, surface *render.Surface, opts ...Option) *Controller {
	c := &Controller{
		store:       st,
		surface:     surface,
		logger:      log.Default(),
		palette:     DefaultPalette,
		thicknesses: DefaultThicknesses,
		now:         time.Now,
		newID:       state.NewFlowerID,
	}
	c.tool.Thickness = 4
	for _, opt := range opts {
		opt(c)
	}
	c.tool.Color = c.palette[0]
	if !c.offersThickness(c.tool.Thickness) {
		c.tool.Thickness = c.thicknesses[0]
	}
	c.status = newStatus(c.sched, c.delay)
	return c
}

// Load replaces the in-memory garden with the stored one.
func (c *Controller) Load(ctx context.Context) {
	c.garden = c.store.Load(ctx)
	c.dirty = false
	c.logger.Info("Loaded garden", "flowers", c.garden.Len())
	c.changed()
}

// OnChange registers fn to run after any state change visible to the UI.
func (c *Controller) OnChange(fn func()) {
	c.onChange = fn
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

// Surface returns the drawing surface.
func (c *Controller) Surface() *render.Surface { return c.surface }

// Status returns the transient message holder.
func (c *Controller) Status() *Status { return c.status }

// Garden returns the current garden, newest first.
func (c *Controller) Garden() state.Garden { return c.garden }

// Tool returns the current pen selection.
func (c *Controller) Tool() Tool { return c.tool }

// Palette returns the offered colours.
func (c *Controller) Palette() []string { return append([]string(nil), c.palette...) }

// Thicknesses returns the offered pen widths.
func (c *Controller) Thicknesses() []float64 { return append([]float64(nil), c.thicknesses...) }

// View returns the screen currently shown.
func (c *Controller) View() View { return c.view }

// Dirty reports whether the in-memory garden has flowers that could not be
// saved.
func (c *Controller) Dirty() bool { return c.dirty }

// SaveErr returns the error of the last failed save, or nil.
func (c *Controller) SaveErr() error { return c.saveErr }

// Drawing reports whether a stroke is in progress.
func (c *Controller) Drawing() bool { return c.stroke != nil }

// SelectColor makes hex the current colour. It must be in the palette.
func (c *Controller) SelectColor(hex string) error {
	for _, p := range c.palette {
		if strings.EqualFold(p, hex) {
			c.tool.Color = p
			c.changed()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownColor, hex)
}

// SelectThickness makes t the current pen width. It must be offered.
func (c *Controller) SelectThickness(t float64) error {
	if !c.offersThickness(t) {
		return fmt.Errorf("%w: %g", ErrUnknownThickness, t)
	}
	c.tool.Thickness = t
	c.changed()
	return nil
}

func (c *Controller) offersThickness(t float64) bool {
	for _, v := range c.thicknesses {
		if v == t {
			return true
		}
	}
	return false
}

// SelectBrush makes k the current brush.
func (c *Controller) SelectBrush(k state.BrushKind) error {
	if _, err := state.ParseBrush(k.String()); err != nil {
		return err
	}
	c.tool.Brush = k
	c.changed()
	return nil
}

// PointerDown starts a stroke at (x, y), given in a display of size
// displayW x displayH, and paints its first sample.
func (c *Controller) PointerDown(x, y, displayW, displayH float64) state.Rect {
	p := c.surface.MapPoint(x, y, displayW, displayH)
	c.stroke = state.NewStroke(c.tool.Color, c.tool.Thickness, c.tool.Brush, p)
	return c.paintLast()
}

// PointerMove extends the stroke in progress. It does nothing when no
// stroke is active.
func (c *Controller) PointerMove(x, y, displayW, displayH float64) state.Rect {
	if c.stroke == nil {
		return state.Rect{}
	}
	if !c.stroke.Extend(c.surface.MapPoint(x, y, displayW, displayH)) {
		return state.Rect{}
	}
	return c.paintLast()
}

// PointerUp ends the stroke in progress.
func (c *Controller) PointerUp() {
	if c.stroke == nil {
		return
	}
	c.logger.Debug("Stroke finished", "brush", c.stroke.Brush, "samples", len(c.stroke.Points))
	c.stroke = nil
}

func (c *Controller) paintLast() state.Rect {
	damage, err := c.surface.Paint(c.stroke, c.stroke.Last())
	if err != nil {
		c.logger.Error("Paint failed", "err", err)
		return state.Rect{}
	}
	return damage
}

// ClearDrawing wipes the surface and the status message.
func (c *Controller) ClearDrawing() {
	c.stroke = nil
	c.surface.Clear()
	c.status.Clear()
	c.changed()
}

// Plant snapshots the surface into a new flower at the front of the garden,
// saves the garden and clears the surface. An empty surface is rejected with
// ErrEmptyCanvas. A failed save is logged and leaves the flower in memory.
func (c *Controller) Plant(ctx context.Context) (state.Flower, error) {
	c.PointerUp()
	if c.surface.IsEmpty() {
		c.status.Set(MsgEmptyCanvas)
		return state.Flower{}, ErrEmptyCanvas
	}

	img, err := c.surface.EncodePNG()
	if err != nil {
		return state.Flower{}, fmt.Errorf("plant: %w", err)
	}

	id := c.newID()
	for c.garden.Contains(id) {
		id = c.newID()
	}
	f := state.Flower{
		ID:        id,
		Image:     img,
		CreatedAt: state.Stamp(c.now()),
		Color:     c.tool.Color,
		Planter:   c.planter,
	}
	c.garden = c.garden.Prepend(f)
	c.save(ctx)
	c.logger.Info("Planted flower", "id", f.ID, "color", f.Color, "flowers", c.garden.Len())

	c.status.Set(MsgPlanted)
	c.surface.Clear()
	c.changed()
	return f, nil
}

// Import merges flowers from another garden and saves the result. It returns
// how many flowers were new.
func (c *Controller) Import(ctx context.Context, other state.Garden) int {
	merged, added := c.garden.Merge(other)
	if len(added) == 0 {
		return 0
	}
	c.garden = merged
	c.save(ctx)
	c.changed()
	return len(added)
}

func (c *Controller) save(ctx context.Context) {
	if err := c.store.Save(ctx, c.garden); err != nil {
		c.dirty = true
		c.saveErr = err
		c.logger.Error("Could not save garden, keeping it in memory", "err", err)
		return
	}
	c.dirty = false
	c.saveErr = nil
}

// ToggleView switches between drawing and gallery and returns the new view.
func (c *Controller) ToggleView() View {
	if c.view == ViewDraw {
		c.view = ViewGallery
	} else {
		c.view = ViewDraw
	}
	c.changed()
	return c.view
}
