// Package render draws pointer strokes onto a fixed-size raster surface.
//
// A Surface owns a software gg context. Strokes are painted one sample at a
// time through Paint, which dispatches on the stroke's brush kind.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"time"

	"github.com/gogpu/gg"

	"FlowerGarden/internal/state"
)

const (
	// DefaultSize is the native edge length of the square drawing surface.
	DefaultSize = 450
	// DefaultSprayDots is how many dots one spray sample scatters.
	DefaultSprayDots = 15
	// DefaultAccent is the centre colour of a stamped flower.
	DefaultAccent = "#FFEB3B"
)

// Option configures a Surface.
type Option func(*Surface)

// WithRand sets the random source used by the spray brush.
func WithRand(rng *rand.Rand) Option {
	return func(s *Surface) { s.rng = rng }
}

// WithAccent sets the stamp centre colour from a hex string.
func WithAccent(hex string) Option {
	return func(s *Surface) { s.accent = gg.Hex(hex) }
}

// WithSprayDots sets the number of dots per spray sample.
func WithSprayDots(n int) Option {
	return func(s *Surface) {
		if n > 0 {
			s.sprayDots = n
		}
	}
}

// Surface is the raster that strokes are painted on.
type Surface struct {
	dc        *gg.Context
	rng       *rand.Rand
	accent    gg.RGBA
	sprayDots int
}

// NewSurface creates a transparent surface of width x height native pixels.
func NewSurface(width, height int, opts ...Option) *Surface {
	s := &Surface{
		dc:        gg.NewContext(width, height),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		accent:    gg.Hex(DefaultAccent),
		sprayDots: DefaultSprayDots,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.dc.SetLineCap(gg.LineCapRound)
	s.dc.SetLineJoin(gg.LineJoinRound)
	return s
}

// Width returns the native pixel width.
func (s *Surface) Width() int { return s.dc.Width() }

// Height returns the native pixel height.
func (s *Surface) Height() int { return s.dc.Height() }

// Bounds returns the surface as a state.Rect.
func (s *Surface) Bounds() state.Rect {
	return state.Rect{MaxX: s.Width(), MaxY: s.Height()}
}

// MapPoint rescales a position given in display coordinates into native
// pixels. The surface may be shown larger or smaller than its resolution.
func (s *Surface) MapPoint(x, y, displayW, displayH float64) state.Point {
	sx, sy := 1.0, 1.0
	if displayW > 0 {
		sx = float64(s.Width()) / displayW
	}
	if displayH > 0 {
		sy = float64(s.Height()) / displayH
	}
	return state.Point{X: x * sx, Y: y * sy}
}

// Clear resets every channel of every pixel to zero.
func (s *Surface) Clear() {
	s.dc.Clear()
}

// IsEmpty reports whether every pixel channel is zero.
func (s *Surface) IsEmpty() bool {
	_ = s.dc.FlushGPU()
	for _, v := range s.dc.ResizeTarget().Data() {
		if v != 0 {
			return false
		}
	}
	return true
}

// Set writes a single pixel. Out-of-range coordinates are ignored.
func (s *Surface) Set(x, y int, c color.Color) {
	if !s.Bounds().Contains(x, y) {
		return
	}
	s.dc.SetPixel(x, y, gg.FromColor(c))
}

// Image returns a copy of the current pixels.
func (s *Surface) Image() *image.RGBA {
	_ = s.dc.FlushGPU()
	return s.dc.ResizeTarget().ToImage()
}

// EncodePNG snapshots the surface as PNG bytes.
func (s *Surface) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
