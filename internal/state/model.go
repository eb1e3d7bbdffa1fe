package state

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownBrush is returned when a brush name does not match any BrushKind.
var ErrUnknownBrush = errors.New("unknown brush kind")

// Point is a sample in surface pixel space.
type Point struct{ X, Y float64 }

// BrushKind selects the algorithm used to render each stroke sample.
type BrushKind int

const (
	BrushLine BrushKind = iota
	BrushGlow
	BrushSpray
	BrushStamp
)

// BrushKinds lists every brush in toolbar order.
var BrushKinds = []BrushKind{BrushLine, BrushGlow, BrushSpray, BrushStamp}

func (k BrushKind) String() string {
	switch k {
	case BrushLine:
		return "line"
	case BrushGlow:
		return "glow"
	case BrushSpray:
		return "spray"
	case BrushStamp:
		return "stamp"
	}
	return fmt.Sprintf("brush(%d)", int(k))
}

// ParseBrush converts a brush name such as "spray" into a BrushKind.
func ParseBrush(name string) (BrushKind, error) {
	for _, k := range BrushKinds {
		if strings.EqualFold(strings.TrimSpace(name), k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBrush, name)
}

// MarshalText implements encoding.TextMarshaler.
func (k BrushKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *BrushKind) UnmarshalText(b []byte) error {
	parsed, err := ParseBrush(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Stroke is one pointer-down to pointer-up gesture. It only lives while the
// pointer is held.
type Stroke struct {
	Color     string // hex RGB, e.g. "#E91E63"
	Thickness float64
	Brush     BrushKind
	Points    []Point
}

// NewStroke starts a stroke at p.
func NewStroke(color string, thickness float64, brush BrushKind, p Point) *Stroke {
	return &Stroke{
		Color:     color,
		Thickness: thickness,
		Brush:     brush,
		Points:    []Point{p},
	}
}

// Extend appends p and reports whether it was added. A sample equal to the
// previous one is dropped.
func (s *Stroke) Extend(p Point) bool {
	if n := len(s.Points); n > 0 && s.Points[n-1] == p {
		return false
	}
	s.Points = append(s.Points, p)
	return true
}

// Last returns the index of the newest sample, or -1 for an empty stroke.
func (s *Stroke) Last() int {
	return len(s.Points) - 1
}

// Flower is one planted drawing.
type Flower struct {
	ID        string
	Image     []byte // PNG
	CreatedAt time.Time
	Color     string
	Planter   string
}
