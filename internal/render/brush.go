package render

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/gogpu/gg"

	"FlowerGarden/internal/state"
)

const (
	petalCount   = 5
	minDotRadius = 1.0
	maxDotRadius = 3.0
)

// Dot is a filled circle produced by the spray and stamp brushes.
type Dot struct {
	Center state.Point
	Radius float64
}

// Paint renders sample i of st and returns the region it may have touched,
// clipped to the surface.
func (s *Surface) Paint(st *state.Stroke, i int) (state.Rect, error) {
	if st == nil || i < 0 || i >= len(st.Points) {
		return state.Rect{}, nil
	}

	p := st.Points[i]
	t := st.Thickness
	col := gg.Hex(st.Color)

	var (
		damage state.Rect
		err    error
	)
	switch st.Brush {
	case state.BrushLine:
		if i == 0 {
			err = s.fillDots(col, Dot{Center: p, Radius: t / 2})
			damage = state.BoundsOf(t/2+1, p)
		} else {
			prev := st.Points[i-1]
			err = s.line(col, t, prev, p)
			damage = state.BoundsOf(t/2+1, prev, p)
		}
	case state.BrushGlow:
		err = s.glow(col, t, p)
		damage = state.BoundsOf(2*t+1, p)
	case state.BrushSpray:
		err = s.fillDots(col, Scatter(s.rng, p, t, s.sprayDots)...)
		damage = state.BoundsOf(2*t+maxDotRadius+1, p)
	case state.BrushStamp:
		err = s.fillDots(col, Petals(p, t)...)
		if err == nil {
			err = s.fillDots(s.accent, Dot{Center: p, Radius: t / 2})
		}
		damage = state.BoundsOf(2.5*t+1, p)
	default:
		return state.Rect{}, fmt.Errorf("paint: %w: %v", state.ErrUnknownBrush, st.Brush)
	}
	if err != nil {
		return state.Rect{}, fmt.Errorf("paint %s: %w", st.Brush, err)
	}
	return damage.Intersect(s.Bounds()), nil
}

// paintAll renders every sample of st in order.
func (s *Surface) paintAll(st *state.Stroke) (state.Rect, error) {
	var damage state.Rect
	for i := range st.Points {
		r, err := s.Paint(st, i)
		if err != nil {
			return damage, err
		}
		damage = damage.Union(r)
	}
	return damage, nil
}

func (s *Surface) line(col gg.RGBA, width float64, from, to state.Point) error {
	s.dc.SetStrokeBrush(gg.Solid(col))
	s.dc.SetLineWidth(width)
	s.dc.MoveTo(from.X, from.Y)
	s.dc.LineTo(to.X, to.Y)
	return s.dc.Stroke()
}

// glow fills a disc of radius 2*thickness with a gradient that is the solid
// colour at the centre and fully transparent at the rim.
func (s *Surface) glow(col gg.RGBA, thickness float64, p state.Point) error {
	r := 2 * thickness
	rim := col
	rim.A = 0
	grad := gg.NewRadialGradientBrush(p.X, p.Y, 0, r).
		AddColorStop(0, col).
		AddColorStop(1, rim)
	s.dc.SetFillBrush(grad)
	s.dc.DrawCircle(p.X, p.Y, r)
	return s.dc.Fill()
}

func (s *Surface) fillDots(col gg.RGBA, dots ...Dot) error {
	if len(dots) == 0 {
		return nil
	}
	s.dc.SetFillBrush(gg.Solid(col))
	for _, d := range dots {
		s.dc.DrawCircle(d.Center.X, d.Center.Y, d.Radius)
	}
	return s.dc.Fill()
}

// Scatter returns n spray dots around p: uniform angle, distance up to
// 2*thickness, radius between 1 and 3 pixels.
func Scatter(rng *rand.Rand, p state.Point, thickness float64, n int) []Dot {
	spread := 2 * thickness
	dots := make([]Dot, 0, n)
	for i := 0; i < n; i++ {
		angle := rng.Float64() * 2 * math.Pi
		dist := rng.Float64() * spread
		dots = append(dots, Dot{
			Center: state.Point{
				X: p.X + math.Cos(angle)*dist,
				Y: p.Y + math.Sin(angle)*dist,
			},
			Radius: minDotRadius + rng.Float64()*(maxDotRadius-minDotRadius),
		})
	}
	return dots
}

// Petals returns the five petal discs of a stamped flower centred on p.
func Petals(p state.Point, thickness float64) []Dot {
	offset := 1.5 * thickness
	dots := make([]Dot, 0, petalCount)
	for i := 0; i < petalCount; i++ {
		angle := float64(i) * 2 * math.Pi / petalCount
		dots = append(dots, Dot{
			Center: state.Point{
				X: p.X + math.Cos(angle)*offset,
				Y: p.Y + math.Sin(angle)*offset,
			},
			Radius: thickness,
		})
	}
	return dots
}
