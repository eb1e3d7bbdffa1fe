package garden

import (
	"context"
	"errors"
	"image/color"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FlowerGarden/internal/render"
	"FlowerGarden/internal/state"
	"FlowerGarden/internal/store"
)

type fakeTimer struct {
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeScheduler struct {
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{f: f}
	s.timers = append(s.timers, t)
	return t
}

// fire runs timer i even if it was stopped, as a racing time.AfterFunc can.
func (s *fakeScheduler) fire(i int) {
	s.timers[i].f()
}

type fixture struct {
	ctrl    *Controller
	backend *store.MemoryBackend
	store   *store.Store
	sched   *fakeScheduler
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	quiet := log.New(io.Discard)
	backend := store.NewMemoryBackend(nil)
	st := store.New(backend, store.WithLogger(quiet))
	sched := &fakeScheduler{}
	surface := render.NewSurface(450, 450, render.WithRand(rand.New(rand.NewSource(3))))

	base := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	tick := 0
	clock := func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	opts = append([]Option{WithLogger(quiet), WithScheduler(sched), WithClock(clock)}, opts...)
	ctrl := New(st, surface, opts...)
	ctrl.Load(context.Background())
	return &fixture{ctrl: ctrl, backend: backend, store: st, sched: sched}
}

func (f *fixture) drawLine() {
	f.ctrl.PointerDown(10, 10, 225, 225)
	f.ctrl.PointerMove(50, 60, 225, 225)
	f.ctrl.PointerMove(100, 80, 225, 225)
	f.ctrl.PointerUp()
}

func TestFreshStartIsEmpty(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, 0, f.ctrl.Garden().Len())
	assert.Equal(t, ViewDraw, f.ctrl.View())
	assert.True(t, f.ctrl.Surface().IsEmpty())
	assert.Equal(t, "", f.ctrl.Status().Text())
	assert.Equal(t, Tool{Color: "#E91E63", Thickness: 4, Brush: state.BrushLine}, f.ctrl.Tool())
}

func TestPlantScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	before := f.ctrl.Garden().Len()

	require.NoError(t, f.ctrl.SelectColor("#e91e63"))
	require.NoError(t, f.ctrl.SelectThickness(4))
	require.NoError(t, f.ctrl.SelectBrush(state.BrushLine))
	f.drawLine()
	assert.False(t, f.ctrl.Surface().IsEmpty())

	flower, err := f.ctrl.Plant(ctx)
	require.NoError(t, err)

	g := f.ctrl.Garden()
	require.Equal(t, before+1, g.Len())
	assert.Equal(t, flower, g.At(0))
	assert.Equal(t, "#E91E63", g.At(0).Color)
	assert.NotEmpty(t, g.At(0).Image)
	assert.True(t, f.ctrl.Surface().IsEmpty(), "plant clears the surface")
	assert.Equal(t, MsgPlanted, f.ctrl.Status().Text())
	assert.False(t, f.ctrl.Dirty())

	reloaded := f.store.Load(ctx)
	assert.Equal(t, g.Flowers(), reloaded.Flowers())
}

func TestPlantNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.drawLine()
	first, err := f.ctrl.Plant(ctx)
	require.NoError(t, err)

	require.NoError(t, f.ctrl.SelectBrush(state.BrushStamp))
	f.drawLine()
	second, err := f.ctrl.Plant(ctx)
	require.NoError(t, err)

	g := f.ctrl.Garden()
	require.Equal(t, 2, g.Len())
	assert.Equal(t, second.ID, g.At(0).ID)
	assert.Equal(t, first.ID, g.At(1).ID)
	assert.True(t, g.At(0).CreatedAt.After(g.At(1).CreatedAt))

	f.ctrl.Load(ctx)
	assert.Equal(t, g.Flowers(), f.ctrl.Garden().Flowers())
}

func TestPlantEmptyCanvasRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.ctrl.Plant(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCanvas)
	assert.Equal(t, 0, f.ctrl.Garden().Len())
	assert.Equal(t, MsgEmptyCanvas, f.ctrl.Status().Text())
	_, err = f.backend.Read(context.Background())
	assert.ErrorIs(t, err, store.ErrNotFound, "nothing is persisted")
}

func TestPlantSinglePixel(t *testing.T) {
	f := newFixture(t)
	f.ctrl.Surface().Set(449, 449, color.NRGBA{R: 255, A: 255})

	_, err := f.ctrl.Plant(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, f.ctrl.Garden().Len())
}

func TestPlantNeverReusesAnID(t *testing.T) {
	ids := []string{"one", "one", "one", "two"}
	f := newFixture(t, WithIDs(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))

	f.drawLine()
	first, err := f.ctrl.Plant(context.Background())
	require.NoError(t, err)
	f.drawLine()
	second, err := f.ctrl.Plant(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "one", first.ID)
	assert.Equal(t, "two", second.ID)
	assert.Equal(t, 2, f.ctrl.Garden().Len())
}

func TestClearDrawing(t *testing.T) {
	f := newFixture(t)
	f.drawLine()
	f.ctrl.ClearDrawing()
	assert.True(t, f.ctrl.Surface().IsEmpty())

	_, err := f.ctrl.Plant(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCanvas)
}

func TestPlantWithWriteFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.backend.WriteErr = errors.New("quota exceeded")

	f.drawLine()
	flower, err := f.ctrl.Plant(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, f.ctrl.Garden().Len())
	assert.Equal(t, flower.ID, f.ctrl.Garden().At(0).ID)
	assert.True(t, f.ctrl.Dirty())
	assert.Error(t, f.ctrl.SaveErr())

	// After a restart the flower is gone.
	restarted := New(f.store, render.NewSurface(450, 450), WithLogger(log.New(io.Discard)), WithScheduler(&fakeScheduler{}))
	restarted.Load(ctx)
	assert.Equal(t, 0, restarted.Garden().Len())

	// The next successful save persists everything still in memory.
	f.backend.WriteErr = nil
	f.drawLine()
	_, err = f.ctrl.Plant(ctx)
	require.NoError(t, err)
	assert.False(t, f.ctrl.Dirty())
	assert.Equal(t, 2, f.store.Load(ctx).Len())
}

func TestPointerMapping(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.SelectThickness(2))

	damage := f.ctrl.PointerDown(100, 100, 150, 150)
	f.ctrl.PointerUp()

	// 100 display units at a third of native size land at 300 native pixels.
	assert.True(t, damage.Contains(300, 300))
	img := f.ctrl.Surface().Image()
	assert.NotZero(t, img.RGBAAt(300, 300).A)
	assert.Zero(t, img.RGBAAt(100, 100).A)
}

func TestPointerMoveWithoutDown(t *testing.T) {
	f := newFixture(t)
	damage := f.ctrl.PointerMove(10, 10, 450, 450)
	assert.True(t, damage.Empty())
	assert.False(t, f.ctrl.Drawing())
	assert.True(t, f.ctrl.Surface().IsEmpty())
	f.ctrl.PointerUp()
}

func TestEveryBrushPlants(t *testing.T) {
	for _, k := range state.BrushKinds {
		t.Run(k.String(), func(t *testing.T) {
			f := newFixture(t)
			require.NoError(t, f.ctrl.SelectBrush(k))
			f.drawLine()
			_, err := f.ctrl.Plant(context.Background())
			require.NoError(t, err)
		})
	}
}

func TestSelectionValidation(t *testing.T) {
	f := newFixture(t, WithPalette([]string{"#000000", "#FFFFFF"}), WithThicknesses([]float64{1, 3}))
	assert.Equal(t, "#000000", f.ctrl.Tool().Color)
	assert.Equal(t, 1.0, f.ctrl.Tool().Thickness)

	assert.ErrorIs(t, f.ctrl.SelectColor("#E91E63"), ErrUnknownColor)
	assert.ErrorIs(t, f.ctrl.SelectThickness(4), ErrUnknownThickness)
	assert.ErrorIs(t, f.ctrl.SelectBrush(state.BrushKind(9)), state.ErrUnknownBrush)

	require.NoError(t, f.ctrl.SelectColor("#ffffff"))
	assert.Equal(t, "#FFFFFF", f.ctrl.Tool().Color)
	assert.Equal(t, []string{"#000000", "#FFFFFF"}, f.ctrl.Palette())
	assert.Equal(t, []float64{1, 3}, f.ctrl.Thicknesses())
}

func TestToggleViewHasNoDataEffect(t *testing.T) {
	f := newFixture(t)
	f.drawLine()
	_, err := f.ctrl.Plant(context.Background())
	require.NoError(t, err)
	raw, err := f.backend.Read(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ViewGallery, f.ctrl.ToggleView())
	assert.Equal(t, "gallery", f.ctrl.View().String())
	assert.Equal(t, ViewDraw, f.ctrl.ToggleView())
	assert.Equal(t, 1, f.ctrl.Garden().Len())
	after, err := f.backend.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, raw, after)
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	other := state.NewGarden([]state.Flower{
		{ID: "x", Image: []byte{1}, CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	})

	assert.Equal(t, 1, f.ctrl.Import(ctx, other))
	assert.Equal(t, 0, f.ctrl.Import(ctx, other))
	assert.Equal(t, 1, f.store.Load(ctx).Len())
}

func TestOnChangeFires(t *testing.T) {
	f := newFixture(t)
	calls := 0
	f.ctrl.OnChange(func() { calls++ })

	require.NoError(t, f.ctrl.SelectBrush(state.BrushGlow))
	f.ctrl.ToggleView()
	f.ctrl.ClearDrawing()
	assert.Equal(t, 3, calls)
}

func TestStatusStaleTimerDoesNotClearNewerMessage(t *testing.T) {
	sched := &fakeScheduler{}
	s := newStatus(sched, time.Second)
	var seen []string
	s.OnChange(func(m string) { seen = append(seen, m) })

	s.Set("first")
	s.Set("second")
	require.Len(t, sched.timers, 2)
	assert.True(t, sched.timers[0].stopped, "old timer is cancelled")

	sched.fire(0)
	assert.Equal(t, "second", s.Text())

	sched.fire(1)
	assert.Equal(t, "", s.Text())
	assert.Equal(t, []string{"first", "second", ""}, seen)
}

func TestStatusClear(t *testing.T) {
	sched := &fakeScheduler{}
	s := newStatus(sched, 0)
	assert.Equal(t, DefaultStatusDelay, s.delay)

	s.Set("hello")
	s.Clear()
	assert.Equal(t, "", s.Text())
	assert.True(t, sched.timers[0].stopped)

	sched.fire(0)
	assert.Equal(t, "", s.Text())
}

func TestStatusRealTimer(t *testing.T) {
	s := newStatus(nil, 10*time.Millisecond)
	done := make(chan struct{})
	s.OnChange(func(m string) {
		if m == "" {
			close(done)
		}
	})
	s.Set("bye")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("status was not cleared")
	}
	assert.Equal(t, "", s.Text())
}
