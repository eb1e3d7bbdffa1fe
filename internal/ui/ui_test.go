package ui

import (
	"context"
	"io"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FlowerGarden/internal/garden"
	"FlowerGarden/internal/render"
	"FlowerGarden/internal/state"
	"FlowerGarden/internal/store"
)

func newController(t *testing.T) *garden.Controller {
	t.Helper()
	test.NewTempApp(t)
	quiet := log.New(io.Discard)
	st := store.New(store.NewMemoryBackend(nil), store.WithLogger(quiet))
	ctrl := garden.New(st, render.NewSurface(450, 450), garden.WithLogger(quiet))
	ctrl.Load(context.Background())
	return ctrl
}

func TestPadMouseDraws(t *testing.T) {
	ctrl := newController(t)
	pad := NewPadWidget(ctrl)
	pad.Resize(fyne.NewSize(300, 300))

	primary := func(x, y float32) *desktop.MouseEvent {
		return &desktop.MouseEvent{
			PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
			Button:     desktop.MouseButtonPrimary,
		}
	}
	pad.MouseDown(primary(20, 20))
	pad.MouseMoved(primary(80, 120))
	pad.MouseUp(primary(80, 120))

	assert.False(t, ctrl.Drawing())
	assert.False(t, ctrl.Surface().IsEmpty())
	// 80 of 300 display units is 120 of 450 surface pixels.
	assert.NotZero(t, ctrl.Surface().Image().RGBAAt(120, 180).A)
}

func TestPadSecondaryButtonIgnored(t *testing.T) {
	ctrl := newController(t)
	pad := NewPadWidget(ctrl)
	pad.Resize(fyne.NewSize(450, 450))

	pad.MouseDown(&desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(20, 20)},
		Button:     desktop.MouseButtonSecondary,
	})
	assert.False(t, ctrl.Drawing())
	assert.True(t, ctrl.Surface().IsEmpty())
}

func TestPadDragDraws(t *testing.T) {
	ctrl := newController(t)
	pad := NewPadWidget(ctrl)
	pad.Resize(fyne.NewSize(450, 450))

	pad.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(60, 60)},
		Dragged:    fyne.NewDelta(10, 10),
	})
	assert.True(t, ctrl.Drawing())
	pad.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(90, 70)},
		Dragged:    fyne.NewDelta(30, 10),
	})
	pad.DragEnd()

	assert.False(t, ctrl.Drawing())
	img := ctrl.Surface().Image()
	assert.NotZero(t, img.RGBAAt(50, 50).A, "drag starts where the pointer went down")
	assert.NotZero(t, img.RGBAAt(90, 70).A)
}

func TestPadLeavingEndsStrokeUntilNextPress(t *testing.T) {
	ctrl := newController(t)
	pad := NewPadWidget(ctrl)
	pad.Resize(fyne.NewSize(450, 450))

	pad.MouseDown(&desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(10, 10)},
		Button:     desktop.MouseButtonPrimary,
	})
	pad.MouseOut()
	pad.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(-50, 200)},
		Dragged:    fyne.NewDelta(-60, 190),
	})
	pad.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(300, 200)},
		Dragged:    fyne.NewDelta(350, 0),
	})

	assert.False(t, ctrl.Drawing())
	assert.Zero(t, ctrl.Surface().Image().RGBAAt(150, 200).A, "no line is drawn back into the pad")

	pad.DragEnd()
	pad.MouseDown(&desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(300, 300)},
		Button:     desktop.MouseButtonPrimary,
	})
	pad.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(320, 300)},
		Dragged:    fyne.NewDelta(20, 0),
	})
	assert.True(t, ctrl.Drawing(), "a new press draws again")
	assert.NotZero(t, ctrl.Surface().Image().RGBAAt(310, 300).A)
}

func TestSwatchTapSelectsColour(t *testing.T) {
	ctrl := newController(t)
	tb := NewToolbar(ctrl)
	w := test.NewWindow(tb.Object())
	defer w.Close()

	require.Len(t, tb.swatches, len(garden.DefaultPalette))
	test.Tap(tb.swatches[3])
	assert.Equal(t, garden.DefaultPalette[3], ctrl.Tool().Color)
	assert.Equal(t, float32(3), tb.swatches[3].border.StrokeWidth)
	assert.Equal(t, float32(1), tb.swatches[0].border.StrokeWidth)
}

func TestToolbarBrushAndSize(t *testing.T) {
	ctrl := newController(t)
	tb := NewToolbar(ctrl)
	assert.Equal(t, "line", tb.brush.Selected)
	assert.Equal(t, "4", tb.size.Selected)

	tb.brush.SetSelected("spray")
	tb.size.SetSelected("12")
	assert.Equal(t, garden.Tool{Color: "#E91E63", Thickness: 12, Brush: state.BrushSpray}, ctrl.Tool())
}

func TestMainSwitchesViews(t *testing.T) {
	ctrl := newController(t)
	w := test.NewWindow(nil)
	defer w.Close()
	m := NewMain(w, ctrl, log.New(io.Discard))
	w.SetContent(m.Object())

	assert.Equal(t, m.draw, m.root.Objects[0])

	test.Tap(m.Toolbar.swatches[0])
	m.Toolbar.OnGallery()
	assert.Equal(t, garden.ViewGallery, ctrl.View())
	assert.True(t, m.Gallery.Empty.Visible())
	assert.Equal(t, EmptyGalleryText, m.Gallery.Empty.Text)
	assert.True(t, m.Gallery.Export.Disabled())

	test.Tap(m.Gallery.Back)
	assert.Equal(t, garden.ViewDraw, ctrl.View())
	assert.Equal(t, m.draw, m.root.Objects[0])
}

func TestMainPlantShowsFlowerInGallery(t *testing.T) {
	ctrl := newController(t)
	w := test.NewWindow(nil)
	defer w.Close()
	m := NewMain(w, ctrl, log.New(io.Discard))
	w.SetContent(m.Object())

	m.Toolbar.OnPlant()
	assert.Equal(t, 0, ctrl.Garden().Len(), "empty canvas is not planted")

	ctrl.PointerDown(100, 100, 450, 450)
	ctrl.PointerMove(200, 150, 450, 450)
	ctrl.PointerUp()
	m.Toolbar.OnPlant()
	require.Equal(t, 1, ctrl.Garden().Len())
	assert.Eventually(t, func() bool {
		return m.Status.Text == garden.MsgPlanted
	}, time.Second, 10*time.Millisecond)

	ctrl.ToggleView()
	assert.Len(t, m.Gallery.Grid.Objects, 1)
	assert.False(t, m.Gallery.Export.Disabled())
	assert.Len(t, m.Gallery.thumbs, 1)
}
