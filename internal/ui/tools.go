package ui

import (
	"fmt"
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/gogpu/gg"

	"FlowerGarden/internal/garden"
	"FlowerGarden/internal/state"
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Hex      string
	Color    color.Color
	OnTapped func(string)

	border *canvas.Rectangle
}

func newColorSwatch(hex string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Hex: hex, Color: gg.Hex(hex).Color(), OnTapped: tapped}
	s.border = canvas.NewRectangle(color.Transparent)
	s.border.StrokeColor = color.Gray{Y: 150}
	s.border.StrokeWidth = 1
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	return widget.NewSimpleRenderer(container.NewStack(rect, s.border))
}

// setSelected thickens the border of the current colour.
func (s *colorSwatch) setSelected(on bool) {
	if on {
		s.border.StrokeColor = color.Gray{Y: 40}
		s.border.StrokeWidth = 3
	} else {
		s.border.StrokeColor = color.Gray{Y: 150}
		s.border.StrokeWidth = 1
	}
	s.border.Refresh()
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Hex)
	}
}

// Toolbar holds the pen controls and the drawing actions.
type Toolbar struct {
	ctrl     *garden.Controller
	swatches []*colorSwatch
	brush    *widget.Select
	size     *widget.RadioGroup

	OnClear   func()
	OnPlant   func()
	OnGallery func()
}

func thicknessLabel(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}

// NewToolbar builds the controls for ctrl.
func NewToolbar(ctrl *garden.Controller) *Toolbar {
	tb := &Toolbar{ctrl: ctrl}

	// --- Color Palette ---
	for _, hex := range ctrl.Palette() {
		tb.swatches = append(tb.swatches, newColorSwatch(hex, tb.selectColor))
	}

	// --- Brush ---
	names := make([]string, 0, len(state.BrushKinds))
	for _, k := range state.BrushKinds {
		names = append(names, k.String())
	}
	tb.brush = widget.NewSelect(names, func(name string) {
		k, err := state.ParseBrush(name)
		if err == nil {
			err = ctrl.SelectBrush(k)
		}
		if err != nil {
			fyne.LogError("select brush", err)
		}
	})
	tb.brush.SetSelected(ctrl.Tool().Brush.String())

	// --- Stroke Width ---
	labels := make([]string, 0, len(ctrl.Thicknesses()))
	for _, t := range ctrl.Thicknesses() {
		labels = append(labels, thicknessLabel(t))
	}
	tb.size = widget.NewRadioGroup(labels, func(label string) {
		t, err := strconv.ParseFloat(label, 64)
		if err == nil {
			err = ctrl.SelectThickness(t)
		}
		if err != nil {
			fyne.LogError("select thickness", err)
		}
	})
	tb.size.Horizontal = true
	tb.size.Required = true
	tb.size.SetSelected(thicknessLabel(ctrl.Tool().Thickness))

	return tb
}

func (tb *Toolbar) selectColor(hex string) {
	if err := tb.ctrl.SelectColor(hex); err != nil {
		fyne.LogError(fmt.Sprintf("select colour %s", hex), err)
		return
	}
	tb.refreshSwatches()
}

func (tb *Toolbar) refreshSwatches() {
	current := tb.ctrl.Tool().Color
	for _, s := range tb.swatches {
		s.setSelected(s.Hex == current)
	}
}

// Object lays the toolbar out.
func (tb *Toolbar) Object() fyne.CanvasObject {
	colorBox := container.NewHBox()
	for _, s := range tb.swatches {
		colorBox.Add(s)
	}

	clearBtn := widget.NewButton("Clear", func() {
		if tb.OnClear != nil {
			tb.OnClear()
		}
	})
	plant := widget.NewButton("Plant 🌱", func() {
		if tb.OnPlant != nil {
			tb.OnPlant()
		}
	})
	plant.Importance = widget.HighImportance
	gallery := widget.NewButton("Gallery", func() {
		if tb.OnGallery != nil {
			tb.OnGallery()
		}
	})

	obj := container.NewVBox(
		container.NewHBox(widget.NewLabel("Color:"), colorBox, layout.NewSpacer()),
		container.NewHBox(widget.NewLabel("Brush:"), tb.brush, widget.NewSeparator(), widget.NewLabel("Size:"), tb.size, layout.NewSpacer()),
		container.NewHBox(clearBtn, plant, layout.NewSpacer(), gallery),
	)
	tb.refreshSwatches()
	return obj
}
