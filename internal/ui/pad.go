package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"FlowerGarden/internal/garden"
)

// PadWidget shows the drawing surface and turns mouse and touch input into
// strokes. The surface is stretched to the widget, so pointer positions are
// rescaled by the controller.
type PadWidget struct {
	widget.BaseWidget
	ctrl  *garden.Controller
	image *canvas.Image

	// pressed is set between a primary MouseDown and the end of its drag.
	// left is set when the pointer leaves the pad during that press; the
	// stroke stays ended until the next press.
	pressed bool
	left    bool
}

var _ fyne.Widget = (*PadWidget)(nil)
var _ fyne.Draggable = (*PadWidget)(nil)
var _ desktop.Mouseable = (*PadWidget)(nil)
var _ desktop.Hoverable = (*PadWidget)(nil)

func NewPadWidget(ctrl *garden.Controller) *PadWidget {
	p := &PadWidget{ctrl: ctrl}
	p.image = canvas.NewImageFromImage(ctrl.Surface().Image())
	p.image.FillMode = canvas.ImageFillStretch
	p.image.SetMinSize(fyne.NewSize(300, 300))
	p.ExtendBaseWidget(p)
	return p
}

// Redraw copies the surface into the displayed image.
func (p *PadWidget) Redraw() {
	p.image.Image = p.ctrl.Surface().Image()
	p.image.Refresh()
}

func (p *PadWidget) display() (float64, float64) {
	s := p.Size()
	return float64(s.Width), float64(s.Height)
}

func (p *PadWidget) down(pos fyne.Position) {
	w, h := p.display()
	if !p.ctrl.PointerDown(float64(pos.X), float64(pos.Y), w, h).Empty() {
		p.Redraw()
	}
}

func (p *PadWidget) move(pos fyne.Position) {
	w, h := p.display()
	if !p.ctrl.PointerMove(float64(pos.X), float64(pos.Y), w, h).Empty() {
		p.Redraw()
	}
}

func (p *PadWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		p.pressed = true
		p.left = false
		p.down(e.Position)
	}
}

func (p *PadWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		p.release()
	}
}

func (p *PadWidget) MouseMoved(e *desktop.MouseEvent) {
	if p.ctrl.Drawing() {
		p.move(e.Position)
	}
}

// MouseOut ends the stroke, the pointer left the pad.
func (p *PadWidget) MouseOut() {
	if p.pressed {
		p.left = true
	}
	p.ctrl.PointerUp()
}

func (p *PadWidget) MouseIn(*desktop.MouseEvent) {}

// Dragged also covers touch screens, where no MouseDown arrives and the
// stroke starts with the first drag event.
func (p *PadWidget) Dragged(e *fyne.DragEvent) {
	if p.left {
		return
	}
	if !p.ctrl.Drawing() {
		if p.pressed {
			return
		}
		p.down(e.Position.Subtract(e.Dragged))
	}
	p.move(e.Position)
}

func (p *PadWidget) DragEnd() {
	p.release()
}

func (p *PadWidget) release() {
	p.pressed = false
	p.left = false
	p.ctrl.PointerUp()
}

func (p *PadWidget) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.White)
	return widget.NewSimpleRenderer(container.NewStack(bg, p.image))
}
