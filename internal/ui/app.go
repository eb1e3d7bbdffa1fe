// Package ui is the Fyne front end: the drawing pad, its toolbar and the
// gallery.
package ui

import (
	"context"
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"FlowerGarden/internal/garden"
)

// Main is the window content for a controller.
type Main struct {
	ctrl    *garden.Controller
	win     fyne.Window
	logger  *log.Logger
	view    garden.View
	draw    fyne.CanvasObject
	Pad     *PadWidget
	Toolbar *Toolbar
	Gallery *Gallery
	Status  *widget.Label
	root    *fyne.Container
}

// NewMain builds the content for win. It takes over ctrl's change callbacks.
func NewMain(win fyne.Window, ctrl *garden.Controller, logger *log.Logger) *Main {
	m := &Main{ctrl: ctrl, win: win, logger: logger}

	m.Pad = NewPadWidget(ctrl)
	m.Toolbar = NewToolbar(ctrl)
	m.Toolbar.OnClear = ctrl.ClearDrawing
	m.Toolbar.OnPlant = m.plant
	m.Toolbar.OnGallery = func() { ctrl.ToggleView() }
	m.Gallery = NewGallery(func() { ctrl.ToggleView() }, func() {
		ShowExportDialog(win, ctrl.Garden(), logger)
	})

	m.Status = widget.NewLabelWithStyle(ctrl.Status().Text(), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	ctrl.Status().OnChange(func(msg string) {
		fyne.Do(func() { m.Status.SetText(msg) })
	})

	m.draw = container.NewBorder(m.Toolbar.Object(), m.Status, nil, nil, container.NewCenter(m.Pad))
	m.root = container.NewStack()
	m.view = -1
	ctrl.OnChange(m.refresh)
	m.refresh()
	return m
}

// Object returns the window content.
func (m *Main) Object() fyne.CanvasObject { return m.root }

func (m *Main) refresh() {
	view := m.ctrl.View()
	if view != m.view {
		m.view = view
		if view == garden.ViewGallery {
			m.root.Objects = []fyne.CanvasObject{m.Gallery.Object()}
		} else {
			m.root.Objects = []fyne.CanvasObject{m.draw}
		}
		m.root.Refresh()
	}
	if view == garden.ViewGallery {
		m.Gallery.Show(m.ctrl.Garden())
	}
	m.Pad.Redraw()
}

func (m *Main) plant() {
	_, err := m.ctrl.Plant(context.Background())
	switch {
	case errors.Is(err, garden.ErrEmptyCanvas):
	case err != nil:
		m.logger.Error("Plant failed", "err", err)
		dialog.ShowError(err, m.win)
	case m.ctrl.Dirty():
		dialog.ShowError(m.ctrl.SaveErr(), m.win)
	}
}

// RunApp opens the Flower Garden window and blocks until it is closed.
func RunApp(a fyne.App, ctrl *garden.Controller, logger *log.Logger) {
	win := a.NewWindow("Flower Garden")
	win.Resize(fyne.NewSize(560, 720))

	m := NewMain(win, ctrl, logger)
	win.SetContent(m.Object())
	win.ShowAndRun()
}
