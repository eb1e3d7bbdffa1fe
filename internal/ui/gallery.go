package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"FlowerGarden/internal/render"
	"FlowerGarden/internal/state"
)

// EmptyGalleryText is shown when no flower has been planted.
const EmptyGalleryText = "No flowers yet! 🌱"

const (
	thumbSize    = 120
	captionStyle = "Jan 2, 2006 3:04 PM"
)

// Gallery shows the planted flowers, newest first.
type Gallery struct {
	Back   *widget.Button
	Export *widget.Button
	Empty  *widget.Label
	Grid   *fyne.Container

	thumbs  map[string]image.Image
	content *fyne.Container
}

// NewGallery creates an empty gallery. onBack and onExport run from the
// buttons at the top.
func NewGallery(onBack, onExport func()) *Gallery {
	g := &Gallery{
		Back:   widget.NewButton("← Back to Garden", onBack),
		Export: widget.NewButton("Export PDF", onExport),
		Empty:  widget.NewLabelWithStyle(EmptyGalleryText, fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
		Grid:   container.NewGridWrap(fyne.NewSize(thumbSize, thumbSize+30)),
		thumbs: make(map[string]image.Image),
	}
	g.content = container.NewStack()
	return g
}

// Object lays the gallery out.
func (g *Gallery) Object() fyne.CanvasObject {
	top := container.NewHBox(g.Back, g.Export)
	return container.NewBorder(top, nil, nil, nil, g.content)
}

// Show replaces the tiles with the flowers of garden.
func (g *Gallery) Show(garden state.Garden) {
	seen := make(map[string]bool, garden.Len())
	tiles := make([]fyne.CanvasObject, 0, garden.Len())
	for _, f := range garden.Flowers() {
		seen[f.ID] = true
		tiles = append(tiles, g.tile(f))
	}
	for id := range g.thumbs {
		if !seen[id] {
			delete(g.thumbs, id)
		}
	}

	g.Grid.Objects = tiles
	g.Grid.Refresh()
	g.Export.Disable()
	if garden.Len() == 0 {
		g.content.Objects = []fyne.CanvasObject{container.NewCenter(g.Empty)}
	} else {
		g.Export.Enable()
		g.content.Objects = []fyne.CanvasObject{container.NewVScroll(g.Grid)}
	}
	g.content.Refresh()
}

func (g *Gallery) tile(f state.Flower) fyne.CanvasObject {
	thumb, ok := g.thumbs[f.ID]
	if !ok {
		var err error
		thumb, err = render.Thumbnail(f.Image, thumbSize)
		if err != nil {
			fyne.LogError("decode flower "+f.ID, err)
			thumb = image.NewRGBA(image.Rect(0, 0, 1, 1))
		}
		g.thumbs[f.ID] = thumb
	}

	img := canvas.NewImageFromImage(thumb)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(thumbSize, thumbSize))

	caption := widget.NewLabelWithStyle(f.CreatedAt.Local().Format(captionStyle), fyne.TextAlignCenter, fyne.TextStyle{})
	caption.SizeName = theme.SizeNameCaptionText
	return container.NewBorder(nil, caption, nil, nil, img)
}
