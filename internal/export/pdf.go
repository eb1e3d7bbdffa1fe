// Package export renders the garden as a printable PDF contact sheet.
package export

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"

	"FlowerGarden/internal/state"
)

const (
	margin  = 15.0
	columns = 3
	gutter  = 6.0
	caption = 6.0
	title   = "Flower Gallery"
)

// Gallery writes a PDF with one tile per flower, newest first, and returns
// how many flowers were placed. Flowers whose image is not a readable PNG are
// skipped.
func Gallery(w io.Writer, flowers []state.Flower) (int, error) {
	p := gofpdf.New("P", "mm", "A4", "")
	p.SetTitle(title, true)
	p.SetMargins(margin, margin, margin)
	p.SetAutoPageBreak(false, margin)
	p.AddPage()

	pageW, pageH := p.GetPageSize()
	tile := (pageW - 2*margin - gutter*(columns-1)) / columns

	p.SetFont("Helvetica", "B", 20)
	p.CellFormat(0, 12, title, "", 1, "C", false, 0, "")
	top := p.GetY() + gutter

	if len(flowers) == 0 {
		p.SetFont("Helvetica", "", 14)
		p.CellFormat(0, 20, "No flowers yet!", "", 1, "C", false, 0, "")
		return 0, p.Output(w)
	}

	p.SetFont("Helvetica", "", 9)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	x, y := margin, top
	placed := 0
	for _, f := range flowers {
		if _, err := png.DecodeConfig(bytes.NewReader(f.Image)); err != nil {
			continue
		}

		if y+tile+caption > pageH-margin {
			p.AddPage()
			x, y = margin, margin
		}

		name := "flower-" + f.ID
		p.RegisterImageOptionsReader(name, opts, bytes.NewReader(f.Image))
		p.SetDrawColor(200, 200, 200)
		p.Rect(x, y, tile, tile, "D")
		p.ImageOptions(name, x, y, tile, tile, false, opts, 0, "")
		p.SetXY(x, y+tile)
		p.CellFormat(tile, caption, f.CreatedAt.Local().Format("2006-01-02"), "", 0, "C", false, 0, "")
		placed++

		if placed%columns == 0 {
			x = margin
			y += tile + caption + gutter
		} else {
			x += tile + gutter
		}
	}

	if err := p.Output(w); err != nil {
		return placed, fmt.Errorf("write pdf: %w", err)
	}
	return placed, nil
}

// GalleryFile writes the contact sheet to path.
func GalleryFile(path string, flowers []state.Flower) (int, error) {
	var buf bytes.Buffer
	n, err := Gallery(&buf, flowers)
	if err != nil {
		return n, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return n, fmt.Errorf("write %s: %w", path, err)
	}
	return n, nil
}
