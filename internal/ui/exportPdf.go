package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"github.com/charmbracelet/log"

	"FlowerGarden/internal/export"
	"FlowerGarden/internal/state"
)

// ExportPDF writes the garden as a PDF contact sheet to w and closes it.
func ExportPDF(w fyne.URIWriteCloser, g state.Garden) (int, error) {
	n, err := export.Gallery(w, g.Flowers())
	if cerr := w.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close %s: %w", w.URI(), cerr)
	}
	return n, err
}

// ShowExportDialog asks for a destination and exports the garden there.
func ShowExportDialog(win fyne.Window, g state.Garden, logger *log.Logger) {
	save := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if w == nil {
			return
		}
		n, err := ExportPDF(w, g)
		if err != nil {
			logger.Error("Export failed", "uri", w.URI(), "err", err)
			dialog.ShowError(err, win)
			return
		}
		logger.Info("Exported gallery", "uri", w.URI(), "flowers", n)
		dialog.ShowInformation("Export", fmt.Sprintf("Saved %d flowers to %s", n, w.URI().Name()), win)
	}, win)
	save.SetFileName("garden.pdf")
	save.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	save.Show()
}
