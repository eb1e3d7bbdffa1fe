package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"FlowerGarden/internal/export"
	"FlowerGarden/internal/store"
)

// galleryCommand creates the gallery management command.
func (c *CLI) galleryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Inspect, export and import planted flowers",
	}

	cmd.AddCommand(c.galleryListCommand())
	cmd.AddCommand(c.galleryExportCommand())
	cmd.AddCommand(c.galleryImportCommand())

	return cmd
}

// galleryListCommand creates the "gallery list" subcommand.
func (c *CLI) galleryListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List planted flowers, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			g := ctrl.Garden()
			out := cmd.OutOrStdout()
			if g.Len() == 0 {
				fmt.Fprintln(out, "No flowers yet!")
				return nil
			}

			rows := make([][]string, 0, g.Len())
			for _, f := range g.Flowers() {
				rows = append(rows, []string{
					f.ID,
					f.CreatedAt.Format(store.TimestampFormat),
					f.Color,
					f.Planter,
					strconv.Itoa(len(f.Image)),
				})
			}
			_, err = fmt.Fprintln(out, flowerTable(rows))
			return err
		},
	}
}

// galleryExportCommand creates the "gallery export" subcommand.
func (c *CLI) galleryExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.pdf>",
		Short: "Write the gallery as a PDF contact sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			n, err := export.GalleryFile(args[0], ctrl.Garden().Flowers())
			if err != nil {
				return err
			}
			c.Logger.Info("Exported gallery", "path", args[0], "flowers", n)
			return nil
		},
	}
}

// galleryImportCommand creates the "gallery import" subcommand.
func (c *CLI) galleryImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <garden.json>",
		Short: "Merge flowers from a saved garden file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			other, skipped, err := store.Decode(data)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			if skipped > 0 {
				c.Logger.Warn("Skipped unreadable flowers", "count", skipped)
			}

			ctrl, _, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			added := ctrl.Import(cmd.Context(), other)
			if ctrl.Dirty() {
				return fmt.Errorf("save garden: %w", ctrl.SaveErr())
			}
			c.Logger.Info("Imported flowers", "added", added, "total", ctrl.Garden().Len())
			return nil
		},
	}
}

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
	styleBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// flowerTable renders one row per flower under a header.
func flowerTable(rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("ID", "Planted", "Color", "Planter", "Bytes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return styleCell
		})
	return t.String()
}
