package buildcmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ckreads/shelfbuild/internal/site"
)

// NewExportCmd creates the export subcommand.
func NewExportCmd() *cobra.Command {
	var (
		booksPath  string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the generated catalog back to CSV",
		Long: `Export reads a generated catalog JSON and writes it back out in the
book-list CSV layout, with resolved ISBNs filled into the isbn_override
column. Pasting the result over the source list pins every matched book
to its exact edition.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeExport(booksPath, outputPath)
		},
	}

	cmd.Flags().StringVar(&booksPath, "books", "data/books.json", "Catalog JSON to export")
	cmd.Flags().StringVar(&outputPath, "output", "data/library_export.csv", "CSV output file")

	return cmd
}

func executeExport(booksPath, outputPath string) error {
	c, err := site.ReadCatalog(booksPath)
	if err != nil {
		return err
	}

	if err := site.ExportCSV(c, outputPath); err != nil {
		return err
	}

	withISBN := 0
	for _, entry := range c.Books {
		if entry.ISBN != "" {
			withISBN++
		}
	}
	slog.Info("Exported catalog",
		"output", outputPath,
		"books", len(c.Books),
		"with_isbn", withISBN,
		"without_isbn", len(c.Books)-withISBN)
	return nil
}
