package site

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// exportHeader matches the column layout of the source book list so an
// export can be pasted back over it.
var exportHeader = []string{
	"ID",
	"user_title",
	"user_author",
	"isbn_override",
	"geo_region",
	"sort_year",
	"sort_basis",
	"read_by_colin",
	"read_by_kaitlyn",
}

// ExportCSV writes the catalog back out as a spreadsheet-ready CSV. Resolved
// ISBNs land in the isbn_override column, so re-importing the file pins
// every matched book to its exact edition.
func ExportCSV(c Catalog, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	for i, entry := range c.Books {
		row := []string{
			strconv.Itoa(i + 1),
			entry.UserTitle,
			entry.UserAuthor,
			entry.ISBN,
			entry.GeoRegion,
			entry.SortYear,
			entry.SortBasis,
			flag(entry.ReadByColin),
			flag(entry.ReadByKaitlyn),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	return nil
}

func flag(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
