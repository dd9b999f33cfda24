package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Loader reads the master book list from a CSV or Parquet file.
type Loader struct {
	path string
}

// NewLoader creates a new book list loader.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads books from the list file, detecting the format by extension.
func (l *Loader) Load() ([]Book, error) {
	ext := strings.ToLower(filepath.Ext(l.path))

	switch ext {
	case ".parquet":
		return l.loadParquet()
	case ".csv":
		file, err := os.Open(l.path)
		if err != nil {
			return nil, fmt.Errorf("failed to open book list: %w", err)
		}
		defer file.Close()
		return ParseCSV(file)
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .csv, .parquet)", ext)
	}
}

// ParseCSV reads books from CSV content. Rows missing a title or author are
// skipped with a diagnostic; they never fail the batch.
func ParseCSV(r io.Reader) ([]Book, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"title", "author"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("CSV is missing required column: %s", required)
		}
	}

	field := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var books []Book
	line := 1 // header
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV at line %d: %w", line, err)
		}

		title := field(row, "title")
		author := field(row, "author")
		if title == "" || author == "" {
			slog.Warn("Skipping row: missing title or author", "line", line)
			continue
		}

		books = append(books, Book{
			Title:         title,
			Author:        author,
			ISBNOverride:  field(row, "isbn_override"),
			WorkOverride:  field(row, "olid_work_override"),
			GeoRegion:     field(row, "geo_region"),
			SortYear:      field(row, "sort_year"),
			SortBasis:     field(row, "sort_basis"),
			ReadByColin:   parseFlag(field(row, "read_by_colin")),
			ReadByKaitlyn: parseFlag(field(row, "read_by_kaitlyn")),
		})
	}

	slog.Info("Parsed book list", "books", len(books))
	return books, nil
}

// parseFlag interprets spreadsheet-style booleans ("TRUE"/"FALSE").
func parseFlag(s string) bool {
	return strings.ToUpper(strings.TrimSpace(s)) == "TRUE"
}

// bookRow mirrors the CSV columns for Parquet-encoded book lists.
type bookRow struct {
	Title         string `parquet:"title"`
	Author        string `parquet:"author"`
	ISBNOverride  string `parquet:"isbn_override,optional"`
	WorkOverride  string `parquet:"olid_work_override,optional"`
	GeoRegion     string `parquet:"geo_region,optional"`
	SortYear      string `parquet:"sort_year,optional"`
	SortBasis     string `parquet:"sort_basis,optional"`
	ReadByColin   bool   `parquet:"read_by_colin,optional"`
	ReadByKaitlyn bool   `parquet:"read_by_kaitlyn,optional"`
}

// loadParquet loads books from a Parquet file.
func (l *Loader) loadParquet() ([]Book, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[bookRow](pf)
	defer reader.Close()

	var books []Book
	rows := make([]bookRow, 128) // Read in batches
	rowNum := 0

	for {
		n, err := reader.Read(rows)
		for i := range rows[:n] {
			rowNum++
			row := rows[i]
			if strings.TrimSpace(row.Title) == "" || strings.TrimSpace(row.Author) == "" {
				slog.Warn("Skipping row: missing title or author", "row", rowNum)
				continue
			}
			books = append(books, Book{
				Title:         strings.TrimSpace(row.Title),
				Author:        strings.TrimSpace(row.Author),
				ISBNOverride:  strings.TrimSpace(row.ISBNOverride),
				WorkOverride:  strings.TrimSpace(row.WorkOverride),
				GeoRegion:     strings.TrimSpace(row.GeoRegion),
				SortYear:      strings.TrimSpace(row.SortYear),
				SortBasis:     strings.TrimSpace(row.SortBasis),
				ReadByColin:   row.ReadByColin,
				ReadByKaitlyn: row.ReadByKaitlyn,
			})
		}
		if err != nil {
			break
		}
	}

	slog.Info("Parsed book list", "books", len(books))
	return books, nil
}
