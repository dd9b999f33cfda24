// Package site assembles the static catalog artifact the frontend serves.
package site

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ckreads/shelfbuild/internal/catalog"
	"github.com/ckreads/shelfbuild/internal/enrich"
)

const (
	coverURLFormat  = "https://covers.openlibrary.org/b/isbn/%s-M.jpg"
	openLibraryBase = "https://openlibrary.org"
)

// Entry is one book in the generated catalog. User-entered values are kept
// alongside the resolved official ones so the frontend can show both.
type Entry struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Author        string            `json:"author"`
	UserTitle     string            `json:"user_title"`
	UserAuthor    string            `json:"user_author"`
	ISBN          string            `json:"isbn,omitempty"`
	YearPublished int               `json:"year_published,omitempty"`
	Genres        []string          `json:"genres,omitempty"`
	GeoRegion     string            `json:"geo_region,omitempty"`
	SortYear      string            `json:"sort_year,omitempty"`
	SortBasis     string            `json:"sort_basis,omitempty"`
	ReadByColin   bool              `json:"read_by_colin"`
	ReadByKaitlyn bool              `json:"read_by_kaitlyn"`
	CoverURL      string            `json:"cover_url,omitempty"`
	OpenLibrary   string            `json:"open_library_url,omitempty"`
	Confidence    enrich.Confidence `json:"match_confidence"`
	SearchText    string            `json:"search_text"`
}

// Catalog is the top-level generated artifact.
type Catalog struct {
	GeneratedAt time.Time `json:"generated_at"`
	Count       int       `json:"count"`
	Books       []Entry   `json:"books"`
}

// Build merges the book list with its enrichment records into the catalog.
// Every input book produces exactly one entry, in input order, whether or
// not enrichment found anything for it.
func Build(books []catalog.Book, records map[string]enrich.Record, rules *enrich.SubjectRules) Catalog {
	entries := make([]Entry, 0, len(books))

	for _, book := range books {
		record := records[book.CacheKey()]
		entries = append(entries, buildEntry(book, record, rules))
	}

	return Catalog{
		GeneratedAt: time.Now().UTC(),
		Count:       len(entries),
		Books:       entries,
	}
}

func buildEntry(book catalog.Book, record enrich.Record, rules *enrich.SubjectRules) Entry {
	title := record.OfficialTitle
	if title == "" {
		title = book.Title
	}
	author := record.OfficialAuthor
	if author == "" {
		author = book.Author
	}

	// An explicit override beats whatever the sources returned.
	isbn := book.ISBNOverride
	if isbn == "" {
		isbn = record.ISBN
	}

	confidence := record.Confidence
	if confidence == "" {
		confidence = enrich.ConfidenceNone
	}

	genres := rules.Clean(record.Subjects)

	entry := Entry{
		ID:            book.ID(),
		Title:         title,
		Author:        author,
		UserTitle:     book.Title,
		UserAuthor:    book.Author,
		ISBN:          isbn,
		YearPublished: record.YearPublished,
		Genres:        genres,
		GeoRegion:     book.GeoRegion,
		SortYear:      book.SortYear,
		SortBasis:     book.SortBasis,
		ReadByColin:   book.ReadByColin,
		ReadByKaitlyn: book.ReadByKaitlyn,
		Confidence:    confidence,
		SearchText:    searchText(title, author, genres),
	}

	if record.CoverURL != "" {
		entry.CoverURL = record.CoverURL
	} else if isbn != "" {
		entry.CoverURL = fmt.Sprintf(coverURLFormat, isbn)
	}
	if record.WorkKey != "" {
		entry.OpenLibrary = openLibraryBase + record.WorkKey
	}

	return entry
}

// searchText is the lowercase haystack the frontend filters against.
func searchText(title, author string, genres []string) string {
	parts := append([]string{title, author}, genres...)
	return strings.ToLower(strings.Join(parts, " "))
}

// WriteJSON persists the catalog, creating parent directories as needed.
func WriteJSON(path string, c Catalog) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}

// ReadCatalog loads a previously generated catalog file.
func ReadCatalog(path string) (Catalog, error) {
	var c Catalog

	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("failed to read catalog: %w", err)
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return c, nil
}
