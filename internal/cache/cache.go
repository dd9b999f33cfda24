// Package cache persists enrichment records between runs and decides which
// books need re-enrichment.
package cache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ckreads/shelfbuild/internal/catalog"
	"github.com/ckreads/shelfbuild/internal/enrich"
)

// Store maps cache keys to the most recent enrichment record. It is loaded
// once per run, mutated in memory, and persisted once at the end; a crash
// mid-run never corrupts the previously persisted file.
type Store struct {
	path    string
	entries map[string]enrich.Record
}

// Load reads the cache file at path. A missing or corrupt file yields an
// empty cache; neither is fatal.
func Load(path string) *Store {
	store := &Store{
		path:    path,
		entries: make(map[string]enrich.Record),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read cache, starting fresh", "path", path, "error", err)
		}
		return store
	}

	if err := json.Unmarshal(data, &store.entries); err != nil {
		slog.Warn("Failed to parse cache, starting fresh", "path", path, "error", err)
		store.entries = make(map[string]enrich.Record)
	}
	return store
}

// Get returns the cached record for a cache key.
func (s *Store) Get(key string) (enrich.Record, bool) {
	record, ok := s.entries[key]
	return record, ok
}

// Put stores a record under a cache key, replacing any previous entry.
func (s *Store) Put(key string, record enrich.Record) {
	s.entries[key] = record
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Entries returns the underlying cache map.
func (s *Store) Entries() map[string]enrich.Record {
	return s.entries
}

// Merge replaces cache entries wholesale with freshly resolved records.
func (s *Store) Merge(records map[string]enrich.Record) {
	for key, record := range records {
		s.entries[key] = record
	}
}

// Save writes the cache back to disk, creating parent directories as needed.
func (s *Store) Save() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// NeedsRefresh reports whether the cached record is missing or stale for the
// book. A record is stale when either override on the book differs from the
// snapshot taken when the record was fetched.
func NeedsRefresh(book catalog.Book, record enrich.Record, ok bool) bool {
	if !ok {
		return true
	}
	return book.ISBNOverride != record.ISBNOverrideUsed ||
		book.WorkOverride != record.WorkOverrideUsed
}

// Stale returns the books whose cache entries need recomputing, deduplicated
// by cache key. The first occurrence of a duplicated key wins.
func (s *Store) Stale(books []catalog.Book) []catalog.Book {
	var stale []catalog.Book
	seen := make(map[string]struct{}, len(books))

	for _, book := range books {
		key := book.CacheKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		record, ok := s.entries[key]
		if !NeedsRefresh(book, record, ok) {
			continue
		}
		if ok {
			slog.Info("Override changed, will re-enrich", "title", book.Title)
		}
		stale = append(stale, book)
	}

	return stale
}
