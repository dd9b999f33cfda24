// Package catalog reads the user-maintained book list.
package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Book represents one row of the user's book list. Title and Author are
// required; every other field is optional, with the empty string meaning
// "not set".
type Book struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	ISBNOverride  string `json:"isbn_override,omitempty"`
	WorkOverride  string `json:"olid_work_override,omitempty"`
	GeoRegion     string `json:"geo_region,omitempty"`
	SortYear      string `json:"sort_year,omitempty"`
	SortBasis     string `json:"sort_basis,omitempty"`
	ReadByColin   bool   `json:"read_by_colin"`
	ReadByKaitlyn bool   `json:"read_by_kaitlyn"`
}

// CacheKey returns the normalized title|author pair that indexes the
// enrichment cache. The pair is not guaranteed unique across the list; the
// pipeline treats it as unique, first occurrence wins.
func (b Book) CacheKey() string {
	title := strings.ToLower(strings.TrimSpace(b.Title))
	author := strings.ToLower(strings.TrimSpace(b.Author))
	return title + "|" + author
}

// ID returns a stable short identifier derived from the raw title|author
// pair. Used as the entry ID in the generated catalog.
func (b Book) ID() string {
	sum := sha256.Sum256([]byte(b.Title + "|" + b.Author))
	return hex.EncodeToString(sum[:])[:8]
}
