package enrich

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrNotFound is returned by sources when a lookup matches nothing.
var ErrNotFound = errors.New("no matching record found")

// VolumeSource looks up bibliographic volumes by exact ISBN or by free-text
// title/author search.
type VolumeSource interface {
	FindByISBN(ctx context.Context, isbn string) (*Volume, error)
	Search(ctx context.Context, title, author string, limit int) ([]Volume, error)
}

// WorkSource fetches work records and their editions by work key.
type WorkSource interface {
	GetWork(ctx context.Context, workKey string) (*Work, error)
	GetEditions(ctx context.Context, workKey string, limit int) ([]Edition, error)
}

// Volume is a normalized lookup or search result from a volume source.
type Volume struct {
	ID            string
	Title         string
	Authors       []string
	PublishedDate string
	Categories    []string
	ISBNs         []string
	CoverURL      string
}

// Work is a normalized work record from a work source.
type Work struct {
	Key              string
	Title            string
	Subjects         []string
	FirstPublishDate string
}

// Edition is one published edition of a work.
type Edition struct {
	ISBNs       []string
	PublishDate string
}

// maxSubjects caps how many raw subjects are cached per record.
const maxSubjects = 10

var yearPattern = regexp.MustCompile(`\d{4}`)

// yearFromDate extracts a four-digit year from a date string such as
// "2011", "2011-09-27", or "September 2011". Returns 0 when absent.
func yearFromDate(date string) int {
	match := yearPattern.FindString(date)
	if match == "" {
		return 0
	}
	year, _ := strconv.Atoi(match)
	return year
}

// recordFromVolume normalizes a volume into an enrichment record. The
// confidence is left for the caller to assign.
func recordFromVolume(v *Volume) Record {
	subjects := v.Categories
	if len(subjects) > maxSubjects {
		subjects = subjects[:maxSubjects]
	}

	return Record{
		OfficialTitle:  v.Title,
		OfficialAuthor: strings.Join(v.Authors, ", "),
		ISBN:           SelectBestISBN(v.ISBNs),
		YearPublished:  yearFromDate(v.PublishedDate),
		Subjects:       subjects,
		VolumeID:       v.ID,
		CoverURL:       v.CoverURL,
	}
}

// normalizeWorkKey accepts a bare Open Library work ID ("OL45804W") or a
// qualified path ("/works/OL45804W") and returns the canonical key form.
func normalizeWorkKey(id string) string {
	id = strings.TrimSuffix(strings.TrimSpace(id), "/")
	if strings.HasPrefix(id, "/works/") {
		return id
	}
	return "/works/" + strings.TrimPrefix(id, "works/")
}
