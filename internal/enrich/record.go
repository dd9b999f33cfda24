package enrich

import "time"

// Record is the enrichment resolved for one book. The zero value with a
// confidence of none represents "nothing found". Subjects are cached raw;
// they are cleaned into genres at catalog build time.
type Record struct {
	OfficialTitle  string     `json:"official_title,omitempty"`
	OfficialAuthor string     `json:"official_author,omitempty"`
	ISBN           string     `json:"isbn,omitempty"`
	YearPublished  int        `json:"year_published,omitempty"`
	Subjects       []string   `json:"subjects,omitempty"`
	VolumeID       string     `json:"google_books_volume_id,omitempty"`
	WorkKey        string     `json:"open_library_work_key,omitempty"`
	CoverURL       string     `json:"cover_url,omitempty"`
	Confidence     Confidence `json:"match_confidence"`
	FetchedAt      time.Time  `json:"fetched_at"`
	Error          string     `json:"error,omitempty"`

	// Override values active at fetch time. They exist solely so a later
	// run can detect that an override changed and the record is stale.
	ISBNOverrideUsed string `json:"isbn_override_used,omitempty"`
	WorkOverrideUsed string `json:"olid_work_override_used,omitempty"`
}
