// Package enrich resolves books against bibliographic sources. It owns the
// match scoring, subject cleanup, and the strategy chain that decides which
// external record an enrichment is built from.
package enrich

// Confidence labels how trustworthy a resolved bibliographic match is.
// ISBN and work-override matches are deterministic lookups; the remaining
// labels are bucketed from a fuzzy match score.
type Confidence string

const (
	ConfidenceNone         Confidence = "none"
	ConfidenceLow          Confidence = "low"
	ConfidenceMedium       Confidence = "medium"
	ConfidenceHigh         Confidence = "high"
	ConfidenceISBN         Confidence = "isbn"
	ConfidenceWorkOverride Confidence = "work_override"
)

// confidenceRanks orders labels from weakest to strongest.
var confidenceRanks = map[Confidence]int{
	ConfidenceNone:         0,
	ConfidenceLow:          1,
	ConfidenceMedium:       2,
	ConfidenceHigh:         3,
	ConfidenceISBN:         4,
	ConfidenceWorkOverride: 5,
}

// Rank returns the position of c in the confidence ordering. Unrecognized
// labels rank below none.
func (c Confidence) Rank() int {
	rank, ok := confidenceRanks[c]
	if !ok {
		return -1
	}
	return rank
}

// Deterministic reports whether c denotes a non-fuzzy match.
func (c Confidence) Deterministic() bool {
	return c == ConfidenceISBN || c == ConfidenceWorkOverride
}

// ConfidenceForScore buckets a fuzzy match score into a confidence label.
func ConfidenceForScore(score float64) Confidence {
	switch {
	case score >= 0.9:
		return ConfidenceHigh
	case score >= 0.7:
		return ConfidenceMedium
	case score >= 0.5:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}
