package enrich

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	titleWeight  = 0.6
	authorWeight = 0.4
)

// ComputeMatchScore scores a search candidate against the queried title and
// author, returning a value in [0, 1]. Each component is a
// longest-matching-blocks sequence ratio over lowercased runes; the title
// carries slightly more weight than the author.
func ComputeMatchScore(queryTitle, queryAuthor, candidateTitle string, candidateAuthors []string) float64 {
	titleScore := similarity(queryTitle, candidateTitle)
	authorScore := similarity(queryAuthor, strings.Join(candidateAuthors, " "))
	return titleScore*titleWeight + authorScore*authorWeight
}

// similarity returns the difflib ratio between two strings, case-insensitive.
func similarity(a, b string) float64 {
	left := strings.Split(strings.ToLower(a), "")
	right := strings.Split(strings.ToLower(b), "")
	return difflib.NewMatcher(left, right).Ratio()
}
