package enrich

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// maxGenres caps the cleaned genre list per book.
const maxGenres = 5

// maxSubjectLen drops subjects longer than this; they are almost always
// concatenated heading strings rather than genres.
const maxSubjectLen = 50

// defaultIgnore lists subjects too generic to be useful, plus the
// lending-system labels Open Library attaches to popular works.
var defaultIgnore = []string{
	"fiction",
	"nonfiction",
	"general",
	"literary",
	"literature",
	"accessible book",
	"protected daisy",
	"in library",
	"overdrive",
	"large type books",
	"new york times bestseller",
}

// defaultCanonical maps lowercase variants to display-cased genre names.
var defaultCanonical = map[string]string{
	"sci-fi":            "Science Fiction",
	"science fiction":   "Science Fiction",
	"self-help":         "Self-Help",
	"selfhelp":          "Self-Help",
	"self help":         "Self-Help",
	"biography":         "Biography",
	"biographies":       "Biography",
	"memoir":            "Memoir",
	"memoirs":           "Memoir",
	"history":           "History",
	"historical":        "History",
	"psychology":        "Psychology",
	"philosophy":        "Philosophy",
	"economics":         "Economics",
	"politics":          "Politics",
	"political science": "Politics",
}

// SubjectRules cleans raw subject strings into presentable genres.
type SubjectRules struct {
	Ignore    []string          `yaml:"ignore"`
	Canonical map[string]string `yaml:"canonical"`

	ignoreSet map[string]struct{}
}

// DefaultSubjectRules returns the built-in ignore list and canonical map.
func DefaultSubjectRules() *SubjectRules {
	rules := &SubjectRules{
		Ignore:    append([]string(nil), defaultIgnore...),
		Canonical: make(map[string]string, len(defaultCanonical)),
		ignoreSet: make(map[string]struct{}, len(defaultIgnore)),
	}
	for _, term := range defaultIgnore {
		rules.ignoreSet[term] = struct{}{}
	}
	for variant, canonical := range defaultCanonical {
		rules.Canonical[variant] = canonical
	}
	return rules
}

// LoadSubjectRules reads extra rules from a YAML file and merges them over
// the defaults. User entries win on conflicting canonical mappings.
func LoadSubjectRules(path string) (*SubjectRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read genre rules: %w", err)
	}

	var extra SubjectRules
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("failed to parse genre rules: %w", err)
	}

	rules := DefaultSubjectRules()
	for _, term := range extra.Ignore {
		normalized := strings.ToLower(strings.TrimSpace(term))
		rules.Ignore = append(rules.Ignore, term)
		rules.ignoreSet[normalized] = struct{}{}
	}
	for variant, canonical := range extra.Canonical {
		rules.Canonical[strings.ToLower(strings.TrimSpace(variant))] = canonical
	}
	return rules, nil
}

// Clean filters, canonicalizes, and deduplicates subjects into at most five
// genres, preserving first-seen order.
func (r *SubjectRules) Clean(subjects []string) []string {
	caser := cases.Title(language.English)

	cleaned := make([]string, 0, maxGenres)
	seen := make(map[string]struct{})

	for _, subject := range subjects {
		lower := strings.ToLower(strings.TrimSpace(subject))

		if _, ignored := r.ignoreSet[lower]; ignored {
			continue
		}
		// Date-range noise like "Fiction, 1900-1999".
		if strings.ContainsFunc(subject, unicode.IsDigit) {
			continue
		}
		if len(subject) > maxSubjectLen {
			continue
		}

		canonical, ok := r.Canonical[lower]
		if !ok {
			canonical = caser.String(subject)
		}

		key := strings.ToLower(canonical)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		cleaned = append(cleaned, canonical)
		if len(cleaned) == maxGenres {
			break
		}
	}

	return cleaned
}
