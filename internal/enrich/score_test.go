package enrich

import "testing"

func TestComputeMatchScoreExactMatch(t *testing.T) {
	score := ComputeMatchScore("The Hobbit", "J.R.R. Tolkien", "The Hobbit", []string{"J.R.R. Tolkien"})
	if score != 1.0 {
		t.Errorf("exact match score = %f, want 1.0", score)
	}
}

func TestComputeMatchScoreCaseInsensitive(t *testing.T) {
	score := ComputeMatchScore("the hobbit", "j.r.r. tolkien", "THE HOBBIT", []string{"J.R.R. TOLKIEN"})
	if score != 1.0 {
		t.Errorf("case-insensitive match score = %f, want 1.0", score)
	}
}

func TestComputeMatchScoreDeterministic(t *testing.T) {
	first := ComputeMatchScore("Dune", "Frank Herbert", "Dune Messiah", []string{"Frank Herbert"})
	for i := 0; i < 10; i++ {
		got := ComputeMatchScore("Dune", "Frank Herbert", "Dune Messiah", []string{"Frank Herbert"})
		if got != first {
			t.Fatalf("score not deterministic: %f then %f", first, got)
		}
	}
}

func TestComputeMatchScoreTitleWeighted(t *testing.T) {
	// A matching title should outweigh a matching author.
	titleOnly := ComputeMatchScore("Dune", "Frank Herbert", "Dune", []string{"Qqqq Vvvv"})
	authorOnly := ComputeMatchScore("Dune", "Frank Herbert", "Qqqq Vvvv", []string{"Frank Herbert"})
	if titleOnly <= authorOnly {
		t.Errorf("title-only score %f should exceed author-only score %f", titleOnly, authorOnly)
	}
	if titleOnly < titleWeight {
		t.Errorf("title-only score %f should be at least %f", titleOnly, titleWeight)
	}
}

func TestComputeMatchScoreRange(t *testing.T) {
	tests := []struct {
		name             string
		title, author    string
		candTitle        string
		candAuthors      []string
		wantMin, wantMax float64
	}{
		{"close match", "Dune", "Frank Herbert", "Dune (Dune Chronicles, Book 1)", []string{"Frank Herbert"}, 0.5, 1.0},
		{"no candidate authors", "Dune", "Frank Herbert", "Dune", nil, 0.6, 1.0},
		{"total mismatch", "Dune", "Frank Herbert", "Qq", []string{"Zz"}, 0.0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := ComputeMatchScore(tt.title, tt.author, tt.candTitle, tt.candAuthors)
			if score < tt.wantMin || score > tt.wantMax {
				t.Errorf("score = %f, want in [%f, %f]", score, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestSimilarityEmptyStrings(t *testing.T) {
	if got := similarity("", ""); got != 1.0 {
		t.Errorf("similarity of two empty strings = %f, want 1.0", got)
	}
}
