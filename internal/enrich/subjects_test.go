package enrich

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestCleanSubjects(t *testing.T) {
	rules := DefaultSubjectRules()

	tests := []struct {
		name     string
		subjects []string
		want     []string
	}{
		{
			name:     "canonicalize and filter",
			subjects: []string{"Fiction", "Sci-Fi", "Science Fiction, 1950-1999", "Adventure"},
			want:     []string{"Science Fiction", "Adventure"},
		},
		{
			name:     "dedupe across variants",
			subjects: []string{"sci-fi", "Science Fiction", "SCIENCE FICTION"},
			want:     []string{"Science Fiction"},
		},
		{
			name:     "ignore list is case-insensitive",
			subjects: []string{"FICTION", "Accessible Book", "Protected DAISY", "History"},
			want:     []string{"History"},
		},
		{
			name:     "drops digit noise",
			subjects: []string{"American fiction -- 20th century", "Fiction, 1900-1999", "Memoir"},
			want:     []string{"Memoir"},
		},
		{
			name:     "drops overlong headings",
			subjects: []string{"Juvenile literature of an extremely specific and very long kind indeed", "Philosophy"},
			want:     []string{"Philosophy"},
		},
		{
			name:     "title-cases unknown subjects",
			subjects: []string{"magical realism"},
			want:     []string{"Magical Realism"},
		},
		{
			name:     "empty input",
			subjects: nil,
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rules.Clean(tt.subjects)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Clean(%v) = %v, want %v", tt.subjects, got, tt.want)
			}
		})
	}
}

func TestCleanSubjectsCapsAtFive(t *testing.T) {
	rules := DefaultSubjectRules()
	subjects := []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon", "Zeta", "Eta"}

	got := rules.Clean(subjects)
	if len(got) != 5 {
		t.Fatalf("got %d genres, want 5: %v", len(got), got)
	}
	want := []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Clean kept %v, want first-seen order %v", got, want)
	}
}

func TestLoadSubjectRulesMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genres.yaml")
	content := []byte("ignore:\n  - romance\ncanonical:\n  ya: Young Adult\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadSubjectRules(path)
	if err != nil {
		t.Fatalf("LoadSubjectRules: %v", err)
	}

	got := rules.Clean([]string{"Romance", "ya", "Sci-Fi", "Fiction"})
	want := []string{"Young Adult", "Science Fiction"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Clean = %v, want %v", got, want)
	}
}

func TestLoadSubjectRulesMissingFile(t *testing.T) {
	if _, err := LoadSubjectRules(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing rules file")
	}
}
