package enrich

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ckreads/shelfbuild/internal/catalog"
)

// maxEditions caps how many editions are scanned for an ISBN when resolving
// by work ID.
const maxEditions = 5

// Strategy resolves one book into an enrichment record. Strategies are tried
// in precedence order; a failed strategy falls through to the next eligible
// one, ending at the fuzzy search which always applies.
type Strategy interface {
	Name() string
	CanResolve(book catalog.Book) bool
	Resolve(ctx context.Context, book catalog.Book) (Record, error)
}

// isbnStrategy looks the book up by its explicit ISBN override.
type isbnStrategy struct {
	volumes VolumeSource
}

func (s *isbnStrategy) Name() string { return "isbn" }

func (s *isbnStrategy) CanResolve(book catalog.Book) bool {
	return book.ISBNOverride != ""
}

func (s *isbnStrategy) Resolve(ctx context.Context, book catalog.Book) (Record, error) {
	volume, err := s.volumes.FindByISBN(ctx, book.ISBNOverride)
	if err != nil {
		return Record{}, fmt.Errorf("isbn lookup %s: %w", book.ISBNOverride, err)
	}

	record := recordFromVolume(volume)
	// Keep the queried ISBN when the source returns no identifiers of its own.
	if record.ISBN == "" {
		record.ISBN = book.ISBNOverride
	}
	record.Confidence = ConfidenceISBN
	return record, nil
}

// workStrategy looks the book up by its explicit Open Library work ID.
type workStrategy struct {
	works WorkSource
}

func (s *workStrategy) Name() string { return "work" }

func (s *workStrategy) CanResolve(book catalog.Book) bool {
	return book.WorkOverride != ""
}

func (s *workStrategy) Resolve(ctx context.Context, book catalog.Book) (Record, error) {
	workKey := normalizeWorkKey(book.WorkOverride)

	work, err := s.works.GetWork(ctx, workKey)
	if err != nil {
		return Record{}, fmt.Errorf("work lookup %s: %w", workKey, err)
	}

	subjects := work.Subjects
	if len(subjects) > maxSubjects {
		subjects = subjects[:maxSubjects]
	}

	record := Record{
		// Author names need per-author requests on this source; the field
		// stays absent rather than guessed.
		OfficialTitle: work.Title,
		YearPublished: yearFromDate(work.FirstPublishDate),
		Subjects:      subjects,
		WorkKey:       work.Key,
		Confidence:    ConfidenceWorkOverride,
	}
	record.ISBN = s.findEditionISBN(ctx, workKey)

	return record, nil
}

// findEditionISBN scans the first few editions for an ISBN; the first
// edition carrying one wins. Edition fetch failures leave the ISBN absent
// without failing the work resolution.
func (s *workStrategy) findEditionISBN(ctx context.Context, workKey string) string {
	editions, err := s.works.GetEditions(ctx, workKey, maxEditions)
	if err != nil {
		slog.Warn("Failed to fetch editions, leaving ISBN absent", "work", workKey, "error", err)
		return ""
	}

	for _, edition := range editions {
		if isbn := SelectBestISBN(edition.ISBNs); isbn != "" {
			return isbn
		}
	}
	return ""
}

// searchStrategy resolves the book by fuzzy title/author search.
type searchStrategy struct {
	volumes VolumeSource
	limit   int
}

func (s *searchStrategy) Name() string { return "search" }

func (s *searchStrategy) CanResolve(catalog.Book) bool { return true }

func (s *searchStrategy) Resolve(ctx context.Context, book catalog.Book) (Record, error) {
	candidates, err := s.volumes.Search(ctx, book.Title, book.Author, s.limit)
	if err != nil {
		return Record{}, fmt.Errorf("search %q: %w", book.Title, err)
	}
	if len(candidates) == 0 {
		return Record{
			Confidence: ConfidenceNone,
			Error:      "no results found",
		}, nil
	}

	// Strict maximum; ties keep the earlier candidate, i.e. the source's
	// own ranking order.
	best := 0
	bestScore := 0.0
	for i := range candidates {
		score := ComputeMatchScore(book.Title, book.Author, candidates[i].Title, candidates[i].Authors)
		if score > bestScore {
			bestScore = score
			best = i
		}
	}

	record := recordFromVolume(&candidates[best])
	record.Confidence = ConfidenceForScore(bestScore)
	return record, nil
}
