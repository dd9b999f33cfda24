package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ckreads/shelfbuild/internal/catalog"
	"golang.org/x/time/rate"
)

const (
	// defaultSearchResults is how many fuzzy-search candidates get scored.
	defaultSearchResults = 5

	// defaultRequestDelay keeps the batch polite toward the upstream APIs.
	defaultRequestDelay = 1100 * time.Millisecond
)

// Resolver picks and runs one resolution strategy per book, highest
// precedence first: explicit ISBN, explicit work ID, then fuzzy search.
type Resolver struct {
	strategies []Strategy
	limiter    *rate.Limiter
	now        func() time.Time
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRequestDelay overrides the pause between enrichment lookups.
func WithRequestDelay(d time.Duration) Option {
	return func(r *Resolver) {
		r.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithClock overrides the fetch timestamp source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		r.now = now
	}
}

// NewResolver wires the strategy chain against the given sources.
func NewResolver(volumes VolumeSource, works WorkSource, opts ...Option) *Resolver {
	r := &Resolver{
		strategies: []Strategy{
			&isbnStrategy{volumes: volumes},
			&workStrategy{works: works},
			&searchStrategy{volumes: volumes, limit: defaultSearchResults},
		},
		limiter: rate.NewLimiter(rate.Every(defaultRequestDelay), 1),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve runs the strongest eligible strategy for the book, falling through
// to weaker ones on failure. It never returns an error: a resolution that
// fails outright produces an empty record carrying the error string and a
// confidence of none. The returned record is stamped with the fetch time and
// the override values that were active.
func (r *Resolver) Resolve(ctx context.Context, book catalog.Book) Record {
	record := r.resolve(ctx, book)
	record.FetchedAt = r.now().UTC()
	record.ISBNOverrideUsed = book.ISBNOverride
	record.WorkOverrideUsed = book.WorkOverride
	return record
}

func (r *Resolver) resolve(ctx context.Context, book catalog.Book) Record {
	var lastErr error

	for _, strategy := range r.strategies {
		if !strategy.CanResolve(book) {
			continue
		}

		record, err := strategy.Resolve(ctx, book)
		if err != nil {
			slog.Warn("Strategy failed, falling back",
				"strategy", strategy.Name(), "title", book.Title, "error", err)
			lastErr = err
			continue
		}
		return record
	}

	record := Record{Confidence: ConfidenceNone}
	if lastErr != nil {
		record.Error = lastErr.Error()
	}
	return record
}

// EnrichAll resolves the given books sequentially, pausing between lookups
// to respect source rate limits. When the context is canceled it returns
// what was resolved so far together with the context error; individual
// resolution failures never abort the batch.
func (r *Resolver) EnrichAll(ctx context.Context, books []catalog.Book) (map[string]Record, error) {
	results := make(map[string]Record, len(books))

	slog.Info("Enriching books", "count", len(books))

	for i, book := range books {
		if i > 0 {
			if err := r.limiter.Wait(ctx); err != nil {
				return results, fmt.Errorf("enrichment aborted: %w", err)
			}
		}

		record := r.Resolve(ctx, book)
		results[book.CacheKey()] = record

		slog.Info("Resolved book",
			"title", book.Title,
			"confidence", record.Confidence,
			"progress", fmt.Sprintf("%d/%d", i+1, len(books)))
	}

	return results, nil
}
