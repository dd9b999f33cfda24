package buildcmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ckreads/shelfbuild/internal/cache"
	"github.com/ckreads/shelfbuild/internal/catalog"
	"github.com/ckreads/shelfbuild/internal/config"
	"github.com/ckreads/shelfbuild/internal/enrich"
	"github.com/ckreads/shelfbuild/internal/googlebooks"
	"github.com/ckreads/shelfbuild/internal/openlibrary"
	"github.com/ckreads/shelfbuild/internal/site"
)

// errorRateThreshold triggers the systemic-failure warning when more than
// this share of a batch fails to enrich.
const errorRateThreshold = 0.5

func executeBuild(ctx context.Context, cfg config.Config, force bool) error {
	books, err := loadBooks(ctx, cfg)
	if err != nil {
		return err
	}
	if len(books) == 0 {
		return fmt.Errorf("no valid books found in the book list")
	}
	slog.Info("Loaded book list", "count", len(books))

	rules, err := loadRules(cfg)
	if err != nil {
		return err
	}

	store := cache.Load(cfg.CachePath)

	stale := store.Stale(books)
	if force {
		stale = dedupe(books)
	}

	enriched := 0
	var enrichErr error
	if len(stale) > 0 {
		records, err := enrichBooks(ctx, cfg, stale)
		store.Merge(records)
		enriched = len(records)
		enrichErr = err

		warnOnErrorRate(records)

		if saveErr := store.Save(); saveErr != nil {
			return saveErr
		}
		if enrichErr != nil {
			// The cache keeps the partial progress; the catalog is not
			// rewritten from an interrupted run.
			return fmt.Errorf("build incomplete: %w", enrichErr)
		}
	} else {
		slog.Info("All books already cached, skipping enrichment")
	}

	generated := site.Build(books, store.Entries(), rules)
	if err := site.WriteJSON(cfg.OutputPath, generated); err != nil {
		return err
	}

	printSummary(generated, enriched, store.Len(), cfg.OutputPath)
	return nil
}

func loadBooks(ctx context.Context, cfg config.Config) ([]catalog.Book, error) {
	if cfg.CSVURL != "" {
		slog.Info("Fetching book list from shared link")
		body, err := catalog.FetchCSV(ctx, cfg.CSVURL)
		if err != nil {
			return nil, err
		}
		return catalog.ParseCSV(strings.NewReader(body))
	}

	slog.Info("Loading book list", "path", cfg.CSVPath)
	return catalog.NewLoader(cfg.CSVPath).Load()
}

func loadRules(cfg config.Config) (*enrich.SubjectRules, error) {
	if cfg.GenreRules == "" {
		return enrich.DefaultSubjectRules(), nil
	}
	return enrich.LoadSubjectRules(cfg.GenreRules)
}

func enrichBooks(ctx context.Context, cfg config.Config, stale []catalog.Book) (map[string]enrich.Record, error) {
	volumes, err := googlebooks.New(ctx, cfg.APIKey)
	if err != nil {
		return nil, err
	}
	works := openlibrary.NewClient()

	resolver := enrich.NewResolver(volumes, works, enrich.WithRequestDelay(cfg.RequestDelay))
	return resolver.EnrichAll(ctx, stale)
}

// warnOnErrorRate flags a batch where most lookups failed, which usually
// means a bad API key or an upstream outage rather than bad book data.
func warnOnErrorRate(records map[string]enrich.Record) {
	if len(records) == 0 {
		return
	}

	failed := 0
	for _, record := range records {
		if record.Error != "" {
			failed++
		}
	}

	rate := float64(failed) / float64(len(records))
	if rate > errorRateThreshold {
		slog.Warn("More than half of the enrichments failed, check API key and connectivity",
			"failed", failed, "total", len(records))
	}
}

// dedupe keeps the first occurrence of each cache key, mirroring the
// worklist the staleness check would produce on an empty cache.
func dedupe(books []catalog.Book) []catalog.Book {
	seen := make(map[string]struct{}, len(books))
	out := make([]catalog.Book, 0, len(books))
	for _, book := range books {
		key := book.CacheKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, book)
	}
	return out
}

func printSummary(c site.Catalog, enriched, cacheEntries int, outputPath string) {
	fmt.Fprintln(os.Stdout, "========================================")
	fmt.Fprintln(os.Stdout, "Build complete")
	fmt.Fprintln(os.Stdout, "========================================")
	fmt.Fprintf(os.Stdout, "Total books:       %d\n", c.Count)
	fmt.Fprintf(os.Stdout, "Newly enriched:    %d\n", enriched)
	fmt.Fprintf(os.Stdout, "Served from cache: %d\n", c.Count-enriched)
	fmt.Fprintf(os.Stdout, "Cache entries:     %d\n", cacheEntries)
	fmt.Fprintf(os.Stdout, "Output:            %s\n", outputPath)
}
