package enrich

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ckreads/shelfbuild/internal/catalog"
)

type fakeVolumes struct {
	findByISBN func(ctx context.Context, isbn string) (*Volume, error)
	search     func(ctx context.Context, title, author string, limit int) ([]Volume, error)

	searchCalls int
}

func (f *fakeVolumes) FindByISBN(ctx context.Context, isbn string) (*Volume, error) {
	return f.findByISBN(ctx, isbn)
}

func (f *fakeVolumes) Search(ctx context.Context, title, author string, limit int) ([]Volume, error) {
	f.searchCalls++
	return f.search(ctx, title, author, limit)
}

type fakeWorks struct {
	getWork     func(ctx context.Context, workKey string) (*Work, error)
	getEditions func(ctx context.Context, workKey string, limit int) ([]Edition, error)
}

func (f *fakeWorks) GetWork(ctx context.Context, workKey string) (*Work, error) {
	return f.getWork(ctx, workKey)
}

func (f *fakeWorks) GetEditions(ctx context.Context, workKey string, limit int) ([]Edition, error) {
	return f.getEditions(ctx, workKey, limit)
}

func noCalls(t *testing.T) (*fakeVolumes, *fakeWorks) {
	t.Helper()
	volumes := &fakeVolumes{
		findByISBN: func(context.Context, string) (*Volume, error) {
			t.Fatal("unexpected FindByISBN call")
			return nil, nil
		},
		search: func(context.Context, string, string, int) ([]Volume, error) {
			t.Fatal("unexpected Search call")
			return nil, nil
		},
	}
	works := &fakeWorks{
		getWork: func(context.Context, string) (*Work, error) {
			t.Fatal("unexpected GetWork call")
			return nil, nil
		},
		getEditions: func(context.Context, string, int) ([]Edition, error) {
			t.Fatal("unexpected GetEditions call")
			return nil, nil
		},
	}
	return volumes, works
}

func fixedClock() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestResolveISBNOverride(t *testing.T) {
	volumes, works := noCalls(t)
	volumes.findByISBN = func(_ context.Context, isbn string) (*Volume, error) {
		require.Equal(t, "9780441013593", isbn)
		return &Volume{
			ID:            "vol-1",
			Title:         "Dune",
			Authors:       []string{"Frank Herbert"},
			PublishedDate: "1965-08-01",
			Categories:    []string{"Science Fiction"},
		}, nil
	}

	r := NewResolver(volumes, works, WithClock(fixedClock))
	record := r.Resolve(context.Background(), catalog.Book{
		Title:        "Dune",
		Author:       "Frank Herbert",
		ISBNOverride: "9780441013593",
	})

	require.Equal(t, ConfidenceISBN, record.Confidence)
	require.Equal(t, "Dune", record.OfficialTitle)
	require.Equal(t, "Frank Herbert", record.OfficialAuthor)
	require.Equal(t, 1965, record.YearPublished)
	// The source returned no identifiers, so the queried ISBN is kept.
	require.Equal(t, "9780441013593", record.ISBN)
	require.Equal(t, "vol-1", record.VolumeID)
	require.Equal(t, fixedClock(), record.FetchedAt)
	require.Equal(t, "9780441013593", record.ISBNOverrideUsed)
	require.Empty(t, record.WorkOverrideUsed)
}

func TestResolveISBNFailureFallsBackToSearch(t *testing.T) {
	volumes, works := noCalls(t)
	volumes.findByISBN = func(context.Context, string) (*Volume, error) {
		return nil, ErrNotFound
	}
	volumes.search = func(context.Context, string, string, int) ([]Volume, error) {
		return []Volume{{Title: "Dune", Authors: []string{"Frank Herbert"}}}, nil
	}

	r := NewResolver(volumes, works, WithClock(fixedClock))
	record := r.Resolve(context.Background(), catalog.Book{
		Title:        "Dune",
		Author:       "Frank Herbert",
		ISBNOverride: "0000000000000",
	})

	require.Equal(t, 1, volumes.searchCalls)
	require.Equal(t, ConfidenceHigh, record.Confidence)
	require.Equal(t, "Dune", record.OfficialTitle)
	require.Equal(t, "0000000000000", record.ISBNOverrideUsed)
}

func TestResolveWorkOverride(t *testing.T) {
	volumes, works := noCalls(t)
	works.getWork = func(_ context.Context, workKey string) (*Work, error) {
		require.Equal(t, "/works/OL45804W", workKey)
		return &Work{
			Key:              "/works/OL45804W",
			Title:            "Fantastic Mr Fox",
			Subjects:         []string{"Children's fiction", "Foxes"},
			FirstPublishDate: "October 1, 1988",
		}, nil
	}
	works.getEditions = func(_ context.Context, workKey string, limit int) ([]Edition, error) {
		require.Equal(t, maxEditions, limit)
		return []Edition{
			{ISBNs: nil},
			{ISBNs: []string{"9780140328721", "0140328726"}},
		}, nil
	}

	r := NewResolver(volumes, works, WithClock(fixedClock))
	record := r.Resolve(context.Background(), catalog.Book{
		Title:        "Fantastic Mr Fox",
		Author:       "Roald Dahl",
		WorkOverride: "OL45804W",
	})

	require.Equal(t, ConfidenceWorkOverride, record.Confidence)
	require.Equal(t, "Fantastic Mr Fox", record.OfficialTitle)
	require.Empty(t, record.OfficialAuthor)
	require.Equal(t, 1988, record.YearPublished)
	require.Equal(t, "/works/OL45804W", record.WorkKey)
	require.Equal(t, "9780140328721", record.ISBN)
	require.Equal(t, "OL45804W", record.WorkOverrideUsed)
}

func TestResolveWorkEditionsFailureKeepsWork(t *testing.T) {
	volumes, works := noCalls(t)
	works.getWork = func(context.Context, string) (*Work, error) {
		return &Work{Key: "/works/OL1W", Title: "Some Work"}, nil
	}
	works.getEditions = func(context.Context, string, int) ([]Edition, error) {
		return nil, errors.New("editions endpoint down")
	}

	r := NewResolver(volumes, works, WithClock(fixedClock))
	record := r.Resolve(context.Background(), catalog.Book{
		Title:        "Some Work",
		Author:       "Somebody",
		WorkOverride: "/works/OL1W",
	})

	require.Equal(t, ConfidenceWorkOverride, record.Confidence)
	require.Empty(t, record.ISBN)
}

func TestResolveSearchPicksBestCandidate(t *testing.T) {
	volumes, works := noCalls(t)
	volumes.search = func(context.Context, string, string, int) ([]Volume, error) {
		return []Volume{
			{Title: "Dune Messiah", Authors: []string{"Frank Herbert"}},
			{Title: "Dune", Authors: []string{"Frank Herbert"}},
			{Title: "Dune", Authors: []string{"Frank Herbert"}, ID: "later-duplicate"},
		}, nil
	}

	r := NewResolver(volumes, works, WithClock(fixedClock))
	record := r.Resolve(context.Background(), catalog.Book{Title: "Dune", Author: "Frank Herbert"})

	require.Equal(t, ConfidenceHigh, record.Confidence)
	require.Equal(t, "Dune", record.OfficialTitle)
	// Ties keep the earlier candidate.
	require.Empty(t, record.VolumeID)
}

func TestResolveSearchNoResults(t *testing.T) {
	volumes, works := noCalls(t)
	volumes.search = func(context.Context, string, string, int) ([]Volume, error) {
		return nil, nil
	}

	r := NewResolver(volumes, works, WithClock(fixedClock))
	record := r.Resolve(context.Background(), catalog.Book{Title: "Nonexistent", Author: "Nobody"})

	require.Equal(t, ConfidenceNone, record.Confidence)
	require.Equal(t, "no results found", record.Error)
	require.Equal(t, fixedClock(), record.FetchedAt)
}

func TestResolveAllStrategiesFail(t *testing.T) {
	volumes, works := noCalls(t)
	volumes.search = func(context.Context, string, string, int) ([]Volume, error) {
		return nil, errors.New("quota exceeded")
	}

	r := NewResolver(volumes, works, WithClock(fixedClock))
	record := r.Resolve(context.Background(), catalog.Book{Title: "Dune", Author: "Frank Herbert"})

	require.Equal(t, ConfidenceNone, record.Confidence)
	require.Contains(t, record.Error, "quota exceeded")
	require.Empty(t, record.OfficialTitle)
}

func TestEnrichAllReturnsPartialOnCancel(t *testing.T) {
	volumes, works := noCalls(t)
	volumes.search = func(context.Context, string, string, int) ([]Volume, error) {
		return []Volume{{Title: "Dune", Authors: []string{"Frank Herbert"}}}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewResolver(volumes, works, WithClock(fixedClock), WithRequestDelay(time.Millisecond))
	books := []catalog.Book{
		{Title: "Dune", Author: "Frank Herbert"},
		{Title: "Dune Messiah", Author: "Frank Herbert"},
	}

	records, err := r.EnrichAll(ctx, books)
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, records, 1)
	require.Contains(t, records, "dune|frank herbert")
}

func TestEnrichAllKeyedByCacheKey(t *testing.T) {
	volumes, works := noCalls(t)
	volumes.search = func(_ context.Context, title, _ string, _ int) ([]Volume, error) {
		return []Volume{{Title: title, Authors: []string{"Frank Herbert"}}}, nil
	}

	r := NewResolver(volumes, works, WithClock(fixedClock), WithRequestDelay(time.Millisecond))
	books := []catalog.Book{
		{Title: "  Dune ", Author: "Frank Herbert"},
		{Title: "Dune Messiah", Author: "Frank Herbert"},
	}

	records, err := r.EnrichAll(context.Background(), books)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Contains(t, records, "dune|frank herbert")
	require.Contains(t, records, "dune messiah|frank herbert")
}
