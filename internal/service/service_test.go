package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbakerr/cinematch/internal/domain"
	"github.com/lbakerr/cinematch/internal/engine"
	"github.com/lbakerr/cinematch/internal/importer"
	"github.com/lbakerr/cinematch/internal/library"
)

// stubMetadata satisfies both the engine's and the service's provider
// interfaces.
type stubMetadata struct {
	pool    []domain.Movie
	details map[int64]*domain.Movie
}

func (s *stubMetadata) Search(title string, year int) []domain.Movie {
	return s.pool
}

func (s *stubMetadata) GetDetails(tmdbID int64) *domain.Movie {
	return s.details[tmdbID]
}

func (s *stubMetadata) GetPopularPool(limit int) []domain.Movie {
	if len(s.pool) > limit {
		return s.pool[:limit]
	}
	return s.pool
}

func newTestService(metadata *stubMetadata) (*Service, *library.Library) {
	lib := library.New()
	eng := engine.New(metadata, 1000, zerolog.Nop())
	imp := importer.New(metadata, 2, zerolog.Nop())
	return New(lib, eng, metadata, imp, nil, zerolog.Nop()), lib
}

func TestGetRecommendationsRequiresHistory(t *testing.T) {
	svc, lib := newTestService(&stubMetadata{})
	lib.Add(domain.HistoryEntry{Movie: domain.Movie{TMDBID: 1}, UserRating: 8})

	_, err := svc.GetRecommendations(context.Background(), 10)
	require.ErrorIs(t, err, domain.ErrInsufficientHistory)
}

func TestGetRecommendationsEndToEnd(t *testing.T) {
	metadata := &stubMetadata{
		pool: []domain.Movie{
			{TMDBID: 100, Title: "Pick", GenreIDs: []int64{18}, Rating: 8.0, Popularity: 200, Year: 2020},
		},
		details: map[int64]*domain.Movie{
			100: {TMDBID: 100, Title: "Pick", Genres: []string{"Drama"}},
		},
	}
	svc, lib := newTestService(metadata)
	for i := int64(1); i <= 5; i++ {
		lib.Add(domain.HistoryEntry{
			Movie:      domain.Movie{TMDBID: i, Genres: []string{"Drama"}, Year: 2010},
			UserRating: 8,
		})
	}

	result, err := svc.GetRecommendations(context.Background(), 10)
	require.NoError(t, err)
	assert.False(t, result.CacheHit)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Pick", result.Recommendations[0].Title)
	assert.NotEmpty(t, result.Recommendations[0].Reasoning)
}

func TestAddMovie(t *testing.T) {
	metadata := &stubMetadata{
		details: map[int64]*domain.Movie{
			603: {TMDBID: 603, Title: "The Matrix", Genres: []string{"Action"}},
		},
	}
	svc, lib := newTestService(metadata)

	entry, err := svc.AddMovie(context.Background(), 603, 9.0, "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", entry.Title)
	assert.InDelta(t, 9.0, entry.UserRating, 1e-9)
	assert.Equal(t, 1, lib.Count())
}

func TestAddMovieNotFound(t *testing.T) {
	svc, lib := newTestService(&stubMetadata{details: map[int64]*domain.Movie{}})

	_, err := svc.AddMovie(context.Background(), 999, 5, "")
	require.ErrorIs(t, err, domain.ErrMovieNotFound)
	assert.Zero(t, lib.Count())
}

func TestImportCSVFillsLibrary(t *testing.T) {
	metadata := &stubMetadata{
		pool: []domain.Movie{{TMDBID: 42, Title: "Heat"}},
		details: map[int64]*domain.Movie{
			42: {TMDBID: 42, Title: "Heat", Genres: []string{"Crime"}},
		},
	}
	svc, lib := newTestService(metadata)

	csv := "Movie Name,Rating,Date,Year\nHeat,4.5,2024-01-15,1995\n"
	result, err := svc.ImportCSV(context.Background(), csv)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, 1, lib.Count())
	assert.InDelta(t, 9.0, lib.List()[0].UserRating, 1e-9)
}
