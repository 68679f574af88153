// Package service orchestrates the library, the recommendation
// engine, the metadata client, and the optional response cache behind
// the HTTP handlers.
package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lbakerr/cinematch/internal/cache"
	"github.com/lbakerr/cinematch/internal/domain"
	"github.com/lbakerr/cinematch/internal/engine"
	"github.com/lbakerr/cinematch/internal/importer"
	"github.com/lbakerr/cinematch/internal/library"
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

// MetadataClient is the provider surface the service uses directly
// for search, confirm-add, and detail endpoints.
type MetadataClient interface {
	Search(title string, year int) []domain.Movie
	GetDetails(tmdbID int64) *domain.Movie
}

type Service struct {
	library  *library.Library
	engine   *engine.Engine
	metadata MetadataClient
	importer *importer.Importer
	cache    *cache.Cache // nil when Redis is not configured
	logger   zerolog.Logger
}

func New(lib *library.Library, eng *engine.Engine, metadata MetadataClient, imp *importer.Importer, respCache *cache.Cache, logger zerolog.Logger) *Service {
	return &Service{
		library:  lib,
		engine:   eng,
		metadata: metadata,
		importer: imp,
		cache:    respCache,
		logger:   logger.With().Str("component", "service").Logger(),
	}
}

// GetRecommendations returns up to limit recommendations for the
// current collection, serving from the response cache when the
// collection has not changed since the list was generated.
func (s *Service) GetRecommendations(ctx context.Context, limit int) (*domain.RecommendationResult, error) {
	if limit <= 0 {
		limit = defaultLimit
	} else if limit > maxLimit {
		limit = maxLimit
	}

	history := s.library.List()
	if len(history) < 5 {
		// Fail before touching the cache or the provider.
		return nil, fmt.Errorf("%w: need at least 5 rated movies, have %d",
			domain.ErrInsufficientHistory, len(history))
	}

	version := s.library.Version()
	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, version, limit)
		if err != nil {
			s.logger.Warn().Err(err).Msg("response cache get failed")
		}
		if found {
			return &domain.RecommendationResult{Recommendations: cached, CacheHit: true}, nil
		}
	}

	recs, err := s.engine.GenerateRecommendations(history, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, version, limit, recs); err != nil {
			s.logger.Warn().Err(err).Msg("response cache set failed")
		}
	}

	return &domain.RecommendationResult{Recommendations: recs, CacheHit: false}, nil
}

// ImportCSV imports a watch-history export into the library.
func (s *Service) ImportCSV(ctx context.Context, content string) (*importer.Result, error) {
	result, err := s.importer.Import(content)
	if err != nil {
		return nil, err
	}

	s.library.AddAll(result.Movies)
	s.invalidateCache(ctx)
	s.logger.Info().Int("imported", result.Count).Int("row_errors", len(result.Errors)).Msg("CSV import complete")
	return result, nil
}

// SearchMovies proxies a title search for the manual-entry flow.
func (s *Service) SearchMovies(title string, year int) []domain.Movie {
	return s.metadata.Search(title, year)
}

// AddMovie confirms a specific provider id into the collection with
// the user's rating and watch date.
func (s *Service) AddMovie(ctx context.Context, tmdbID int64, rating float64, watchDate string) (*domain.HistoryEntry, error) {
	details := s.metadata.GetDetails(tmdbID)
	if details == nil {
		return nil, domain.ErrMovieNotFound
	}

	entry := domain.HistoryEntry{
		Movie:      *details,
		UserRating: rating,
		WatchDate:  watchDate,
	}
	s.library.Add(entry)
	s.invalidateCache(ctx)
	return &entry, nil
}

// GetMovieDetails returns the full record for a movie, or nil.
func (s *Service) GetMovieDetails(tmdbID int64) *domain.Movie {
	return s.metadata.GetDetails(tmdbID)
}

// ListMovies returns the user's collection.
func (s *Service) ListMovies() []domain.HistoryEntry {
	return s.library.List()
}

func (s *Service) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("response cache invalidation failed")
	}
}
