// Package engine produces personalized movie recommendations from a
// user's watch history using weighted content-based scoring: a taste
// profile is built fresh per request, a popular-movie candidate pool
// is scored against it, and the top candidates are enriched with full
// metadata.
package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/lbakerr/cinematch/internal/domain"
)

const defaultCount = 10

// MetadataProvider supplies the candidate pool and full detail
// records. Implemented by the tmdb client; both operations report
// absence instead of errors.
type MetadataProvider interface {
	GetPopularPool(limit int) []domain.Movie
	GetDetails(tmdbID int64) *domain.Movie
}

type Engine struct {
	provider MetadataProvider
	poolSize int
	logger   zerolog.Logger

	// now is a hook for deterministic recency scoring in tests.
	now func() time.Time
}

func New(provider MetadataProvider, poolSize int, logger zerolog.Logger) *Engine {
	return &Engine{
		provider: provider,
		poolSize: poolSize,
		logger:   logger.With().Str("component", "engine").Logger(),
		now:      time.Now,
	}
}

// GenerateRecommendations builds a taste profile from the history,
// scores the candidate pool against it, and returns up to count
// enriched recommendations in descending score order. A history of
// fewer than 5 entries is a caller contract violation reported as
// domain.ErrInsufficientHistory before any provider call is made.
// Candidates whose detail fetch fails are dropped, so fewer than
// count results may be returned.
func (e *Engine) GenerateRecommendations(history []domain.HistoryEntry, count int) ([]domain.Recommendation, error) {
	if len(history) < minHistorySize {
		return nil, fmt.Errorf("%w: need at least %d movies, have %d",
			domain.ErrInsufficientHistory, minHistorySize, len(history))
	}
	if count <= 0 {
		count = defaultCount
	}

	profile := buildProfile(history)
	e.logger.Info().
		Int("history", len(history)).
		Int("highly_rated", profile.HighlyRatedCount).
		Float64("avg_rating", profile.AvgRating).
		Msg("built user profile")

	candidates := e.candidatePool(history)
	e.logger.Info().Int("candidates", len(candidates)).Msg("fetched candidate pool")

	nowYear := e.now().Year()
	scored := make([]scoredCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		scored = append(scored, e.scoreCandidate(candidate, profile, nowYear))
	}

	// Stable sort keeps original pool order on exact ties.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if len(scored) > count {
		scored = scored[:count]
	}

	recommendations := make([]domain.Recommendation, 0, len(scored))
	for _, candidate := range scored {
		details := e.provider.GetDetails(candidate.tmdbID)
		if details == nil {
			e.logger.Warn().Int64("tmdb_id", candidate.tmdbID).Str("title", candidate.title).
				Msg("dropping recommendation, detail fetch failed")
			continue
		}
		recommendations = append(recommendations, domain.Recommendation{
			Movie:      *details,
			MatchScore: candidate.score,
			Reasoning:  candidate.reasoning,
		})
	}

	return recommendations, nil
}

// candidatePool fetches the popular listing and removes everything
// already present in the history, matched by provider id.
func (e *Engine) candidatePool(history []domain.HistoryEntry) []domain.Movie {
	seen := make(map[int64]struct{}, len(history))
	for _, entry := range history {
		seen[entry.TMDBID] = struct{}{}
	}

	pool := e.provider.GetPopularPool(e.poolSize)
	candidates := make([]domain.Movie, 0, len(pool))
	for _, movie := range pool {
		if _, watched := seen[movie.TMDBID]; watched {
			continue
		}
		candidates = append(candidates, movie)
	}
	return candidates
}
