package engine

import (
	"math"

	"github.com/lbakerr/cinematch/internal/domain"
)

// Product-tuned scoring constants. These are contract values, not
// derived quantities; tests pin them.
const (
	weightGenre      = 0.40
	weightRating     = 0.30
	weightPopularity = 0.20
	weightRecency    = 0.10

	preferredGenreBoost    = 1.5
	nonPreferredGenreScore = 0.1
	popularityCeiling      = 500.0
	decadeMatchScore       = 80.0
	neutralScore           = 50.0

	highRatingThreshold = 4.0
	minHistorySize      = 5
)

// scoredCandidate is the ephemeral ranking record, merged with full
// details before leaving the engine.
type scoredCandidate struct {
	tmdbID    int64
	title     string
	score     float64
	reasoning string
}

func (e *Engine) scoreCandidate(candidate domain.Movie, profile Profile, nowYear int) scoredCandidate {
	genreScore := genreScore(candidate.GenreIDs, profile.GenrePreferences)
	ratingScore := ratingScore(candidate.Rating, profile.AvgRating)
	popularityScore := popularityScore(candidate.Popularity)
	recencyScore := recencyScore(candidate.Year, profile.DecadePreferences, nowYear)

	total := genreScore*weightGenre +
		ratingScore*weightRating +
		popularityScore*weightPopularity +
		recencyScore*weightRecency

	return scoredCandidate{
		tmdbID:    candidate.TMDBID,
		title:     candidate.Title,
		score:     math.Round(total*10) / 10,
		reasoning: reasoning(candidate, genreScore, popularityScore, profile.GenrePreferences, nowYear),
	}
}

// genreScore averages per-genre match contributions: the normalized
// preference weight boosted 1.5x for preferred genres, a flat 0.1
// otherwise, scaled to 0-100. Absent or unmapped genres are neutral.
func genreScore(genreIDs []int64, preferences map[string]float64) float64 {
	if len(genreIDs) == 0 || len(preferences) == 0 {
		return neutralScore
	}

	genres := resolveGenres(genreIDs)
	if len(genres) == 0 {
		return neutralScore
	}

	sum := 0.0
	for _, genre := range genres {
		if weight, ok := preferences[genre]; ok {
			sum += weight * preferredGenreBoost
		} else {
			sum += nonPreferredGenreScore
		}
	}
	avg := sum / float64(len(genres))

	return math.Min(avg*100, 100)
}

// ratingScore rewards proximity to the user's average rating: each
// point of difference costs 10.
func ratingScore(movieRating, userAvgRating float64) float64 {
	if movieRating == 0 {
		return neutralScore
	}
	return math.Max(0, 100-math.Abs(movieRating-userAvgRating)*10)
}

// popularityScore normalizes against a fixed ceiling of 500.
func popularityScore(popularity float64) float64 {
	if popularity == 0 {
		return neutralScore
	}
	return math.Min(popularity/popularityCeiling*100, 100)
}

// recencyScore grants a flat bonus when the release decade appears in
// the user's decade preferences at all, otherwise steps down with age.
func recencyScore(year int, decadePreferences map[int]int, nowYear int) float64 {
	if year == 0 {
		return neutralScore
	}

	if _, ok := decadePreferences[year/10*10]; ok {
		return decadeMatchScore
	}

	switch age := nowYear - year; {
	case age < 5:
		return 70.0
	case age < 10:
		return 60.0
	default:
		return neutralScore
	}
}
