package engine

import (
	"math"

	"github.com/lbakerr/cinematch/internal/domain"
)

// Profile is the taste summary derived from a user's history. It is
// rebuilt on every recommendation request and never persisted.
type Profile struct {
	// GenrePreferences maps genre name to a normalized weight; the
	// weights sum to 1.0, or the map is empty when the history
	// carries no genres.
	GenrePreferences map[string]float64

	// AvgRating and RatingStdDev are population statistics over all
	// rated entries (defaults 5.0 and 1.0 when fewer than 2 exist).
	AvgRating    float64
	RatingStdDev float64

	// DecadePreferences counts highly-rated movies per release decade.
	DecadePreferences map[int]int

	// ViewingFrequency is movies per month over an assumed one-year
	// window.
	ViewingFrequency float64

	HighlyRatedCount int
}

// buildProfile analyzes the history: genre and decade preferences come
// from the highly-rated subset (user rating >= 4.0, falling back to
// the full history when that subset is empty); rating statistics come
// from every rated entry.
func buildProfile(history []domain.HistoryEntry) Profile {
	highlyRated := make([]domain.HistoryEntry, 0, len(history))
	for _, entry := range history {
		if entry.UserRating >= highRatingThreshold {
			highlyRated = append(highlyRated, entry)
		}
	}
	if len(highlyRated) == 0 {
		highlyRated = history
	}

	genreCounts := make(map[string]int)
	totalGenres := 0
	for _, entry := range highlyRated {
		for _, genre := range entry.Genres {
			genreCounts[genre]++
			totalGenres++
		}
	}

	genrePreferences := make(map[string]float64, len(genreCounts))
	if totalGenres > 0 {
		for genre, count := range genreCounts {
			genrePreferences[genre] = float64(count) / float64(totalGenres)
		}
	}

	decadePreferences := make(map[int]int)
	for _, entry := range highlyRated {
		if entry.Year > 0 {
			decadePreferences[entry.Year/10*10]++
		}
	}

	var ratings []float64
	for _, entry := range history {
		if entry.UserRating > 0 {
			ratings = append(ratings, entry.UserRating)
		}
	}

	avgRating := 5.0
	if len(ratings) > 0 {
		avgRating = mean(ratings)
	}
	ratingStdDev := 1.0
	if len(ratings) > 1 {
		ratingStdDev = stdDev(ratings, avgRating)
	}

	dated := 0
	for _, entry := range history {
		if entry.WatchDate != "" {
			dated++
		}
	}
	viewingFrequency := 1.0
	if dated > 0 {
		viewingFrequency = float64(dated) / 12.0
	}

	return Profile{
		GenrePreferences:  genrePreferences,
		AvgRating:         avgRating,
		RatingStdDev:      ratingStdDev,
		DecadePreferences: decadePreferences,
		ViewingFrequency:  viewingFrequency,
		HighlyRatedCount:  len(highlyRated),
	}
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stdDev is the population standard deviation.
func stdDev(xs []float64, avg float64) float64 {
	sum := 0.0
	for _, x := range xs {
		d := x - avg
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}
