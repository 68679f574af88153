package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbakerr/cinematch/internal/domain"
)

func historyEntry(genre string, rating float64) domain.HistoryEntry {
	return domain.HistoryEntry{
		Movie:      domain.Movie{Genres: []string{genre}},
		UserRating: rating,
	}
}

func TestProfileGenrePreferencesFromHighlyRatedSubset(t *testing.T) {
	history := []domain.HistoryEntry{
		historyEntry("Drama", 9),
		historyEntry("Drama", 8),
		historyEntry("Comedy", 3),
		historyEntry("Drama", 9),
		historyEntry("Horror", 10),
	}

	profile := buildProfile(history)

	// The Comedy entry falls below the 4.0 cutoff.
	assert.Equal(t, 4, profile.HighlyRatedCount)
	require.Len(t, profile.GenrePreferences, 2)
	assert.InDelta(t, 0.75, profile.GenrePreferences["Drama"], 1e-9)
	assert.InDelta(t, 0.25, profile.GenrePreferences["Horror"], 1e-9)
}

func TestProfileWeightsSumToOne(t *testing.T) {
	history := []domain.HistoryEntry{
		{Movie: domain.Movie{Genres: []string{"Drama", "Thriller"}}, UserRating: 8},
		{Movie: domain.Movie{Genres: []string{"Comedy"}}, UserRating: 7},
		{Movie: domain.Movie{Genres: []string{"Drama", "Crime", "Thriller"}}, UserRating: 9},
		{Movie: domain.Movie{Genres: []string{"Horror"}}, UserRating: 6},
		{Movie: domain.Movie{Genres: []string{"Drama"}}, UserRating: 10},
	}

	profile := buildProfile(history)

	sum := 0.0
	for _, w := range profile.GenrePreferences {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestProfileFallsBackToFullHistory(t *testing.T) {
	history := []domain.HistoryEntry{
		historyEntry("Drama", 2),
		historyEntry("Comedy", 3),
	}

	profile := buildProfile(history)

	assert.Equal(t, 2, profile.HighlyRatedCount)
	assert.InDelta(t, 0.5, profile.GenrePreferences["Drama"], 1e-9)
	assert.InDelta(t, 0.5, profile.GenrePreferences["Comedy"], 1e-9)
}

func TestProfileEmptyGenresYieldEmptyPreferences(t *testing.T) {
	history := []domain.HistoryEntry{
		{UserRating: 8},
		{UserRating: 9},
	}

	profile := buildProfile(history)
	assert.Empty(t, profile.GenrePreferences)
}

func TestProfileRatingStatistics(t *testing.T) {
	history := []domain.HistoryEntry{
		{UserRating: 6},
		{UserRating: 8},
		{UserRating: 10},
	}

	profile := buildProfile(history)
	assert.InDelta(t, 8.0, profile.AvgRating, 1e-9)
	// Population standard deviation of (6, 8, 10).
	assert.InDelta(t, 1.632993, profile.RatingStdDev, 1e-5)
}

func TestProfileRatingDefaults(t *testing.T) {
	profile := buildProfile([]domain.HistoryEntry{{UserRating: 7}})
	assert.InDelta(t, 7.0, profile.AvgRating, 1e-9)
	assert.InDelta(t, 1.0, profile.RatingStdDev, 1e-9, "single rating keeps default deviation")

	profile = buildProfile([]domain.HistoryEntry{{}, {}})
	assert.InDelta(t, 5.0, profile.AvgRating, 1e-9)
	assert.InDelta(t, 1.0, profile.RatingStdDev, 1e-9)
}

func TestProfileDecadePreferences(t *testing.T) {
	history := []domain.HistoryEntry{
		{Movie: domain.Movie{Year: 1994}, UserRating: 9},
		{Movie: domain.Movie{Year: 1999}, UserRating: 8},
		{Movie: domain.Movie{Year: 2008}, UserRating: 7},
		{Movie: domain.Movie{Year: 2012}, UserRating: 2}, // below cutoff
		{Movie: domain.Movie{}, UserRating: 10},          // no year, skipped
	}

	profile := buildProfile(history)
	assert.Equal(t, map[int]int{1990: 2, 2000: 1}, profile.DecadePreferences)
}

func TestProfileViewingFrequency(t *testing.T) {
	history := []domain.HistoryEntry{
		{WatchDate: "2024-01-10"},
		{WatchDate: "2024-02-14"},
		{WatchDate: "2024-03-03"},
		{},
	}
	profile := buildProfile(history)
	assert.InDelta(t, 0.25, profile.ViewingFrequency, 1e-9)

	profile = buildProfile([]domain.HistoryEntry{{}, {}})
	assert.InDelta(t, 1.0, profile.ViewingFrequency, 1e-9, "no dated entries defaults to 1")
}
