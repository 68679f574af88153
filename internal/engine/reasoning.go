package engine

import (
	"strings"

	"github.com/lbakerr/cinematch/internal/domain"
)

const (
	reasonSeparator = " • "
	reasonFallback  = "Recommended based on your preferences"
)

// reasoning builds the human-readable explanation from independent
// clauses evaluated in a fixed order. The rating and popularity checks
// use the raw rating and the popularity sub-score, not the weighted
// total; they are separate heuristics.
func reasoning(candidate domain.Movie, genreScore, popularityScore float64, preferences map[string]float64, nowYear int) string {
	var reasons []string

	var matching []string
	for _, genre := range resolveGenres(candidate.GenreIDs) {
		if _, ok := preferences[genre]; ok {
			matching = append(matching, genre)
		}
	}
	if len(matching) > 0 && genreScore > 70 {
		if len(matching) > 2 {
			matching = matching[:2]
		}
		reasons = append(reasons, "Matches your love for "+strings.Join(matching, ", "))
	}

	if candidate.Rating >= 8.0 {
		reasons = append(reasons, "Highly rated by critics")
	} else if candidate.Rating >= 7.0 {
		reasons = append(reasons, "Well-reviewed")
	}

	if popularityScore > 70 {
		reasons = append(reasons, "Popular choice")
	}

	if candidate.Year > 0 && nowYear-candidate.Year < 3 {
		reasons = append(reasons, "Recent release")
	}

	if len(reasons) == 0 {
		return reasonFallback
	}
	return strings.Join(reasons, reasonSeparator)
}
