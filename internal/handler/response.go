package handler

import "github.com/lbakerr/cinematch/internal/domain"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type UploadResponse struct {
	Success bool     `json:"success"`
	Count   int      `json:"count"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

type SearchResponse struct {
	Matches []domain.Movie `json:"matches"`
}

type AddMovieResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Movie   *domain.HistoryEntry `json:"movie"`
}

type RecommendationsResponse struct {
	Success         bool                      `json:"success"`
	Recommendations []domain.Recommendation   `json:"recommendations"`
	Count           int                       `json:"count"`
	Metadata        domain.RecommendationMeta `json:"metadata"`
}

type MoviesResponse struct {
	Movies []domain.HistoryEntry `json:"movies"`
	Count  int                   `json:"count"`
}
