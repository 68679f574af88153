package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/lbakerr/cinematch/internal/domain"
)

// GET /api/recommendations
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	// Parse and validate limit
	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > 50 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	result, err := h.service.GetRecommendations(r.Context(), limit)
	if err != nil {
		// Too few movies in the collection: the user needs to add
		// more data, which is a different action than retrying.
		if errors.Is(err, domain.ErrInsufficientHistory) {
			writeError(w, http.StatusBadRequest, "insufficient_data", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, RecommendationsResponse{
		Success:         true,
		Recommendations: result.Recommendations,
		Count:           len(result.Recommendations),
		Metadata: domain.RecommendationMeta{
			CacheHit:    result.CacheHit,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			TotalCount:  len(result.Recommendations),
		},
	})
}
