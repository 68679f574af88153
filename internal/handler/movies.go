package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lbakerr/cinematch/internal/domain"
)

// POST /api/upload-csv
func (h *Handler) UploadCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "No file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "No file selected")
		return
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		writeError(w, http.StatusBadRequest, "invalid_request", "File must be a CSV")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Failed to read uploaded file")
		return
	}

	result, err := h.service.ImportCSV(r.Context(), string(content))
	if err != nil {
		writeError(w, http.StatusBadRequest, "import_failed", err.Error())
		return
	}

	errs := result.Errors
	if errs == nil {
		errs = []string{}
	}
	writeJSON(w, http.StatusOK, UploadResponse{
		Success: true,
		Count:   result.Count,
		Message: fmt.Sprintf("Successfully imported %d movies", result.Count),
		Errors:  errs,
	})
}

type addMovieRequest struct {
	TMDBID    int64   `json:"tmdb_id,omitempty"`
	Title     string  `json:"title,omitempty"`
	Year      int     `json:"year,omitempty"`
	Rating    float64 `json:"rating,omitempty"`
	WatchDate string  `json:"watch_date,omitempty"`
}

// POST /api/add-movie
//
// With tmdb_id the movie is confirmed into the collection; otherwise
// title is searched and the top matches returned for the user to pick.
func (h *Handler) AddMovie(w http.ResponseWriter, r *http.Request) {
	var req addMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "No data provided")
		return
	}

	if req.TMDBID != 0 {
		entry, err := h.service.AddMovie(r.Context(), req.TMDBID, req.Rating, req.WatchDate)
		if err != nil {
			if errors.Is(err, domain.ErrMovieNotFound) {
				writeError(w, http.StatusInternalServerError, "fetch_failed", "Failed to fetch movie details")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
			return
		}
		writeJSON(w, http.StatusOK, AddMovieResponse{
			Success: true,
			Message: fmt.Sprintf("Added '%s' to your collection", entry.Title),
			Movie:   entry,
		})
		return
	}

	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "Movie title is required")
		return
	}

	matches := h.service.SearchMovies(req.Title, req.Year)
	if len(matches) == 0 {
		writeError(w, http.StatusNotFound, "not_found",
			fmt.Sprintf("No results found for '%s'", req.Title))
		return
	}
	if len(matches) > 5 {
		matches = matches[:5]
	}
	writeJSON(w, http.StatusOK, SearchResponse{Matches: matches})
}

// GET /api/movie/{tmdbID}
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	tmdbID, err := strconv.ParseInt(chi.URLParam(r, "tmdbID"), 10, 64)
	if err != nil || tmdbID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid movie id")
		return
	}

	details := h.service.GetMovieDetails(tmdbID)
	if details == nil {
		writeError(w, http.StatusNotFound, "not_found", "Movie not found")
		return
	}
	writeJSON(w, http.StatusOK, details)
}

// GET /api/movies
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	movies := h.service.ListMovies()
	writeJSON(w, http.StatusOK, MoviesResponse{
		Movies: movies,
		Count:  len(movies),
	})
}
