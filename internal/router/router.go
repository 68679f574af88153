package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lbakerr/cinematch/internal/handler"
)

func Setup(h *handler.Handler) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Routes
	r.Post("/api/upload-csv", h.UploadCSV)
	r.Post("/api/add-movie", h.AddMovie)
	r.Get("/api/recommendations", h.GetRecommendations)
	r.Get("/api/movie/{tmdbID}", h.GetMovie)
	r.Get("/api/movies", h.ListMovies)
	r.Get("/health", healthCheck)

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
