package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbakerr/cinematch/internal/engine"
	"github.com/lbakerr/cinematch/internal/handler"
	"github.com/lbakerr/cinematch/internal/importer"
	"github.com/lbakerr/cinematch/internal/library"
	"github.com/lbakerr/cinematch/internal/service"
	"github.com/lbakerr/cinematch/internal/tmdb"
)

func newTestRouter() http.Handler {
	client := tmdb.New(tmdb.Config{
		APIKey:     "test-key",
		BaseURL:    "http://127.0.0.1:0",
		MaxRetries: 1,
	}, zerolog.Nop())

	lib := library.New()
	eng := engine.New(client, 10, zerolog.Nop())
	imp := importer.New(client, 1, zerolog.Nop())
	svc := service.New(lib, eng, client, imp, nil, zerolog.Nop())
	return Setup(handler.New(svc, 1<<20))
}

func TestHealthEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRecommendationsRouteRequiresData(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recommendations", nil))

	// Empty collection: the boundary maps the contract violation to 400.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient_data")
}

func TestUnknownRouteIs404(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
