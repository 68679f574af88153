package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lbakerr/cinematch/internal/service"
)

type Handler struct {
	service       *service.Service
	maxUploadSize int64
}

func New(svc *service.Service, maxUploadSize int64) *Handler {
	return &Handler{service: svc, maxUploadSize: maxUploadSize}
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}
