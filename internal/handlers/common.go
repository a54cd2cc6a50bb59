package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"photohunt-backend/internal/repository"
	"photohunt-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// pathID parses an int64 id from a chi URL parameter
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// statusForError maps service errors onto HTTP status codes
func statusForError(err error) int {
	switch {
	case repository.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, services.ErrAlreadyVoted):
		return http.StatusConflict
	case errors.Is(err, services.ErrNoCurrentTheme),
		errors.Is(err, services.ErrPhotoNotReady):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
