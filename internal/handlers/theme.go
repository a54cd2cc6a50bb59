package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"photohunt-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// ThemeHandler handles theme-related HTTP requests
type ThemeHandler struct {
	themeService *services.ThemeService
}

// NewThemeHandler creates a new theme handler
func NewThemeHandler(themeService *services.ThemeService) *ThemeHandler {
	return &ThemeHandler{themeService: themeService}
}

// List handles GET /api/v1/themes
func (h *ThemeHandler) List(w http.ResponseWriter, r *http.Request) {
	themes, err := h.themeService.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list themes")
		respondError(w, "Failed to list themes", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"themes": themes,
	})
}

// Current handles GET /api/v1/themes/current. No current theme is a valid
// state and answers 204, not an error.
func (h *ThemeHandler) Current(w http.ResponseWriter, r *http.Request) {
	theme, err := h.themeService.CurrentTheme(r.Context(), time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve current theme")
		respondError(w, "Failed to resolve current theme", http.StatusInternalServerError)
		return
	}
	if theme == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	respondJSON(w, http.StatusOK, theme)
}

// CreateThemeRequest carries a new theme
type CreateThemeRequest struct {
	DisplayName    string    `json:"display_name"`
	StartAt        time.Time `json:"start_at"`
	PreviewPhotoID int64     `json:"preview_photo_id"`
}

// Create handles POST /api/v1/themes
func (h *ThemeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.DisplayName == "" {
		respondError(w, "display_name is required", http.StatusBadRequest)
		return
	}
	if req.StartAt.IsZero() {
		respondError(w, "start_at is required", http.StatusBadRequest)
		return
	}

	theme, err := h.themeService.Create(r.Context(), req.DisplayName, req.StartAt, req.PreviewPhotoID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create theme")
		respondError(w, "Failed to create theme", http.StatusInternalServerError)
		return
	}

	log.Info().Int64("theme_id", theme.ID).Str("display_name", theme.DisplayName).Msg("Theme created")

	respondJSON(w, http.StatusCreated, theme)
}
