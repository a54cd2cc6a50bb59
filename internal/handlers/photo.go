package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"photohunt-backend/internal/middleware"
	"photohunt-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// PhotoHandler handles photo-related HTTP requests
type PhotoHandler struct {
	photoService *services.PhotoService
	notifier     *services.Notifier
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(photoService *services.PhotoService, notifier *services.Notifier) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
		notifier:     notifier,
	}
}

// UploadRequest asks for a pre-signed upload URL
type UploadRequest struct {
	ContentType string `json:"content_type"`
}

// Upload handles POST /api/v1/photos/upload
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ContentType == "" {
		req.ContentType = "image/jpeg"
	}

	response, err := h.photoService.RequestUpload(ctx, userID, req.ContentType)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to generate upload URL")
		respondError(w, err.Error(), statusForError(err))
		return
	}

	log.Info().
		Int64("user_id", userID).
		Int64("photo_id", response.Photo.ID).
		Msg("Upload URL generated")

	respondJSON(w, http.StatusOK, response)
}

// Confirm handles POST /api/v1/photos/{photoID}/confirm
func (h *PhotoHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	photoID, err := pathID(r, "photoID")
	if err != nil {
		respondError(w, "Invalid photo id", http.StatusBadRequest)
		return
	}

	photo, err := h.photoService.ConfirmUpload(ctx, userID, photoID)
	if err != nil {
		log.Error().Err(err).Int64("photo_id", photoID).Msg("Failed to confirm upload")
		respondError(w, "Failed to confirm upload", statusForError(err))
		return
	}

	h.notifier.PhotoUploaded(ctx, photo)

	respondJSON(w, http.StatusOK, photo)
}

// Get handles GET /api/v1/photos/{photoID}
func (h *PhotoHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	photoID, err := pathID(r, "photoID")
	if err != nil {
		respondError(w, "Invalid photo id", http.StatusBadRequest)
		return
	}

	photo, err := h.photoService.Get(ctx, photoID, userID)
	if err != nil {
		respondError(w, "Failed to get photo", statusForError(err))
		return
	}

	respondJSON(w, http.StatusOK, photo)
}

// List handles GET /api/v1/photos. Exactly one stream selector applies:
// theme_id, owner_id, or friends=true; with no selector the viewer's own
// stream is returned.
func (h *PhotoHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var (
		photos interface{}
		err    error
	)

	query := r.URL.Query()
	switch {
	case query.Get("theme_id") != "":
		var themeID int64
		themeID, err = strconv.ParseInt(query.Get("theme_id"), 10, 64)
		if err != nil {
			respondError(w, "Invalid theme_id", http.StatusBadRequest)
			return
		}
		photos, err = h.photoService.ListByTheme(ctx, themeID, userID)
	case query.Get("owner_id") != "":
		var ownerID int64
		ownerID, err = strconv.ParseInt(query.Get("owner_id"), 10, 64)
		if err != nil {
			respondError(w, "Invalid owner_id", http.StatusBadRequest)
			return
		}
		photos, err = h.photoService.ListByOwner(ctx, ownerID, userID)
	case query.Get("friends") == "true":
		photos, err = h.photoService.ListByFriends(ctx, userID)
	default:
		photos, err = h.photoService.ListByOwner(ctx, userID, userID)
	}

	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to list photos")
		respondError(w, "Failed to list photos", statusForError(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"photos": photos,
	})
}

// Delete handles DELETE /api/v1/photos/{photoID}
func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	photoID, err := pathID(r, "photoID")
	if err != nil {
		respondError(w, "Invalid photo id", http.StatusBadRequest)
		return
	}

	if err := h.photoService.Delete(ctx, userID, photoID); err != nil {
		respondError(w, "Failed to delete photo", statusForError(err))
		return
	}

	log.Info().Int64("user_id", userID).Int64("photo_id", photoID).Msg("Photo deleted")

	w.WriteHeader(http.StatusNoContent)
}
