package handlers

import (
	"encoding/json"
	"net/http"

	"photohunt-backend/internal/middleware"
	"photohunt-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// VoteHandler handles vote-related HTTP requests
type VoteHandler struct {
	voteService *services.VoteService
}

// NewVoteHandler creates a new vote handler
func NewVoteHandler(voteService *services.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// CastVoteRequest carries the photo a vote targets
type CastVoteRequest struct {
	PhotoID int64 `json:"photo_id"`
}

// Cast handles PUT /api/v1/votes
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.PhotoID == 0 {
		respondError(w, "photo_id is required", http.StatusBadRequest)
		return
	}

	photo, err := h.voteService.Cast(ctx, userID, req.PhotoID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Int64("photo_id", req.PhotoID).Msg("Failed to cast vote")
		respondError(w, err.Error(), statusForError(err))
		return
	}

	log.Info().Int64("user_id", userID).Int64("photo_id", req.PhotoID).Msg("Vote cast")

	respondJSON(w, http.StatusOK, photo)
}
