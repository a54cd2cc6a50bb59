package handlers

import (
	"encoding/json"
	"net/http"

	"photohunt-backend/internal/middleware"
	"photohunt-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// UserHandler handles account and friend-graph HTTP requests
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GoogleAuthRequest carries the OAuth authorization code from the client
type GoogleAuthRequest struct {
	Code string `json:"code"`
}

// GoogleAuth handles POST /api/v1/auth/google
func (h *UserHandler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req GoogleAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Code == "" {
		respondError(w, "code is required", http.StatusBadRequest)
		return
	}

	user, token, err := h.userService.LinkGoogleAccount(ctx, req.Code)
	if err != nil {
		log.Error().Err(err).Msg("Failed to link google account")
		respondError(w, "Failed to link account", http.StatusUnauthorized)
		return
	}

	log.Info().Int64("user_id", user.ID).Msg("User signed in")

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Me handles GET /api/v1/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	user, err := h.userService.Get(ctx, userID)
	if err != nil {
		respondError(w, "Failed to load user", statusForError(err))
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// PushTokenRequest carries a device token registration
type PushTokenRequest struct {
	PushToken *string `json:"push_token"`
}

// UpdatePushToken handles PUT /api/v1/users/me/push-token
func (h *UserHandler) UpdatePushToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req PushTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.userService.UpdatePushToken(ctx, userID, req.PushToken); err != nil {
		respondError(w, "Failed to update push token", statusForError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListFriends handles GET /api/v1/users/me/friends
func (h *UserHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	friends, err := h.userService.Friends(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to list friends")
		respondError(w, "Failed to list friends", statusForError(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"friends": friends,
	})
}

// AddFriend handles PUT /api/v1/users/me/friends/{userID}
func (h *UserHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	friendID, err := pathID(r, "userID")
	if err != nil {
		respondError(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	edge, err := h.userService.AddFriend(ctx, userID, friendID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Int64("friend_id", friendID).Msg("Failed to add friend")
		respondError(w, "Failed to add friend", statusForError(err))
		return
	}

	log.Info().Int64("user_id", userID).Int64("friend_id", friendID).Msg("Friend added")

	respondJSON(w, http.StatusOK, edge)
}

// RemoveFriend handles DELETE /api/v1/users/me/friends/{userID}
func (h *UserHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	friendID, err := pathID(r, "userID")
	if err != nil {
		respondError(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.userService.RemoveFriend(ctx, userID, friendID); err != nil {
		respondError(w, "Failed to remove friend", statusForError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
