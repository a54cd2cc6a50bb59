package services

import (
	"context"

	"photohunt-backend/internal/models"
	"photohunt-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// Notifier fans vote and upload events out to the photo owner and to the
// users who follow the actor. Everything here is best effort; a failed
// notification never fails the write that triggered it.
type Notifier struct {
	hub      *WSHub
	push     *PushService
	userRepo repository.UserRepository
	edgeRepo repository.EdgeRepository
}

// NewNotifier creates a new notifier. push may be nil when APNs is not
// configured.
func NewNotifier(hub *WSHub, push *PushService, userRepo repository.UserRepository,
	edgeRepo repository.EdgeRepository) *Notifier {
	return &Notifier{
		hub:      hub,
		push:     push,
		userRepo: userRepo,
		edgeRepo: edgeRepo,
	}
}

// VoteCast notifies the photo owner (websocket + push) and the owner's
// followers (websocket) that a vote landed.
func (n *Notifier) VoteCast(ctx context.Context, vote *models.Vote, photo *models.Photo) {
	voterName := ""
	if voter, err := n.userRepo.GetByID(ctx, vote.OwnerUserID); err == nil {
		voterName = voter.GoogleDisplayName
	}

	if owner, err := n.userRepo.GetByID(ctx, photo.OwnerUserID); err == nil && owner.PushToken != nil {
		n.push.VoteReceived(*owner.PushToken, voterName, photo.ID)
	}

	event := WSMessage{
		Type:    "vote_cast",
		PhotoID: photo.ID,
		UserID:  vote.OwnerUserID,
	}
	if n.hub.IsOnline(photo.OwnerUserID) {
		if err := n.hub.SendToUser(photo.OwnerUserID, event); err != nil {
			log.Debug().Err(err).Int64("user_id", photo.OwnerUserID).Msg("Owner notify failed")
		}
	}

	followers, err := n.edgeRepo.ListOwnersOf(ctx, photo.OwnerUserID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", photo.OwnerUserID).Msg("Failed to resolve followers")
		return
	}
	n.hub.Broadcast(followers, event)
}

// PhotoUploaded notifies followers of the photo owner that a new photo is
// live
func (n *Notifier) PhotoUploaded(ctx context.Context, photo *models.Photo) {
	followers, err := n.edgeRepo.ListOwnersOf(ctx, photo.OwnerUserID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", photo.OwnerUserID).Msg("Failed to resolve followers")
		return
	}
	n.hub.Broadcast(followers, WSMessage{
		Type:    "photo_uploaded",
		PhotoID: photo.ID,
		UserID:  photo.OwnerUserID,
		ThemeID: photo.ThemeID,
	})
}
