package services

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/payload"
	"github.com/sideshow/apns2/token"
)

// PushService sends APNs notifications. A nil *PushService is a valid
// disabled service; all methods are no-ops on it.
type PushService struct {
	client *apns2.Client
	topic  string
}

// NewPushService creates a token-based APNs client
func NewPushService(keyFile, keyID, teamID, topic string, production bool) (*PushService, error) {
	authKey, err := token.AuthKeyFromFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load APNs auth key: %w", err)
	}

	tok := &token.Token{
		AuthKey: authKey,
		KeyID:   keyID,
		TeamID:  teamID,
	}

	client := apns2.NewTokenClient(tok)
	if production {
		client = client.Production()
	} else {
		client = client.Development()
	}

	return &PushService{client: client, topic: topic}, nil
}

// VoteReceived notifies a photo owner that their photo got a vote
func (s *PushService) VoteReceived(deviceToken, voterName string, photoID int64) {
	if s == nil || deviceToken == "" {
		return
	}

	alert := fmt.Sprintf("%s voted on your photo", voterName)
	if voterName == "" {
		alert = "Someone voted on your photo"
	}

	notification := &apns2.Notification{
		DeviceToken: deviceToken,
		Topic:       s.topic,
		Payload: payload.NewPayload().
			Alert(alert).
			Custom("photo_id", photoID).
			Sound("default"),
	}

	res, err := s.client.Push(notification)
	if err != nil {
		log.Error().Err(err).Int64("photo_id", photoID).Msg("Failed to send push")
		return
	}
	if !res.Sent() {
		log.Warn().
			Int("status", res.StatusCode).
			Str("reason", res.Reason).
			Int64("photo_id", photoID).
			Msg("Push rejected by APNs")
	}
}
