package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"photohunt-backend/internal/models"
	"photohunt-backend/internal/repository"
)

// ErrAlreadyVoted is returned when a user casts a second vote on the same
// photo.
var ErrAlreadyVoted = errors.New("already voted on this photo")

// ErrPhotoNotReady is returned when a vote targets a photo whose upload has
// not completed.
var ErrPhotoNotReady = errors.New("photo upload not completed")

// VoteNotifier is told about landed votes so it can fan out pushes and
// live events. Delivery is best effort.
type VoteNotifier interface {
	VoteCast(ctx context.Context, vote *models.Vote, photo *models.Photo)
}

// VoteService is the writing boundary for ballots. The Vote entity itself
// carries no uniqueness rule; this service enforces one vote per user per
// photo with a read-before-write check. Two racing casts can both pass the
// check, which the unique index on votes(owner_user_id, photo_id) catches.
type VoteService struct {
	voteRepo  repository.VoteRepository
	photoRepo repository.PhotoRepository
	photos    *PhotoService
	notifier  VoteNotifier
}

// NewVoteService creates a new vote service
func NewVoteService(voteRepo repository.VoteRepository, photoRepo repository.PhotoRepository,
	photos *PhotoService, notifier VoteNotifier) *VoteService {
	return &VoteService{
		voteRepo:  voteRepo,
		photoRepo: photoRepo,
		photos:    photos,
		notifier:  notifier,
	}
}

// Cast records a vote by ownerUserID on photoID and returns the photo
// rematerialized with the new count.
func (s *VoteService) Cast(ctx context.Context, ownerUserID, photoID int64) (*models.Photo, error) {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return nil, err
	}
	if !photo.Uploaded {
		return nil, ErrPhotoNotReady
	}

	voted, err := s.voteRepo.Exists(ctx, ownerUserID, photoID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing vote: %w", err)
	}
	if voted {
		return nil, ErrAlreadyVoted
	}

	vote := &models.Vote{
		OwnerUserID: ownerUserID,
		PhotoID:     photoID,
		CreatedAt:   time.Now(),
	}
	if err := s.voteRepo.Create(ctx, vote); err != nil {
		return nil, fmt.Errorf("failed to create vote: %w", err)
	}

	if s.notifier != nil {
		s.notifier.VoteCast(ctx, vote, photo)
	}

	return s.photos.Get(ctx, photoID, ownerUserID)
}
