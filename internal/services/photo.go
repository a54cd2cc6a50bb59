package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"photohunt-backend/internal/models"
	"photohunt-backend/internal/repository"

	"github.com/google/uuid"
)

// ErrNoCurrentTheme is returned when a photo upload is requested while no
// theme is active for today.
var ErrNoCurrentTheme = errors.New("no current theme")

// ErrNotOwner is returned when a user tries to manage a photo they do not
// own.
var ErrNotOwner = errors.New("not the photo owner")

// Uploader issues pre-signed upload URLs for new image blobs.
type Uploader interface {
	UploadURL(ctx context.Context, blobKey, contentType string) (string, error)
}

// PhotoService handles photo submission and read-time materialization
type PhotoService struct {
	photoRepo repository.PhotoRepository
	voteRepo  repository.VoteRepository
	userRepo  repository.UserRepository
	themes    *ThemeService
	users     *UserService
	images    ImageURLProvider
	uploader  Uploader
	baseURL   string
	thumbSize int
}

// NewPhotoService creates a new photo service. baseURL and thumbSize feed
// the materializer and are injected so tests can vary them.
func NewPhotoService(
	photoRepo repository.PhotoRepository,
	voteRepo repository.VoteRepository,
	userRepo repository.UserRepository,
	themes *ThemeService,
	users *UserService,
	images ImageURLProvider,
	uploader Uploader,
	baseURL string,
	thumbSize int,
) *PhotoService {
	return &PhotoService{
		photoRepo: photoRepo,
		voteRepo:  voteRepo,
		userRepo:  userRepo,
		themes:    themes,
		users:     users,
		images:    images,
		uploader:  uploader,
		baseURL:   baseURL,
		thumbSize: thumbSize,
	}
}

// UploadResponse carries a pre-signed upload URL and the pending photo
// record it will fill.
type UploadResponse struct {
	UploadURL string        `json:"upload_url"`
	ExpiresIn int           `json:"expires_in"`
	Photo     *models.Photo `json:"photo"`
}

// RequestUpload creates a pending photo under today's theme and returns a
// pre-signed URL for the image bytes. Fails with ErrNoCurrentTheme when no
// theme is active.
func (s *PhotoService) RequestUpload(ctx context.Context, ownerUserID int64, contentType string) (*UploadResponse, error) {
	owner, err := s.userRepo.GetByID(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}

	theme, err := s.themes.CurrentTheme(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	if theme == nil {
		return nil, ErrNoCurrentTheme
	}

	blobKey := fmt.Sprintf("photos/%s.jpg", uuid.New().String())
	uploadURL, err := s.uploader.UploadURL(ctx, blobKey, contentType)
	if err != nil {
		return nil, err
	}

	photo := &models.Photo{
		OwnerUserID:       owner.ID,
		OwnerDisplayName:  owner.GoogleDisplayName,
		OwnerProfileURL:   owner.GooglePublicProfileURL,
		OwnerProfilePhoto: owner.GooglePublicProfilePhotoURL,
		ThemeID:           theme.ID,
		ThemeDisplayName:  theme.DisplayName,
		ImageBlobKey:      blobKey,
		CreatedAt:         time.Now(),
	}
	if err := s.photoRepo.Create(ctx, photo); err != nil {
		return nil, fmt.Errorf("failed to create photo record: %w", err)
	}

	if err := s.materialize(ctx, photo, ownerUserID); err != nil {
		return nil, err
	}

	return &UploadResponse{
		UploadURL: uploadURL,
		ExpiresIn: 300,
		Photo:     photo,
	}, nil
}

// ConfirmUpload marks a pending photo as uploaded once the bytes are in
// place
func (s *PhotoService) ConfirmUpload(ctx context.Context, ownerUserID, photoID int64) (*models.Photo, error) {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return nil, err
	}
	if photo.OwnerUserID != ownerUserID {
		return nil, ErrNotOwner
	}
	if err := s.photoRepo.MarkUploaded(ctx, photoID); err != nil {
		return nil, err
	}
	photo.Uploaded = true
	if err := s.materialize(ctx, photo, ownerUserID); err != nil {
		return nil, err
	}
	return photo, nil
}

// Get returns a single materialized photo for the given viewer
func (s *PhotoService) Get(ctx context.Context, photoID, viewerUserID int64) (*models.Photo, error) {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return nil, err
	}
	if err := s.materialize(ctx, photo, viewerUserID); err != nil {
		return nil, err
	}
	return photo, nil
}

// ListByTheme returns the materialized photo stream for a theme
func (s *PhotoService) ListByTheme(ctx context.Context, themeID, viewerUserID int64) ([]*models.Photo, error) {
	if _, err := s.themes.Get(ctx, themeID); err != nil {
		return nil, err
	}
	photos, err := s.photoRepo.ListByTheme(ctx, themeID)
	if err != nil {
		return nil, err
	}
	if err := s.materializeAll(ctx, photos, viewerUserID); err != nil {
		return nil, err
	}
	return photos, nil
}

// ListByOwner returns the materialized photo stream of a single user
func (s *PhotoService) ListByOwner(ctx context.Context, ownerUserID, viewerUserID int64) ([]*models.Photo, error) {
	photos, err := s.photoRepo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	if err := s.materializeAll(ctx, photos, viewerUserID); err != nil {
		return nil, err
	}
	return photos, nil
}

// ListByFriends returns the materialized photo stream of the viewer's
// friends
func (s *PhotoService) ListByFriends(ctx context.Context, viewerUserID int64) ([]*models.Photo, error) {
	friendIDs, err := s.users.FriendIDs(ctx, viewerUserID)
	if err != nil {
		return nil, err
	}
	photos, err := s.photoRepo.ListByOwners(ctx, friendIDs)
	if err != nil {
		return nil, err
	}
	if err := s.materializeAll(ctx, photos, viewerUserID); err != nil {
		return nil, err
	}
	return photos, nil
}

// Delete removes a photo and its votes. Only the owner may delete.
func (s *PhotoService) Delete(ctx context.Context, ownerUserID, photoID int64) error {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.OwnerUserID != ownerUserID {
		return ErrNotOwner
	}
	if err := s.voteRepo.DeleteByPhoto(ctx, photoID); err != nil {
		return err
	}
	return s.photoRepo.Delete(ctx, photoID)
}

// materialize fills the derived presentation fields of a photo: the vote
// count recomputed from the vote store, the per-viewer voted flag, image
// URLs and action URLs. Nothing it writes is ever persisted, and the count
// is never carried over from a previous load.
func (s *PhotoService) materialize(ctx context.Context, photo *models.Photo, viewerUserID int64) error {
	count, err := s.voteRepo.CountByPhoto(ctx, photo.ID)
	if err != nil {
		return fmt.Errorf("failed to count votes for photo %d: %w", photo.ID, err)
	}
	photo.NumVotes = count

	photo.Voted = false
	if viewerUserID != 0 {
		voted, err := s.voteRepo.Exists(ctx, viewerUserID, photo.ID)
		if err != nil {
			return fmt.Errorf("failed to check viewer vote on photo %d: %w", photo.ID, err)
		}
		photo.Voted = voted
	}

	photo.FullsizeURL = s.images.ServingURL(photo.ImageBlobKey, 0)
	photo.ThumbnailURL = s.images.ServingURL(photo.ImageBlobKey, s.thumbSize)
	photo.VoteCTAURL = fmt.Sprintf("%s/index.html?photoId=%d&action=VOTE", s.baseURL, photo.ID)
	photo.PhotoContentURL = fmt.Sprintf("%s/photo.html?photoId=%d", s.baseURL, photo.ID)
	return nil
}

func (s *PhotoService) materializeAll(ctx context.Context, photos []*models.Photo, viewerUserID int64) error {
	for _, photo := range photos {
		if err := s.materialize(ctx, photo, viewerUserID); err != nil {
			return err
		}
	}
	return nil
}
