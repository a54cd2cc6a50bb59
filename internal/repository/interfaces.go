package repository

import (
	"context"
	"errors"
	"time"

	"photohunt-backend/internal/models"
)

// ErrNotFound is returned when a lookup by identifier matches nothing.
// Callers decide whether absence is recoverable.
var ErrNotFound = errors.New("not found")

// IsNotFound reports whether err wraps ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByGoogleUserID(ctx context.Context, googleUserID string) (*models.User, error)
	// GetByIDs batch-loads users. Ids that no longer resolve are silently
	// omitted from the result.
	GetByIDs(ctx context.Context, ids []int64) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePushToken(ctx context.Context, userID int64, pushToken *string) error
}

type EdgeRepository interface {
	Create(ctx context.Context, edge *models.FriendEdge) error
	// ListByOwner returns edges in storage order. Duplicates are not
	// collapsed.
	ListByOwner(ctx context.Context, ownerUserID int64) ([]*models.FriendEdge, error)
	// ListOwnersOf returns the ids of users who hold an edge pointing at
	// friendUserID (the reverse direction).
	ListOwnersOf(ctx context.Context, friendUserID int64) ([]int64, error)
	DeleteByPair(ctx context.Context, ownerUserID, friendUserID int64) error
}

type ThemeRepository interface {
	Create(ctx context.Context, theme *models.Theme) error
	GetByID(ctx context.Context, id int64) (*models.Theme, error)
	List(ctx context.Context) ([]*models.Theme, error)
	// CurrentBetween returns the theme with the latest start inside
	// [dayStart, dayEnd), or (nil, nil) when none qualifies.
	CurrentBetween(ctx context.Context, dayStart, dayEnd time.Time) (*models.Theme, error)
}

type PhotoRepository interface {
	Create(ctx context.Context, photo *models.Photo) error
	GetByID(ctx context.Context, id int64) (*models.Photo, error)
	ListByTheme(ctx context.Context, themeID int64) ([]*models.Photo, error)
	ListByOwner(ctx context.Context, ownerUserID int64) ([]*models.Photo, error)
	ListByOwners(ctx context.Context, ownerUserIDs []int64) ([]*models.Photo, error)
	MarkUploaded(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type VoteRepository interface {
	Create(ctx context.Context, vote *models.Vote) error
	CountByPhoto(ctx context.Context, photoID int64) (int, error)
	Exists(ctx context.Context, ownerUserID, photoID int64) (bool, error)
	DeleteByPhoto(ctx context.Context, photoID int64) error
}
