package services

import (
	"context"
	"fmt"
	"time"

	"photohunt-backend/internal/models"
	"photohunt-backend/internal/repository"
)

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, repository.ErrNotFound)
	}
	return user, nil
}

func (f *fakeUserRepo) GetByGoogleUserID(_ context.Context, googleUserID string) (*models.User, error) {
	for _, user := range f.users {
		if user.GoogleUserID == googleUserID {
			return user, nil
		}
	}
	return nil, fmt.Errorf("google user %s: %w", googleUserID, repository.ErrNotFound)
}

func (f *fakeUserRepo) GetByIDs(_ context.Context, ids []int64) ([]*models.User, error) {
	users := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := f.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return fmt.Errorf("user %d: %w", user.ID, repository.ErrNotFound)
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdatePushToken(_ context.Context, userID int64, pushToken *string) error {
	user, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("user %d: %w", userID, repository.ErrNotFound)
	}
	user.PushToken = pushToken
	return nil
}

func (f *fakeUserRepo) delete(id int64) {
	delete(f.users, id)
}

type fakeEdgeRepo struct {
	edges  []*models.FriendEdge
	nextID int64
}

func newFakeEdgeRepo() *fakeEdgeRepo {
	return &fakeEdgeRepo{}
}

func (f *fakeEdgeRepo) Create(_ context.Context, edge *models.FriendEdge) error {
	f.nextID++
	edge.ID = f.nextID
	f.edges = append(f.edges, edge)
	return nil
}

func (f *fakeEdgeRepo) ListByOwner(_ context.Context, ownerUserID int64) ([]*models.FriendEdge, error) {
	edges := []*models.FriendEdge{}
	for _, edge := range f.edges {
		if edge.OwnerUserID == ownerUserID {
			edges = append(edges, edge)
		}
	}
	return edges, nil
}

func (f *fakeEdgeRepo) ListOwnersOf(_ context.Context, friendUserID int64) ([]int64, error) {
	seen := map[int64]bool{}
	ids := []int64{}
	for _, edge := range f.edges {
		if edge.FriendUserID == friendUserID && !seen[edge.OwnerUserID] {
			seen[edge.OwnerUserID] = true
			ids = append(ids, edge.OwnerUserID)
		}
	}
	return ids, nil
}

func (f *fakeEdgeRepo) DeleteByPair(_ context.Context, ownerUserID, friendUserID int64) error {
	kept := f.edges[:0]
	for _, edge := range f.edges {
		if edge.OwnerUserID != ownerUserID || edge.FriendUserID != friendUserID {
			kept = append(kept, edge)
		}
	}
	f.edges = kept
	return nil
}

type fakeThemeRepo struct {
	themes []*models.Theme
	nextID int64
}

func newFakeThemeRepo() *fakeThemeRepo {
	return &fakeThemeRepo{}
}

func (f *fakeThemeRepo) Create(_ context.Context, theme *models.Theme) error {
	f.nextID++
	theme.ID = f.nextID
	f.themes = append(f.themes, theme)
	return nil
}

func (f *fakeThemeRepo) GetByID(_ context.Context, id int64) (*models.Theme, error) {
	for _, theme := range f.themes {
		if theme.ID == id {
			return theme, nil
		}
	}
	return nil, fmt.Errorf("theme %d: %w", id, repository.ErrNotFound)
}

func (f *fakeThemeRepo) List(_ context.Context) ([]*models.Theme, error) {
	return f.themes, nil
}

func (f *fakeThemeRepo) CurrentBetween(_ context.Context, dayStart, dayEnd time.Time) (*models.Theme, error) {
	var current *models.Theme
	for _, theme := range f.themes {
		if theme.StartAt.Before(dayStart) || !theme.StartAt.Before(dayEnd) {
			continue
		}
		if current == nil || theme.StartAt.After(current.StartAt) {
			current = theme
		}
	}
	return current, nil
}

type fakePhotoRepo struct {
	photos map[int64]*models.Photo
	order  []int64
	nextID int64
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{photos: make(map[int64]*models.Photo)}
}

func (f *fakePhotoRepo) Create(_ context.Context, photo *models.Photo) error {
	f.nextID++
	photo.ID = f.nextID
	f.photos[photo.ID] = photo
	f.order = append(f.order, photo.ID)
	return nil
}

func (f *fakePhotoRepo) GetByID(_ context.Context, id int64) (*models.Photo, error) {
	photo, ok := f.photos[id]
	if !ok {
		return nil, fmt.Errorf("photo %d: %w", id, repository.ErrNotFound)
	}
	return photo, nil
}

func (f *fakePhotoRepo) list(match func(*models.Photo) bool) []*models.Photo {
	photos := []*models.Photo{}
	for _, id := range f.order {
		photo, ok := f.photos[id]
		if ok && photo.Uploaded && match(photo) {
			photos = append(photos, photo)
		}
	}
	return photos
}

func (f *fakePhotoRepo) ListByTheme(_ context.Context, themeID int64) ([]*models.Photo, error) {
	return f.list(func(p *models.Photo) bool { return p.ThemeID == themeID }), nil
}

func (f *fakePhotoRepo) ListByOwner(_ context.Context, ownerUserID int64) ([]*models.Photo, error) {
	return f.list(func(p *models.Photo) bool { return p.OwnerUserID == ownerUserID }), nil
}

func (f *fakePhotoRepo) ListByOwners(_ context.Context, ownerUserIDs []int64) ([]*models.Photo, error) {
	owners := map[int64]bool{}
	for _, id := range ownerUserIDs {
		owners[id] = true
	}
	return f.list(func(p *models.Photo) bool { return owners[p.OwnerUserID] }), nil
}

func (f *fakePhotoRepo) MarkUploaded(_ context.Context, id int64) error {
	photo, ok := f.photos[id]
	if !ok {
		return fmt.Errorf("photo %d: %w", id, repository.ErrNotFound)
	}
	photo.Uploaded = true
	return nil
}

func (f *fakePhotoRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.photos[id]; !ok {
		return fmt.Errorf("photo %d: %w", id, repository.ErrNotFound)
	}
	delete(f.photos, id)
	return nil
}

type fakeVoteRepo struct {
	votes  []*models.Vote
	nextID int64
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{}
}

func (f *fakeVoteRepo) Create(_ context.Context, vote *models.Vote) error {
	f.nextID++
	vote.ID = f.nextID
	f.votes = append(f.votes, vote)
	return nil
}

func (f *fakeVoteRepo) CountByPhoto(_ context.Context, photoID int64) (int, error) {
	count := 0
	for _, vote := range f.votes {
		if vote.PhotoID == photoID {
			count++
		}
	}
	return count, nil
}

func (f *fakeVoteRepo) Exists(_ context.Context, ownerUserID, photoID int64) (bool, error) {
	for _, vote := range f.votes {
		if vote.OwnerUserID == ownerUserID && vote.PhotoID == photoID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeVoteRepo) DeleteByPhoto(_ context.Context, photoID int64) error {
	kept := f.votes[:0]
	for _, vote := range f.votes {
		if vote.PhotoID != photoID {
			kept = append(kept, vote)
		}
	}
	f.votes = kept
	return nil
}

type fakeImages struct{}

func (fakeImages) ServingURL(blobKey string, size int) string {
	if size > 0 {
		return fmt.Sprintf("https://img.test/%s?size=%d", blobKey, size)
	}
	return fmt.Sprintf("https://img.test/%s", blobKey)
}

type fakeUploader struct{}

func (fakeUploader) UploadURL(_ context.Context, blobKey, _ string) (string, error) {
	return "https://upload.test/" + blobKey, nil
}
