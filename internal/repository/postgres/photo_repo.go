package postgres

import (
	"context"
	"errors"
	"fmt"

	"photohunt-backend/internal/models"
	"photohunt-backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PhotoRepo handles database operations for photos. Derived presentation
// fields (vote count, URLs, voted flag) are never stored here; only the
// columns below exist.
type PhotoRepo struct {
	db *pgxpool.Pool
}

// NewPhotoRepo creates a new photo repository
func NewPhotoRepo(db *pgxpool.Pool) *PhotoRepo {
	return &PhotoRepo{db: db}
}

const photoSelect = `
	SELECT id, owner_user_id, owner_display_name, owner_profile_url, owner_profile_photo,
		theme_id, theme_display_name, image_blob_key, uploaded, created_at
	FROM photos`

// Create inserts a new photo and assigns its id
func (r *PhotoRepo) Create(ctx context.Context, photo *models.Photo) error {
	query := `
		INSERT INTO photos (owner_user_id, owner_display_name, owner_profile_url, owner_profile_photo,
			theme_id, theme_display_name, image_blob_key, uploaded, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		photo.OwnerUserID, photo.OwnerDisplayName, photo.OwnerProfileURL, photo.OwnerProfilePhoto,
		photo.ThemeID, photo.ThemeDisplayName, photo.ImageBlobKey, photo.Uploaded, photo.CreatedAt,
	).Scan(&photo.ID)
	if err != nil {
		return fmt.Errorf("failed to create photo: %w", err)
	}
	return nil
}

// GetByID retrieves a photo by ID
func (r *PhotoRepo) GetByID(ctx context.Context, id int64) (*models.Photo, error) {
	photo, err := r.scanPhoto(r.db.QueryRow(ctx, photoSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("photo %d: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	return photo, nil
}

// ListByTheme retrieves uploaded photos for a theme, newest first
func (r *PhotoRepo) ListByTheme(ctx context.Context, themeID int64) ([]*models.Photo, error) {
	query := photoSelect + ` WHERE theme_id = $1 AND uploaded ORDER BY created_at DESC`
	return r.listPhotos(ctx, query, themeID)
}

// ListByOwner retrieves uploaded photos owned by a user, newest first
func (r *PhotoRepo) ListByOwner(ctx context.Context, ownerUserID int64) ([]*models.Photo, error) {
	query := photoSelect + ` WHERE owner_user_id = $1 AND uploaded ORDER BY created_at DESC`
	return r.listPhotos(ctx, query, ownerUserID)
}

// ListByOwners retrieves uploaded photos owned by any of the given users,
// newest first. An empty id list yields an empty result.
func (r *PhotoRepo) ListByOwners(ctx context.Context, ownerUserIDs []int64) ([]*models.Photo, error) {
	if len(ownerUserIDs) == 0 {
		return []*models.Photo{}, nil
	}
	query := photoSelect + ` WHERE owner_user_id = ANY($1) AND uploaded ORDER BY created_at DESC`
	return r.listPhotos(ctx, query, ownerUserIDs)
}

// MarkUploaded flips the uploaded flag once the image bytes have landed
func (r *PhotoRepo) MarkUploaded(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `UPDATE photos SET uploaded = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark photo uploaded: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("photo %d: %w", id, repository.ErrNotFound)
	}
	return nil
}

// Delete removes a photo by ID
func (r *PhotoRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("photo %d: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *PhotoRepo) listPhotos(ctx context.Context, query string, args ...any) ([]*models.Photo, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer rows.Close()

	photos := []*models.Photo{}
	for rows.Next() {
		photo, err := r.scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, photo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating photos: %w", err)
	}
	return photos, nil
}

func (r *PhotoRepo) scanPhoto(row pgx.Row) (*models.Photo, error) {
	var photo models.Photo
	err := row.Scan(
		&photo.ID, &photo.OwnerUserID, &photo.OwnerDisplayName, &photo.OwnerProfileURL,
		&photo.OwnerProfilePhoto, &photo.ThemeID, &photo.ThemeDisplayName,
		&photo.ImageBlobKey, &photo.Uploaded, &photo.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &photo, nil
}
