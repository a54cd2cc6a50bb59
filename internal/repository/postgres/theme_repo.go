package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"photohunt-backend/internal/models"
	"photohunt-backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ThemeRepo handles database operations for themes
type ThemeRepo struct {
	db *pgxpool.Pool
}

// NewThemeRepo creates a new theme repository
func NewThemeRepo(db *pgxpool.Pool) *ThemeRepo {
	return &ThemeRepo{db: db}
}

// Create inserts a new theme and assigns its id
func (r *ThemeRepo) Create(ctx context.Context, theme *models.Theme) error {
	query := `
		INSERT INTO themes (display_name, start_at, preview_photo_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		theme.DisplayName, theme.StartAt, theme.PreviewPhotoID, theme.CreatedAt,
	).Scan(&theme.ID)
	if err != nil {
		return fmt.Errorf("failed to create theme: %w", err)
	}
	return nil
}

// GetByID retrieves a theme by ID
func (r *ThemeRepo) GetByID(ctx context.Context, id int64) (*models.Theme, error) {
	query := `
		SELECT id, display_name, start_at, preview_photo_id, created_at
		FROM themes
		WHERE id = $1
	`
	var theme models.Theme
	err := r.db.QueryRow(ctx, query, id).Scan(
		&theme.ID, &theme.DisplayName, &theme.StartAt, &theme.PreviewPhotoID, &theme.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("theme %d: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get theme: %w", err)
	}
	return &theme, nil
}

// List retrieves all themes, newest start first
func (r *ThemeRepo) List(ctx context.Context) ([]*models.Theme, error) {
	query := `
		SELECT id, display_name, start_at, preview_photo_id, created_at
		FROM themes
		ORDER BY start_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list themes: %w", err)
	}
	defer rows.Close()

	themes := []*models.Theme{}
	for rows.Next() {
		var theme models.Theme
		if err := rows.Scan(&theme.ID, &theme.DisplayName, &theme.StartAt, &theme.PreviewPhotoID, &theme.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan theme: %w", err)
		}
		themes = append(themes, &theme)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating themes: %w", err)
	}
	return themes, nil
}

// CurrentBetween returns the theme with the latest start inside
// [dayStart, dayEnd). Absence is not an error; it returns (nil, nil).
func (r *ThemeRepo) CurrentBetween(ctx context.Context, dayStart, dayEnd time.Time) (*models.Theme, error) {
	query := `
		SELECT id, display_name, start_at, preview_photo_id, created_at
		FROM themes
		WHERE start_at >= $1 AND start_at < $2
		ORDER BY start_at DESC
		LIMIT 1
	`
	var theme models.Theme
	err := r.db.QueryRow(ctx, query, dayStart, dayEnd).Scan(
		&theme.ID, &theme.DisplayName, &theme.StartAt, &theme.PreviewPhotoID, &theme.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current theme: %w", err)
	}
	return &theme, nil
}
