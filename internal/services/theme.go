package services

import (
	"context"
	"fmt"
	"time"

	"photohunt-backend/internal/models"
	"photohunt-backend/internal/repository"
)

// ThemeService handles theme-related business logic
type ThemeService struct {
	themeRepo repository.ThemeRepository
}

// NewThemeService creates a new theme service
func NewThemeService(themeRepo repository.ThemeRepository) *ThemeService {
	return &ThemeService{themeRepo: themeRepo}
}

// dayBounds returns exact local midnight and the following midnight for the
// day containing now. Sub-second fields are zeroed so the window is
// deterministic.
func dayBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.Add(24 * time.Hour)
}

// CurrentTheme returns the single theme active for the day containing now:
// the one with the latest start inside the day's window. There cannot be
// two current themes; if several start the same day the latest start wins.
// No qualifying theme is a valid state and yields (nil, nil).
func (s *ThemeService) CurrentTheme(ctx context.Context, now time.Time) (*models.Theme, error) {
	dayStart, dayEnd := dayBounds(now)
	theme, err := s.themeRepo.CurrentBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current theme: %w", err)
	}
	return theme, nil
}

// Create schedules a new theme
func (s *ThemeService) Create(ctx context.Context, displayName string, startAt time.Time, previewPhotoID int64) (*models.Theme, error) {
	if displayName == "" {
		return nil, fmt.Errorf("display name is required")
	}
	theme := &models.Theme{
		DisplayName:    displayName,
		StartAt:        startAt,
		PreviewPhotoID: previewPhotoID,
		CreatedAt:      time.Now(),
	}
	if err := s.themeRepo.Create(ctx, theme); err != nil {
		return nil, fmt.Errorf("failed to create theme: %w", err)
	}
	return theme, nil
}

// List returns all themes, newest start first
func (s *ThemeService) List(ctx context.Context) ([]*models.Theme, error) {
	return s.themeRepo.List(ctx)
}

// Get returns a theme by id
func (s *ThemeService) Get(ctx context.Context, id int64) (*models.Theme, error) {
	return s.themeRepo.GetByID(ctx, id)
}
