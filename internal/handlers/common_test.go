package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"photohunt-backend/internal/models"
	"photohunt-backend/internal/repository"
	"photohunt-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusForError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("theme 3: %w", repository.ErrNotFound), http.StatusNotFound},
		{services.ErrNotOwner, http.StatusForbidden},
		{services.ErrAlreadyVoted, http.StatusConflict},
		{services.ErrNoCurrentTheme, http.StatusUnprocessableEntity},
		{services.ErrPhotoNotReady, http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusForError(tc.err), "error: %v", tc.err)
	}
}

func TestPathID(t *testing.T) {
	t.Parallel()

	router := chi.NewRouter()
	var gotID int64
	var gotErr error
	router.Get("/photos/{id}", func(w http.ResponseWriter, r *http.Request) {
		gotID, gotErr = pathID(r, "id")
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/photos/42", nil))
	require.NoError(t, gotErr)
	assert.Equal(t, int64(42), gotID)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/photos/abc", nil))
	assert.Error(t, gotErr)
}

type stubThemeRepo struct {
	current *models.Theme
}

func (s *stubThemeRepo) Create(context.Context, *models.Theme) error { return nil }
func (s *stubThemeRepo) GetByID(context.Context, int64) (*models.Theme, error) {
	return nil, repository.ErrNotFound
}
func (s *stubThemeRepo) List(context.Context) ([]*models.Theme, error) { return nil, nil }
func (s *stubThemeRepo) CurrentBetween(context.Context, time.Time, time.Time) (*models.Theme, error) {
	return s.current, nil
}

func TestCurrentTheme_NoContentWhenNoneActive(t *testing.T) {
	t.Parallel()

	handler := NewThemeHandler(services.NewThemeService(&stubThemeRepo{}))

	rec := httptest.NewRecorder()
	handler.Current(rec, httptest.NewRequest(http.MethodGet, "/themes/current", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestCurrentTheme_ReturnsActiveTheme(t *testing.T) {
	t.Parallel()

	repo := &stubThemeRepo{current: &models.Theme{ID: 3, DisplayName: "reflections"}}
	handler := NewThemeHandler(services.NewThemeService(repo))

	rec := httptest.NewRecorder()
	handler.Current(rec, httptest.NewRequest(http.MethodGet, "/themes/current", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var theme models.Theme
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&theme))
	assert.Equal(t, int64(3), theme.ID)
	assert.Equal(t, "reflections", theme.DisplayName)
}
