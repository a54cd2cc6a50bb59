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

// UserRepo handles database operations for users
type UserRepo struct {
	db *pgxpool.Pool
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new user and assigns its id
func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, google_user_id, google_display_name, google_public_profile_url,
			google_public_profile_photo_url, google_access_token, google_refresh_token,
			google_expires_in, google_expires_at, push_token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		user.Email, user.GoogleUserID, user.GoogleDisplayName, user.GooglePublicProfileURL,
		user.GooglePublicProfilePhotoURL, user.GoogleAccessToken, user.GoogleRefreshToken,
		user.GoogleExpiresIn, user.GoogleExpiresAt, user.PushToken, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := userSelect + ` WHERE id = $1`
	user, err := r.scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetByGoogleUserID retrieves a user by their external Google identifier
func (r *UserRepo) GetByGoogleUserID(ctx context.Context, googleUserID string) (*models.User, error) {
	query := userSelect + ` WHERE google_user_id = $1`
	user, err := r.scanUser(r.db.QueryRow(ctx, query, googleUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("google user %s: %w", googleUserID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by google id: %w", err)
	}
	return user, nil
}

// GetByIDs batch-loads users by id. Missing ids are omitted from the result.
func (r *UserRepo) GetByIDs(ctx context.Context, ids []int64) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}
	query := userSelect + ` WHERE id = ANY($1)`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to batch get users: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]*models.User, len(ids))
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		byID[user.ID] = user
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	// Preserve the caller's order, including duplicates.
	users := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := byID[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

// Update persists the mutable fields of a user
func (r *UserRepo) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET email = $1, google_display_name = $2, google_public_profile_url = $3,
			google_public_profile_photo_url = $4, google_access_token = $5,
			google_refresh_token = $6, google_expires_in = $7, google_expires_at = $8
		WHERE id = $9
	`
	result, err := r.db.Exec(ctx, query,
		user.Email, user.GoogleDisplayName, user.GooglePublicProfileURL,
		user.GooglePublicProfilePhotoURL, user.GoogleAccessToken, user.GoogleRefreshToken,
		user.GoogleExpiresIn, user.GoogleExpiresAt, user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", user.ID, repository.ErrNotFound)
	}
	return nil
}

// UpdatePushToken updates the push token for a user
func (r *UserRepo) UpdatePushToken(ctx context.Context, userID int64, pushToken *string) error {
	query := `UPDATE users SET push_token = $1 WHERE id = $2`
	result, err := r.db.Exec(ctx, query, pushToken, userID)
	if err != nil {
		return fmt.Errorf("failed to update push token: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", userID, repository.ErrNotFound)
	}
	return nil
}

const userSelect = `
	SELECT id, email, google_user_id, google_display_name, google_public_profile_url,
		google_public_profile_photo_url, google_access_token, google_refresh_token,
		google_expires_in, google_expires_at, push_token, created_at
	FROM users`

func (r *UserRepo) scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Email, &user.GoogleUserID, &user.GoogleDisplayName,
		&user.GooglePublicProfileURL, &user.GooglePublicProfilePhotoURL,
		&user.GoogleAccessToken, &user.GoogleRefreshToken,
		&user.GoogleExpiresIn, &user.GoogleExpiresAt, &user.PushToken, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
