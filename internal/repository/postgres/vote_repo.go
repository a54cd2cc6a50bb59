package postgres

import (
	"context"
	"fmt"

	"photohunt-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// VoteRepo handles database operations for votes
type VoteRepo struct {
	db *pgxpool.Pool
}

// NewVoteRepo creates a new vote repository
func NewVoteRepo(db *pgxpool.Pool) *VoteRepo {
	return &VoteRepo{db: db}
}

// Create inserts a new vote and assigns its id
func (r *VoteRepo) Create(ctx context.Context, vote *models.Vote) error {
	query := `
		INSERT INTO votes (owner_user_id, photo_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, vote.OwnerUserID, vote.PhotoID, vote.CreatedAt).Scan(&vote.ID)
	if err != nil {
		return fmt.Errorf("failed to create vote: %w", err)
	}
	return nil
}

// CountByPhoto counts the votes cast on a photo
func (r *VoteRepo) CountByPhoto(ctx context.Context, photoID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM votes WHERE photo_id = $1`, photoID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}

// Exists reports whether a user has already voted on a photo
func (r *VoteRepo) Exists(ctx context.Context, ownerUserID, photoID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM votes WHERE owner_user_id = $1 AND photo_id = $2)`,
		ownerUserID, photoID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check vote existence: %w", err)
	}
	return exists, nil
}

// DeleteByPhoto removes all votes on a photo
func (r *VoteRepo) DeleteByPhoto(ctx context.Context, photoID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM votes WHERE photo_id = $1`, photoID)
	if err != nil {
		return fmt.Errorf("failed to delete votes: %w", err)
	}
	return nil
}
