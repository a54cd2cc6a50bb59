package postgres

import (
	"context"
	"fmt"

	"photohunt-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EdgeRepo handles database operations for directed friend edges
type EdgeRepo struct {
	db *pgxpool.Pool
}

// NewEdgeRepo creates a new edge repository
func NewEdgeRepo(db *pgxpool.Pool) *EdgeRepo {
	return &EdgeRepo{db: db}
}

// Create inserts a new directed edge and assigns its id. Duplicate
// owner/friend pairs are allowed; the graph does not deduplicate.
func (r *EdgeRepo) Create(ctx context.Context, edge *models.FriendEdge) error {
	query := `
		INSERT INTO friend_edges (owner_user_id, friend_user_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, edge.OwnerUserID, edge.FriendUserID, edge.CreatedAt).Scan(&edge.ID)
	if err != nil {
		return fmt.Errorf("failed to create friend edge: %w", err)
	}
	return nil
}

// ListByOwner retrieves all edges owned by a user in insertion order
func (r *EdgeRepo) ListByOwner(ctx context.Context, ownerUserID int64) ([]*models.FriendEdge, error) {
	query := `
		SELECT id, owner_user_id, friend_user_id, created_at
		FROM friend_edges
		WHERE owner_user_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friend edges: %w", err)
	}
	defer rows.Close()

	edges := []*models.FriendEdge{}
	for rows.Next() {
		var edge models.FriendEdge
		if err := rows.Scan(&edge.ID, &edge.OwnerUserID, &edge.FriendUserID, &edge.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan friend edge: %w", err)
		}
		edges = append(edges, &edge)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating friend edges: %w", err)
	}
	return edges, nil
}

// ListOwnersOf retrieves the ids of users who have added friendUserID to
// their circle (edges pointing at friendUserID).
func (r *EdgeRepo) ListOwnersOf(ctx context.Context, friendUserID int64) ([]int64, error) {
	query := `
		SELECT DISTINCT owner_user_id
		FROM friend_edges
		WHERE friend_user_id = $1
	`
	rows, err := r.db.Query(ctx, query, friendUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list edge owners: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan edge owner: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating edge owners: %w", err)
	}
	return ids, nil
}

// DeleteByPair removes every edge from owner to friend
func (r *EdgeRepo) DeleteByPair(ctx context.Context, ownerUserID, friendUserID int64) error {
	query := `DELETE FROM friend_edges WHERE owner_user_id = $1 AND friend_user_id = $2`
	_, err := r.db.Exec(ctx, query, ownerUserID, friendUserID)
	if err != nil {
		return fmt.Errorf("failed to delete friend edges: %w", err)
	}
	return nil
}
