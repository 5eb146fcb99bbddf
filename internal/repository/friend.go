package repository

import (
	"context"
	"fmt"

	"dailydare-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// FriendRepository handles database operations for friend relations and
// friend requests
type FriendRepository struct {
	db *pgxpool.Pool
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *pgxpool.Pool) *FriendRepository {
	return &FriendRepository{db: db}
}

// CreateRelation inserts a friend relation under its canonical pair key.
// Re-inserting an existing pair is a no-op, which makes request acceptance
// idempotent with respect to the social graph.
func (r *FriendRepository) CreateRelation(ctx context.Context, rel *models.FriendRelation) error {
	query := `
		INSERT INTO friends (id, user_a_id, user_b_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, rel.ID, rel.UserAID, rel.UserBID, rel.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create friend relation: %w", err)
	}
	return nil
}

// DeleteRelation deletes a relation by its canonical pair key
func (r *FriendRepository) DeleteRelation(ctx context.Context, id string) error {
	query := `DELETE FROM friends WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete friend relation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// RelationExists checks whether a relation exists for a canonical pair key
func (r *FriendRepository) RelationExists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM friends WHERE id = $1)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check friend relation: %w", err)
	}
	return exists, nil
}

// ListRelations retrieves all relations containing the given uid
func (r *FriendRepository) ListRelations(ctx context.Context, uid string) ([]models.FriendRelation, error) {
	query := `
		SELECT id, user_a_id, user_b_id, created_at
		FROM friends
		WHERE user_a_id = $1 OR user_b_id = $1
	`
	rows, err := r.db.Query(ctx, query, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list friend relations: %w", err)
	}
	defer rows.Close()

	var relations []models.FriendRelation
	for rows.Next() {
		var rel models.FriendRelation
		if err := rows.Scan(&rel.ID, &rel.UserAID, &rel.UserBID, &rel.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan friend relation: %w", err)
		}
		relations = append(relations, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating friend relations: %w", err)
	}
	return relations, nil
}

// CreateRequest upserts a friend request under its directional key.
// Re-sending after a decline recreates the same document.
func (r *FriendRepository) CreateRequest(ctx context.Context, req *models.FriendRequest) error {
	query := `
		INSERT INTO friend_requests (id, from_uid, to_uid, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET created_at = EXCLUDED.created_at
	`
	_, err := r.db.Exec(ctx, query, req.ID, req.From, req.To, req.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create friend request: %w", err)
	}
	return nil
}

// DeleteRequest deletes a friend request by key, reporting whether a row
// actually existed.
func (r *FriendRepository) DeleteRequest(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM friend_requests WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete friend request: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// ListIncomingRequests retrieves requests addressed to the given uid
func (r *FriendRepository) ListIncomingRequests(ctx context.Context, uid string) ([]models.FriendRequest, error) {
	query := `
		SELECT id, from_uid, to_uid, created_at
		FROM friend_requests
		WHERE to_uid = $1
	`
	rows, err := r.db.Query(ctx, query, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list friend requests: %w", err)
	}
	defer rows.Close()

	var requests []models.FriendRequest
	for rows.Next() {
		var req models.FriendRequest
		if err := rows.Scan(&req.ID, &req.From, &req.To, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan friend request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating friend requests: %w", err)
	}
	return requests, nil
}
