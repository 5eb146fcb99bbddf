package repository

import (
	"context"
	"errors"
	"fmt"

	"dailydare-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChallengeRepository handles database operations for challenges
type ChallengeRepository struct {
	db *pgxpool.Pool
}

// NewChallengeRepository creates a new challenge repository
func NewChallengeRepository(db *pgxpool.Pool) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

// GetByID retrieves a challenge by its YYYYMMDD id
func (r *ChallengeRepository) GetByID(ctx context.Context, id int) (*models.Challenge, error) {
	query := `
		SELECT id, title, date, image_link, description
		FROM challenges
		WHERE id = $1
	`
	var c models.Challenge
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Title, &c.Date, &c.ImageLink, &c.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	return &c, nil
}

// GetByRef retrieves a challenge by its "Challenge/YYYYMMDD" reference
func (r *ChallengeRepository) GetByRef(ctx context.Context, ref string) (*models.Challenge, error) {
	id, err := models.ChallengeIDFromRef(ref)
	if err != nil {
		return nil, models.ErrNotFound
	}
	return r.GetByID(ctx, id)
}
