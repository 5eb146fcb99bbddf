package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dailydare-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `uid, email, password_hash, user_name, user_handle, streak_count,
		completed_count, profile_picture, completed_challenge_refs, push_token, created_at`

// UserRepository handles database operations for user profiles
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*models.UserProfile, error) {
	var u models.UserProfile
	err := row.Scan(
		&u.UID, &u.Email, &u.PasswordHash, &u.UserName, &u.UserHandle,
		&u.StreakCount, &u.CompletedCount, &u.ProfilePicture,
		&u.CompletedChallengeRefs, &u.PushToken, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

// Create creates a new user profile
func (r *UserRepository) Create(ctx context.Context, user *models.UserProfile) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.Exec(ctx, query,
		user.UID, user.Email, user.PasswordHash, user.UserName, user.UserHandle,
		user.StreakCount, user.CompletedCount, user.ProfilePicture,
		user.CompletedChallengeRefs, user.PushToken, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUID retrieves a user by uid
func (r *UserRepository) GetByUID(ctx context.Context, uid string) (*models.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	return scanUser(r.db.QueryRow(ctx, query, uid))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// UpdateDisplay overwrites the display fields only; counts and challenge
// history are untouched.
func (r *UserRepository) UpdateDisplay(ctx context.Context, uid, userName, userHandle, profilePicture string) error {
	query := `
		UPDATE users
		SET user_name = $1, user_handle = $2, profile_picture = $3
		WHERE uid = $4
	`
	result, err := r.db.Exec(ctx, query, userName, userHandle, profilePicture, uid)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ApplyPostCompletion records a completed challenge in one statement:
// bumps the completed counter, appends the challenge ref and sets the new
// streak value. Re-applying a ref that is already recorded is a no-op.
func (r *UserRepository) ApplyPostCompletion(ctx context.Context, uid, challengeRef string, streak int) error {
	query := `
		UPDATE users
		SET completed_count = completed_count + 1,
		    completed_challenge_refs = array_append(completed_challenge_refs, $1),
		    streak_count = $2
		WHERE uid = $3 AND NOT ($1 = ANY(completed_challenge_refs))
	`
	result, err := r.db.Exec(ctx, query, challengeRef, streak, uid)
	if err != nil {
		return fmt.Errorf("failed to apply post completion: %w", err)
	}
	if result.RowsAffected() == 0 {
		// The guard filters both a missing user and an already-recorded ref;
		// only the former is an error.
		var recorded bool
		err := r.db.QueryRow(ctx,
			`SELECT $1 = ANY(completed_challenge_refs) FROM users WHERE uid = $2`,
			challengeRef, uid,
		).Scan(&recorded)
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to apply post completion: %w", err)
		}
	}
	return nil
}

// UpdatePushToken updates the APNs device token for a user
func (r *UserRepository) UpdatePushToken(ctx context.Context, uid string, pushToken *string) error {
	query := `UPDATE users SET push_token = $1 WHERE uid = $2`
	_, err := r.db.Exec(ctx, query, pushToken, uid)
	if err != nil {
		return fmt.Errorf("failed to update push token: %w", err)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters so user input only ever
// matches literally.
func escapeLike(q string) string {
	return likeEscaper.Replace(q)
}

// Search finds users whose name or handle starts with the query string,
// deduplicated by uid.
func (r *UserRepository) Search(ctx context.Context, q string, limit int) ([]models.FriendSummary, error) {
	query := `
		SELECT uid, user_name, user_handle, profile_picture, streak_count
		FROM users
		WHERE user_name LIKE $1 || '%' OR user_handle LIKE $1 || '%'
		ORDER BY user_name
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, escapeLike(q), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	var results []models.FriendSummary
	for rows.Next() {
		var s models.FriendSummary
		if err := rows.Scan(&s.UID, &s.UserName, &s.UserHandle, &s.ProfilePicture, &s.StreakCount); err != nil {
			return nil, fmt.Errorf("failed to scan user summary: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return results, nil
}
