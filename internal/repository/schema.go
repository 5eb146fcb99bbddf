package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		uid TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		user_name TEXT NOT NULL,
		user_handle TEXT NOT NULL,
		streak_count INT NOT NULL DEFAULT 0,
		completed_count INT NOT NULL DEFAULT 0,
		profile_picture TEXT NOT NULL DEFAULT '',
		completed_challenge_refs TEXT[] NOT NULL DEFAULT '{}',
		push_token TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS friends (
		id TEXT PRIMARY KEY,
		user_a_id TEXT NOT NULL,
		user_b_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS friends_user_a_idx ON friends (user_a_id)`,
	`CREATE INDEX IF NOT EXISTS friends_user_b_idx ON friends (user_b_id)`,
	`CREATE TABLE IF NOT EXISTS friend_requests (
		id TEXT PRIMARY KEY,
		from_uid TEXT NOT NULL,
		to_uid TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS friend_requests_to_idx ON friend_requests (to_uid)`,
	`CREATE TABLE IF NOT EXISTS challenges (
		id INT PRIMARY KEY,
		title TEXT NOT NULL,
		date TIMESTAMPTZ NOT NULL,
		image_link TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		post_id TEXT PRIMARY KEY,
		uid TEXT NOT NULL,
		title TEXT NOT NULL,
		caption TEXT NOT NULL DEFAULT '',
		date TIMESTAMPTZ NOT NULL,
		content_uri TEXT NOT NULL,
		likes TEXT[] NOT NULL DEFAULT '{}',
		user_name TEXT NOT NULL DEFAULT '',
		user_handle TEXT NOT NULL DEFAULT '',
		user_profile TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS posts_uid_idx ON posts (uid)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		uid TEXT NOT NULL,
		type TEXT NOT NULL,
		message TEXT NOT NULL,
		date TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS notifications_uid_idx ON notifications (uid)`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
