package repository

import (
	"context"
	"errors"
	"fmt"

	"dailydare-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postColumns = `post_id, uid, title, caption, date, content_uri, likes,
		user_name, user_handle, user_profile`

// PostRepository handles database operations for posts
type PostRepository struct {
	db *pgxpool.Pool
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a new post. The post key enforces one post per user per
// day; a same-day duplicate is reported as ErrAlreadyPosted rather than
// silently overwritten.
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (` + postColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (post_id) DO NOTHING
	`
	result, err := r.db.Exec(ctx, query,
		post.PostID, post.UID, post.Title, post.Caption, post.Date,
		post.ContentURI, post.Likes, post.UserName, post.UserHandle, post.UserProfile,
	)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrAlreadyPosted
	}
	return nil
}

// GetByID retrieves a post by its key
func (r *PostRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE post_id = $1`
	var p models.Post
	err := r.db.QueryRow(ctx, query, postID).Scan(
		&p.PostID, &p.UID, &p.Title, &p.Caption, &p.Date,
		&p.ContentURI, &p.Likes, &p.UserName, &p.UserHandle, &p.UserProfile,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &p, nil
}

// ListByAuthors retrieves all posts authored by the given uids. Callers are
// expected to chunk large author sets; this query places no limit of its
// own.
func (r *PostRepository) ListByAuthors(ctx context.Context, uids []string) ([]models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE uid = ANY($1)`
	rows, err := r.db.Query(ctx, query, uids)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		err := rows.Scan(
			&p.PostID, &p.UID, &p.Title, &p.Caption, &p.Date,
			&p.ContentURI, &p.Likes, &p.UserName, &p.UserHandle, &p.UserProfile,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}
	return posts, nil
}

// AddLike appends uid to the likes set atomically. Returns false when the
// uid was already present, so concurrent likers cannot lose an update.
func (r *PostRepository) AddLike(ctx context.Context, postID, uid string) (bool, error) {
	query := `
		UPDATE posts
		SET likes = array_append(likes, $2)
		WHERE post_id = $1 AND NOT ($2 = ANY(likes))
	`
	result, err := r.db.Exec(ctx, query, postID, uid)
	if err != nil {
		return false, fmt.Errorf("failed to add like: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// RemoveLike removes uid from the likes set atomically. Returns false when
// the uid was not present.
func (r *PostRepository) RemoveLike(ctx context.Context, postID, uid string) (bool, error) {
	query := `
		UPDATE posts
		SET likes = array_remove(likes, $2)
		WHERE post_id = $1 AND $2 = ANY(likes)
	`
	result, err := r.db.Exec(ctx, query, postID, uid)
	if err != nil {
		return false, fmt.Errorf("failed to remove like: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
