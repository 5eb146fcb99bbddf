package repository

import (
	"context"
	"fmt"

	"dailydare-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Upsert writes a notification under its derived key. A same-key write
// refreshes the message and date, which is the weak dedup behavior the
// mobile client expects (one like notification per sender per day, etc).
func (r *NotificationRepository) Upsert(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (id, uid, type, message, date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET message = EXCLUDED.message, date = EXCLUDED.date
	`
	_, err := r.db.Exec(ctx, query, n.ID, n.UID, n.Type, n.Message, n.Date)
	if err != nil {
		return fmt.Errorf("failed to upsert notification: %w", err)
	}
	return nil
}

// ListByRecipient retrieves a user's notifications, newest first
func (r *NotificationRepository) ListByRecipient(ctx context.Context, uid string) ([]models.Notification, error) {
	query := `
		SELECT id, uid, type, message, date
		FROM notifications
		WHERE uid = $1
		ORDER BY date DESC
	`
	rows, err := r.db.Query(ctx, query, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UID, &n.Type, &n.Message, &n.Date); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}
	return notifications, nil
}
