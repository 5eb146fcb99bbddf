package services

import (
	"context"
	"fmt"
	"time"

	"dailydare-backend/internal/models"

	"github.com/rs/zerolog/log"
)

// NotificationService creates and lists notifications and fans them out to
// online clients (websocket) or registered devices (APNs).
type NotificationService struct {
	store NotificationsStore
	users UsersStore
	hub   *WSHub
	push  *PushService
	now   func() time.Time
}

// NewNotificationService creates a new notification service
func NewNotificationService(store NotificationsStore, users UsersStore, hub *WSHub, push *PushService) *NotificationService {
	return &NotificationService{
		store: store,
		users: users,
		hub:   hub,
		push:  push,
		now:   time.Now,
	}
}

// notificationKey derives the document key that approximates idempotent
// creation: one like notification per sender per recipient per day, one
// friend notification per request direction, one streak notification per
// day.
func notificationKey(ntype, senderUID, recipientUID string, now time.Time) string {
	day := models.DateKey(now)
	switch ntype {
	case models.NotificationNewLike:
		return fmt.Sprintf("LIKE-%s-%s-%s", senderUID, recipientUID, day)
	case models.NotificationFriendRequest:
		return fmt.Sprintf("FRIEND-%s-%s", senderUID, recipientUID)
	case models.NotificationNewFriend:
		return fmt.Sprintf("FRIEND-%s-%s", recipientUID, senderUID)
	case models.NotificationStreak:
		return fmt.Sprintf("STREAK-%s-%s", recipientUID, day)
	default:
		return fmt.Sprintf("UNKNOWN-%s-%s", recipientUID, now.Format(time.RFC3339))
	}
}

// Notify stores a notification for the recipient and fans it out. The
// store write is awaited but failures are logged, never propagated: no
// mutation fails because its side notification could not be written.
func (s *NotificationService) Notify(ctx context.Context, recipientUID, ntype, message, senderUID string) {
	n := &models.Notification{
		ID:      notificationKey(ntype, senderUID, recipientUID, s.now()),
		UID:     recipientUID,
		Type:    ntype,
		Message: message,
		Date:    s.now(),
	}
	if err := s.store.Upsert(ctx, n); err != nil {
		log.Error().Err(err).Str("uid", recipientUID).Str("type", ntype).Msg("Failed to store notification")
		return
	}

	if s.hub != nil && s.hub.IsOnline(recipientUID) {
		go s.hub.NotifyNotification(recipientUID, n)
		return
	}
	if s.push != nil && s.push.Enabled() {
		go s.deliverPush(recipientUID, message)
	}
}

func (s *NotificationService) deliverPush(recipientUID, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	recipient, err := s.users.GetByUID(ctx, recipientUID)
	if err != nil || recipient.PushToken == nil {
		return
	}
	if err := s.push.Send(*recipient.PushToken, message); err != nil {
		log.Error().Err(err).Str("uid", recipientUID).Msg("Failed to deliver push")
	}
}

// List returns the recipient's notifications, newest first, with relative
// timestamps for display.
func (s *NotificationService) List(ctx context.Context, uid string) ([]models.NotificationView, error) {
	notifications, err := s.store.ListByRecipient(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	now := s.now()
	views := make([]models.NotificationView, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, models.NotificationView{
			ID:      n.ID,
			Type:    n.Type,
			Message: n.Message,
			Date:    n.Date,
			TimeAgo: relativeTime(n.Date, now),
		})
	}
	return views, nil
}

// relativeTime renders the coarse age tiers the notification screen shows.
func relativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d >= 24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours())/24)
	case d >= time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d > 10*time.Minute:
		return fmt.Sprintf("%dmins", int(d.Minutes()))
	default:
		return "now"
	}
}
