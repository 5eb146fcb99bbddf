package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dailydare-backend/internal/models"
)

const searchLimit = 20

// SocialService handles the social graph: friend resolution and the friend
// request lifecycle.
type SocialService struct {
	users    UsersStore
	friends  FriendsStore
	notifier *NotificationService
	now      func() time.Time
}

// NewSocialService creates a new social service
func NewSocialService(users UsersStore, friends FriendsStore, notifier *NotificationService) *SocialService {
	return &SocialService{
		users:    users,
		friends:  friends,
		notifier: notifier,
		now:      time.Now,
	}
}

// FriendIDs resolves the ids of all confirmed friends of uid. The result
// never contains uid itself and is empty (not nil-erroring) when the user
// has no friends.
func (s *SocialService) FriendIDs(ctx context.Context, uid string) ([]string, error) {
	relations, err := s.friends.ListRelations(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve friends: %w", err)
	}

	ids := make([]string, 0, len(relations))
	for _, rel := range relations {
		other := rel.UserAID
		if other == uid {
			other = rel.UserBID
		}
		if other == uid {
			continue
		}
		ids = append(ids, other)
	}
	return ids, nil
}

// IncomingRequests resolves pending requests addressed to uid and hydrates
// each into a display summary. Requests whose sender profile is missing are
// skipped rather than failing the whole list.
func (s *SocialService) IncomingRequests(ctx context.Context, uid string) ([]models.FriendSummary, error) {
	requests, err := s.friends.ListIncomingRequests(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve friend requests: %w", err)
	}

	summaries := make([]models.FriendSummary, 0, len(requests))
	for _, req := range requests {
		sender, err := s.users.GetByUID(ctx, req.From)
		if err != nil {
			continue
		}
		summaries = append(summaries, models.FriendSummaryOf(sender))
	}
	return summaries, nil
}

// SendFriendRequest creates a pending request from -> to and notifies the
// addressee.
func (s *SocialService) SendFriendRequest(ctx context.Context, fromUID, toUID string) error {
	if fromUID == toUID {
		return models.ErrSelfFriend
	}

	sender, err := s.users.GetByUID(ctx, fromUID)
	if err != nil {
		return fmt.Errorf("failed to get sender: %w", err)
	}
	if _, err := s.users.GetByUID(ctx, toUID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		return fmt.Errorf("failed to get addressee: %w", err)
	}

	exists, err := s.friends.RelationExists(ctx, models.PairKey(fromUID, toUID))
	if err != nil {
		return fmt.Errorf("failed to check relation: %w", err)
	}
	if exists {
		return models.ErrFriendshipExists
	}

	req := &models.FriendRequest{
		ID:        models.RequestKey(fromUID, toUID),
		From:      fromUID,
		To:        toUID,
		CreatedAt: s.now(),
	}
	if err := s.friends.CreateRequest(ctx, req); err != nil {
		return err
	}

	s.notifier.Notify(ctx, toUID, models.NotificationFriendRequest,
		fmt.Sprintf("New friend request from %s.", sender.UserName), fromUID)
	return nil
}

// AcceptFriendRequest promotes a pending request into a friend relation and
// notifies the requester. The relation is written under the canonical pair
// key with a conflict-free upsert, so accepting twice leaves a single
// relation record.
func (s *SocialService) AcceptFriendRequest(ctx context.Context, toUID, fromUID string) error {
	a, b := models.OrderPair(fromUID, toUID)
	rel := &models.FriendRelation{
		ID:        models.PairKey(fromUID, toUID),
		UserAID:   a,
		UserBID:   b,
		CreatedAt: s.now(),
	}
	if err := s.friends.CreateRelation(ctx, rel); err != nil {
		return fmt.Errorf("failed to create relation: %w", err)
	}

	// A missing request means this accept already ran; the relation upsert
	// above has made the call a no-op on the graph.
	if _, err := s.friends.DeleteRequest(ctx, models.RequestKey(fromUID, toUID)); err != nil {
		return err
	}

	accepter, err := s.users.GetByUID(ctx, toUID)
	if err != nil {
		return fmt.Errorf("failed to get accepter: %w", err)
	}
	s.notifier.Notify(ctx, fromUID, models.NotificationNewFriend,
		fmt.Sprintf("%s has accepted your friend request!", accepter.UserName), toUID)
	return nil
}

// DeclineFriendRequest deletes a pending request without creating a
// relation.
func (s *SocialService) DeclineFriendRequest(ctx context.Context, toUID, fromUID string) error {
	deleted, err := s.friends.DeleteRequest(ctx, models.RequestKey(fromUID, toUID))
	if err != nil {
		return err
	}
	if !deleted {
		return models.ErrRequestNotFound
	}
	return nil
}

// RemoveFriend deletes the relation between uid and friendUID. The
// canonical pair key makes a single lookup sufficient regardless of which
// side initiated the friendship.
func (s *SocialService) RemoveFriend(ctx context.Context, uid, friendUID string) error {
	return s.friends.DeleteRelation(ctx, models.PairKey(uid, friendUID))
}

// SearchUsers finds users whose name or handle starts with q
func (s *SocialService) SearchUsers(ctx context.Context, q string) ([]models.FriendSummary, error) {
	if q == "" {
		return nil, nil
	}
	return s.users.Search(ctx, q, searchLimit)
}
