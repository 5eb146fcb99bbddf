package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dailydare-backend/internal/models"
)

// PostService handles post submission and like toggling
type PostService struct {
	posts      PostsStore
	users      UsersStore
	aggregates *AggregateService
	notifier   *NotificationService
	now        func() time.Time
}

// NewPostService creates a new post service
func NewPostService(posts PostsStore, users UsersStore, aggregates *AggregateService, notifier *NotificationService) *PostService {
	return &PostService{
		posts:      posts,
		users:      users,
		aggregates: aggregates,
		notifier:   notifier,
		now:        time.Now,
	}
}

// SubmitPost creates today's proof post and records the challenge
// completion on the profile. The profile update is awaited so counts and
// streak are durable before the call returns; only the streak notification
// is best-effort.
func (s *PostService) SubmitPost(ctx context.Context, uid, caption, contentURI string) (*models.Post, error) {
	profile, err := s.users.GetByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	challenge, err := s.aggregates.TodayChallenge(ctx)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get today's challenge: %w", err)
	}

	today := s.now()
	post := &models.Post{
		PostID:      models.PostKey(uid, today),
		UID:         uid,
		Title:       challenge.Title,
		Caption:     caption,
		Date:        today,
		ContentURI:  contentURI,
		Likes:       []string{},
		UserName:    profile.UserName,
		UserHandle:  profile.UserHandle,
		UserProfile: profile.ProfilePicture,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	streak := nextStreak(profile.StreakCount, profile.CompletedChallengeRefs, today)
	ref := models.ChallengeRef(challenge.ID)
	if err := s.users.ApplyPostCompletion(ctx, uid, ref, streak); err != nil {
		// The post exists but the profile was not updated; reported as a
		// distinct write failure so the caller can retry the second step.
		return nil, fmt.Errorf("post created but profile update failed: %w", err)
	}

	if streak == 1 || streak%5 == 0 {
		s.notifier.Notify(ctx, uid, models.NotificationStreak,
			fmt.Sprintf("You now have a %d day streak!", streak), uid)
	}
	return post, nil
}

// LikeResult reports the post's like state after a toggle
type LikeResult struct {
	PostID    string `json:"post_id"`
	Liked     bool   `json:"liked"`
	LikeCount int    `json:"like_count"`
}

// ToggleLike flips uid's membership in the post's like set using atomic
// set-add/set-remove, so concurrent togglers cannot lose updates. Liking
// someone else's post notifies the author; unliking never does.
func (s *PostService) ToggleLike(ctx context.Context, uid, postID string) (*LikeResult, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	removed, err := s.posts.RemoveLike(ctx, postID, uid)
	if err != nil {
		return nil, err
	}
	if removed {
		return &LikeResult{PostID: postID, Liked: false, LikeCount: len(post.Likes) - 1}, nil
	}

	added, err := s.posts.AddLike(ctx, postID, uid)
	if err != nil {
		return nil, err
	}
	count := len(post.Likes)
	if added {
		count++
	}
	if added && post.UID != uid {
		liker, err := s.users.GetByUID(ctx, uid)
		name := uid
		if err == nil {
			name = liker.UserName
		}
		s.notifier.Notify(ctx, post.UID, models.NotificationNewLike,
			fmt.Sprintf("%s liked your post %s.", name, post.Title), uid)
	}
	return &LikeResult{PostID: postID, Liked: true, LikeCount: count}, nil
}
