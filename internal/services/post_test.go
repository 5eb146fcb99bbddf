package services

import (
	"context"
	"errors"
	"testing"

	"dailydare-backend/internal/models"
)

func newPostFixture(users *fakeUsers, posts *fakePosts, challenges *fakeChallenges, store *fakeNotifications) *PostService {
	aggregates := newAggregateFixture(users, newFakeFriends(), challenges)
	svc := NewPostService(posts, users, aggregates, newTestNotifier(store, users))
	svc.now = fixedNow
	return svc
}

func todayChallengeFixture() *fakeChallenges {
	return newFakeChallenges(&models.Challenge{ID: 20251203, Title: "Run a mile"})
}

func TestSubmitPost(t *testing.T) {
	users := newFakeUsers(&models.UserProfile{
		UID: "alice", UserName: "Alice", UserHandle: "alice_h",
		ProfilePicture:         "https://img/alice.jpg",
		StreakCount:            2,
		CompletedChallengeRefs: []string{"Challenge/20251202"},
	})
	posts := newFakePosts()
	store := newFakeNotifications()
	svc := newPostFixture(users, posts, todayChallengeFixture(), store)

	post, err := svc.SubmitPost(context.Background(), "alice", "done!", "https://img/proof.jpg")
	if err != nil {
		t.Fatalf("SubmitPost: %v", err)
	}

	if post.PostID != "alice-2025-12-03" {
		t.Fatalf("PostID = %q, want alice-2025-12-03", post.PostID)
	}
	if post.Title != "Run a mile" || post.Caption != "done!" {
		t.Fatalf("post = %+v", post)
	}
	if post.UserName != "Alice" || post.UserHandle != "alice_h" || post.UserProfile != "https://img/alice.jpg" {
		t.Fatalf("author snapshot missing: %+v", post)
	}

	// Yesterday was completed, so the streak extends.
	if len(users.applied) != 1 {
		t.Fatalf("applied = %+v, want one completion record", users.applied)
	}
	rec := users.applied[0]
	if rec.uid != "alice" || rec.ref != "Challenge/20251203" || rec.streak != 3 {
		t.Fatalf("completion = %+v, want streak 3 for Challenge/20251203", rec)
	}
	if len(store.order) != 0 {
		t.Fatalf("streak 3 produced a notification: %v", store.order)
	}
}

func TestSubmitPostSameDayTwice(t *testing.T) {
	users := newFakeUsers(&models.UserProfile{UID: "alice"})
	posts := newFakePosts()
	svc := newPostFixture(users, posts, todayChallengeFixture(), newFakeNotifications())

	if _, err := svc.SubmitPost(context.Background(), "alice", "first", ""); err != nil {
		t.Fatalf("first SubmitPost: %v", err)
	}
	_, err := svc.SubmitPost(context.Background(), "alice", "second", "")
	if !errors.Is(err, models.ErrAlreadyPosted) {
		t.Fatalf("second SubmitPost = %v, want ErrAlreadyPosted", err)
	}
	if posts.posts["alice-2025-12-03"].Caption != "first" {
		t.Fatalf("duplicate submit overwrote the original post")
	}
	if len(users.applied) != 1 {
		t.Fatalf("duplicate submit touched the profile again: %+v", users.applied)
	}
}

func TestSubmitPostStreakNotifications(t *testing.T) {
	tests := []struct {
		name   string
		stored int
		refs   []string
		want   bool
	}{
		{"first ever post notifies", 0, nil, true},
		{"broken streak restart notifies", 6, []string{"Challenge/20251130"}, true},
		{"multiple of five notifies", 4, []string{"Challenge/20251202"}, true},
		{"ordinary day stays quiet", 2, []string{"Challenge/20251202"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newFakeUsers(&models.UserProfile{
				UID: "alice", StreakCount: tt.stored, CompletedChallengeRefs: tt.refs,
			})
			store := newFakeNotifications()
			svc := newPostFixture(users, newFakePosts(), todayChallengeFixture(), store)

			if _, err := svc.SubmitPost(context.Background(), "alice", "", ""); err != nil {
				t.Fatalf("SubmitPost: %v", err)
			}
			_, notified := store.stored["STREAK-alice-20251203"]
			if notified != tt.want {
				t.Fatalf("streak notification stored = %v, want %v (order %v)", notified, tt.want, store.order)
			}
		})
	}
}

func TestSubmitPostRefAlreadyRecorded(t *testing.T) {
	// The profile already carries today's ref but no post exists for the key;
	// the completion update is an idempotent no-op, not a failure.
	users := newFakeUsers(&models.UserProfile{
		UID:                    "alice",
		StreakCount:            1,
		CompletedCount:         1,
		CompletedChallengeRefs: []string{"Challenge/20251203"},
	})
	svc := newPostFixture(users, newFakePosts(), todayChallengeFixture(), newFakeNotifications())

	if _, err := svc.SubmitPost(context.Background(), "alice", "", ""); err != nil {
		t.Fatalf("SubmitPost with recorded ref: %v", err)
	}
	if len(users.applied) != 0 {
		t.Fatalf("completion applied twice: %+v", users.applied)
	}
	if users.profiles["alice"].CompletedCount != 1 {
		t.Fatalf("CompletedCount = %d, want 1", users.profiles["alice"].CompletedCount)
	}
}

func TestSubmitPostWithoutTodayChallenge(t *testing.T) {
	users := newFakeUsers(&models.UserProfile{UID: "alice"})
	svc := newPostFixture(users, newFakePosts(), newFakeChallenges(), newFakeNotifications())

	if _, err := svc.SubmitPost(context.Background(), "alice", "", ""); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("SubmitPost without a challenge = %v, want ErrNotFound", err)
	}
}

func TestToggleLike(t *testing.T) {
	users := newFakeUsers(
		&models.UserProfile{UID: "alice", UserName: "Alice"},
		&models.UserProfile{UID: "bob", UserName: "Bob"},
	)
	posts := newFakePosts(&models.Post{
		PostID: "bob-2025-12-03", UID: "bob", Title: "Run a mile", Likes: []string{},
	})
	store := newFakeNotifications()
	svc := newPostFixture(users, posts, todayChallengeFixture(), store)

	res, err := svc.ToggleLike(context.Background(), "alice", "bob-2025-12-03")
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if !res.Liked || res.LikeCount != 1 {
		t.Fatalf("first toggle = %+v, want liked with count 1", res)
	}

	n, ok := store.stored["LIKE-alice-bob-20251203"]
	if !ok {
		t.Fatalf("like notification not stored; have %v", store.order)
	}
	if n.UID != "bob" || n.Type != models.NotificationNewLike {
		t.Fatalf("notification = %+v", n)
	}

	res, err = svc.ToggleLike(context.Background(), "alice", "bob-2025-12-03")
	if err != nil {
		t.Fatalf("second ToggleLike: %v", err)
	}
	if res.Liked || res.LikeCount != 0 {
		t.Fatalf("second toggle = %+v, want unliked with count 0", res)
	}
	if len(posts.posts["bob-2025-12-03"].Likes) != 0 {
		t.Fatalf("like set not restored: %v", posts.posts["bob-2025-12-03"].Likes)
	}
}

func TestToggleLikeOwnPostDoesNotNotify(t *testing.T) {
	users := newFakeUsers(&models.UserProfile{UID: "alice", UserName: "Alice"})
	posts := newFakePosts(&models.Post{PostID: "alice-2025-12-03", UID: "alice", Likes: []string{}})
	store := newFakeNotifications()
	svc := newPostFixture(users, posts, todayChallengeFixture(), store)

	res, err := svc.ToggleLike(context.Background(), "alice", "alice-2025-12-03")
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if !res.Liked {
		t.Fatalf("own-post like not applied: %+v", res)
	}
	if len(store.order) != 0 {
		t.Fatalf("self-like produced a notification: %v", store.order)
	}
}

func TestToggleLikeMissingPost(t *testing.T) {
	svc := newPostFixture(newFakeUsers(), newFakePosts(), todayChallengeFixture(), newFakeNotifications())
	if _, err := svc.ToggleLike(context.Background(), "alice", "nope"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("ToggleLike on missing post = %v, want ErrNotFound", err)
	}
}
