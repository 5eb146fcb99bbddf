package models

import "time"

// Notification types as stored on notification documents.
const (
	NotificationNewLike       = "NEWLIKE"
	NotificationFriendRequest = "FRIENDREQUEST"
	NotificationNewFriend     = "NEWFRIEND"
	NotificationStreak        = "STREAK"
)

// UserProfile represents a user record. Display fields are mutable through
// profile edits; counters and challenge refs are mutated only by challenge
// completion.
type UserProfile struct {
	UID                    string    `json:"uid"`
	Email                  string    `json:"email,omitempty"`
	PasswordHash           string    `json:"-"`
	UserName               string    `json:"user_name"`
	UserHandle             string    `json:"user_handle"`
	StreakCount            int       `json:"streak_count"`
	CompletedCount         int       `json:"completed_count"`
	ProfilePicture         string    `json:"profile_picture"`
	CompletedChallengeRefs []string  `json:"completed_challenge_refs"`
	PushToken              *string   `json:"-"`
	CreatedAt              time.Time `json:"created_at"`
}

// Challenge is a dated daily prompt. Immutable once seeded; the id is the
// YYYYMMDD date key.
type Challenge struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	ImageLink   string    `json:"image_link"`
	Description string    `json:"description"`
}

// FriendRelation is a confirmed bidirectional friendship. UserAID is always
// lexicographically smaller than UserBID, and ID is the canonical pair key.
type FriendRelation struct {
	ID        string    `json:"id"`
	UserAID   string    `json:"user_a_id"`
	UserBID   string    `json:"user_b_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FriendRequest is a pending directional request keyed "{from}--{to}".
type FriendRequest struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	CreatedAt time.Time `json:"created_at"`
}

// Post is a proof-of-completion photo post. Author display fields are
// denormalized at posting time; feed composition prefers the live profile.
type Post struct {
	PostID      string    `json:"post_id"`
	UID         string    `json:"uid"`
	Title       string    `json:"title"`
	Caption     string    `json:"caption"`
	Date        time.Time `json:"date"`
	ContentURI  string    `json:"content_uri"`
	Likes       []string  `json:"likes"`
	UserName    string    `json:"user_name"`
	UserHandle  string    `json:"user_handle"`
	UserProfile string    `json:"user_profile"`
}

// Notification is a stored notification document keyed by a type-derived id
// that approximates idempotent creation.
type Notification struct {
	ID      string    `json:"id"`
	UID     string    `json:"uid"`
	Type    string    `json:"type"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
}

// FriendSummary is the display-ready projection of another user.
type FriendSummary struct {
	UID            string `json:"uid"`
	UserName       string `json:"user_name"`
	UserHandle     string `json:"user_handle"`
	ProfilePicture string `json:"profile_picture"`
	StreakCount    int    `json:"streak_count"`
}

// UserState is the rebuildable per-session aggregate snapshot. Degraded
// lists the sections whose sub-fetches failed while the rest succeeded.
type UserState struct {
	UID                    string          `json:"uid"`
	UserName               string          `json:"user_name"`
	UserHandle             string          `json:"user_handle"`
	StreakCount            int             `json:"streak_count"`
	CompletedCount         int             `json:"completed_count"`
	FriendsCount           int             `json:"friends_count"`
	ProfilePicture         string          `json:"profile_picture"`
	CompletedChallengeRefs []string        `json:"completed_challenge_refs"`
	CompletedChallenges    []Challenge     `json:"completed_challenges"`
	TodayChallenge         *Challenge      `json:"today_challenge,omitempty"`
	FriendIDs              []string        `json:"friend_ids"`
	Friends                []FriendSummary `json:"friends"`
	FriendRequests         []FriendSummary `json:"friend_requests"`
	Degraded               []string        `json:"degraded,omitempty"`
}

// FeedItem is a post hydrated for display.
type FeedItem struct {
	PostID         string    `json:"post_id"`
	UID            string    `json:"uid"`
	Title          string    `json:"title"`
	Caption        string    `json:"caption"`
	Date           time.Time `json:"date"`
	ContentURI     string    `json:"content_uri"`
	LikeCount      int       `json:"like_count"`
	IsLiked        bool      `json:"is_liked"`
	UserName       string    `json:"user_name"`
	UserHandle     string    `json:"user_handle"`
	ProfilePicture string    `json:"profile_picture"`
}

// NotificationView is a notification hydrated for display.
type NotificationView struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
	TimeAgo string    `json:"time_ago"`
}

// FriendSummaryOf projects a profile into its display summary.
func FriendSummaryOf(u *UserProfile) FriendSummary {
	return FriendSummary{
		UID:            u.UID,
		UserName:       u.UserName,
		UserHandle:     u.UserHandle,
		ProfilePicture: u.ProfilePicture,
		StreakCount:    u.StreakCount,
	}
}
