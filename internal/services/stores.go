package services

import (
	"context"

	"dailydare-backend/internal/models"
)

// Store interfaces consumed by the services. The pgx repositories satisfy
// them; tests substitute stubs.

type UsersStore interface {
	Create(ctx context.Context, user *models.UserProfile) error
	GetByUID(ctx context.Context, uid string) (*models.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateDisplay(ctx context.Context, uid, userName, userHandle, profilePicture string) error
	ApplyPostCompletion(ctx context.Context, uid, challengeRef string, streak int) error
	UpdatePushToken(ctx context.Context, uid string, pushToken *string) error
	Search(ctx context.Context, q string, limit int) ([]models.FriendSummary, error)
}

type FriendsStore interface {
	CreateRelation(ctx context.Context, rel *models.FriendRelation) error
	DeleteRelation(ctx context.Context, id string) error
	RelationExists(ctx context.Context, id string) (bool, error)
	ListRelations(ctx context.Context, uid string) ([]models.FriendRelation, error)
	CreateRequest(ctx context.Context, req *models.FriendRequest) error
	DeleteRequest(ctx context.Context, id string) (bool, error)
	ListIncomingRequests(ctx context.Context, uid string) ([]models.FriendRequest, error)
}

type ChallengesStore interface {
	GetByID(ctx context.Context, id int) (*models.Challenge, error)
	GetByRef(ctx context.Context, ref string) (*models.Challenge, error)
}

type PostsStore interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	ListByAuthors(ctx context.Context, uids []string) ([]models.Post, error)
	AddLike(ctx context.Context, postID, uid string) (bool, error)
	RemoveLike(ctx context.Context, postID, uid string) (bool, error)
}

type NotificationsStore interface {
	Upsert(ctx context.Context, n *models.Notification) error
	ListByRecipient(ctx context.Context, uid string) ([]models.Notification, error)
}
