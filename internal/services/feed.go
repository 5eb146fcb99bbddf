package services

import (
	"context"
	"fmt"
	"sort"

	"dailydare-backend/internal/models"
)

// authorChunkSize bounds the author-id set per query, mirroring the 30-id
// IN-clause ceiling of document stores the mobile client originally talked
// to.
const authorChunkSize = 30

// FeedService composes the reverse-chronological feed of friends' and own
// posts. It performs no pagination: the full eligible set is loaded on
// every call, which is a known scalability ceiling of the product, not an
// accident.
type FeedService struct {
	posts PostsStore
	users UsersStore
}

// NewFeedService creates a new feed service
func NewFeedService(posts PostsStore, users UsersStore) *FeedService {
	return &FeedService{posts: posts, users: users}
}

// ComposeFeed fetches and hydrates all posts authored by the state's
// friends and the user themselves, sorted by date descending. Equal
// timestamps preserve fetch order.
func (s *FeedService) ComposeFeed(ctx context.Context, state *models.UserState) ([]models.FeedItem, error) {
	// No friends means an empty feed with no query at all, own posts
	// included; this mirrors the client behavior the product shipped with.
	if len(state.FriendIDs) == 0 {
		return []models.FeedItem{}, nil
	}
	authors := append([]string{}, state.FriendIDs...)
	authors = append(authors, state.UID)

	var posts []models.Post
	for start := 0; start < len(authors); start += authorChunkSize {
		end := start + authorChunkSize
		if end > len(authors) {
			end = len(authors)
		}
		chunk, err := s.posts.ListByAuthors(ctx, authors[start:end])
		if err != nil {
			return nil, fmt.Errorf("failed to fetch posts: %w", err)
		}
		posts = append(posts, chunk...)
	}

	// Live author profiles override the denormalized snapshot stored on the
	// post; a failed lookup falls back to the snapshot to bound staleness
	// without losing the post.
	profiles := make(map[string]*models.UserProfile)
	items := make([]models.FeedItem, 0, len(posts))
	for _, post := range posts {
		item := models.FeedItem{
			PostID:         post.PostID,
			UID:            post.UID,
			Title:          post.Title,
			Caption:        post.Caption,
			Date:           post.Date,
			ContentURI:     post.ContentURI,
			LikeCount:      len(post.Likes),
			IsLiked:        containsRef(post.Likes, state.UID),
			UserName:       post.UserName,
			UserHandle:     post.UserHandle,
			ProfilePicture: post.UserProfile,
		}

		author, ok := profiles[post.UID]
		if !ok {
			var err error
			author, err = s.users.GetByUID(ctx, post.UID)
			if err != nil {
				author = nil
			}
			profiles[post.UID] = author
		}
		if author != nil {
			item.UserName = author.UserName
			item.UserHandle = author.UserHandle
			item.ProfilePicture = author.ProfilePicture
		}

		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
	return items, nil
}
