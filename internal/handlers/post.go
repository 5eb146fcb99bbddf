package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"dailydare-backend/internal/middleware"
	"dailydare-backend/internal/models"
	"dailydare-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// PostHandler handles the feed, post submission and likes
type PostHandler struct {
	postService      *services.PostService
	feedService      *services.FeedService
	aggregateService *services.AggregateService
}

// NewPostHandler creates a new post handler
func NewPostHandler(
	postService *services.PostService,
	feedService *services.FeedService,
	aggregateService *services.AggregateService,
) *PostHandler {
	return &PostHandler{
		postService:      postService,
		feedService:      feedService,
		aggregateService: aggregateService,
	}
}

// GetFeed handles GET /api/v1/feed
func (h *PostHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := middleware.GetUserID(ctx)

	state, err := h.aggregateService.BuildUserState(ctx, uid)
	if err != nil {
		log.Error().Err(err).Str("uid", uid).Msg("Failed to build user state for feed")
		respondError(w, "Failed to load feed", statusForError(err))
		return
	}

	feed, err := h.feedService.ComposeFeed(ctx, state)
	if err != nil {
		log.Error().Err(err).Str("uid", uid).Msg("Failed to compose feed")
		respondError(w, "Failed to load feed", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"feed": feed})
}

// CreatePostRequest is the body of POST /api/v1/posts
type CreatePostRequest struct {
	Caption    string `json:"caption"`
	ContentURI string `json:"content_uri"`
}

// CreatePost handles POST /api/v1/posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := middleware.GetUserID(ctx)

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ContentURI == "" {
		respondError(w, "content_uri is required", http.StatusBadRequest)
		return
	}

	post, err := h.postService.SubmitPost(ctx, uid, req.Caption, req.ContentURI)
	if err != nil {
		if errors.Is(err, models.ErrAlreadyPosted) {
			respondError(w, "already posted today", http.StatusConflict)
			return
		}
		if errors.Is(err, models.ErrNotFound) {
			respondError(w, "no challenge today", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("uid", uid).Msg("Failed to submit post")
		respondError(w, "Failed to submit post", http.StatusInternalServerError)
		return
	}

	log.Info().Str("uid", uid).Str("post_id", post.PostID).Msg("Post created")
	respondJSON(w, http.StatusOK, post)
}

// ToggleLike handles POST /api/v1/posts/{post_id}/like
func (h *PostHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := middleware.GetUserID(ctx)
	postID := chi.URLParam(r, "post_id")

	if postID == "" {
		respondError(w, "post_id is required", http.StatusBadRequest)
		return
	}

	result, err := h.postService.ToggleLike(ctx, uid, postID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			respondError(w, "post not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("uid", uid).Str("post_id", postID).Msg("Failed to toggle like")
		respondError(w, "Failed to toggle like", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetTodayChallenge handles GET /api/v1/challenges/today
func (h *PostHandler) GetTodayChallenge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	challenge, err := h.aggregateService.TodayChallenge(ctx)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			respondError(w, "no challenge today", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Msg("Failed to get today's challenge")
		respondError(w, "Failed to get today's challenge", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, challenge)
}
