package handlers

import (
	"encoding/json"
	"net/http"

	"dailydare-backend/internal/middleware"
	"dailydare-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// FriendHandler handles the friend request lifecycle
type FriendHandler struct {
	socialService *services.SocialService
}

// NewFriendHandler creates a new friend handler
func NewFriendHandler(socialService *services.SocialService) *FriendHandler {
	return &FriendHandler{socialService: socialService}
}

// SendRequestBody is the body of POST /api/v1/friends/requests
type SendRequestBody struct {
	ToUID string `json:"to_uid"`
}

// SendRequest handles POST /api/v1/friends/requests
func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := middleware.GetUserID(ctx)

	var req SendRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ToUID == "" {
		respondError(w, "to_uid is required", http.StatusBadRequest)
		return
	}

	if err := h.socialService.SendFriendRequest(ctx, uid, req.ToUID); err != nil {
		log.Error().Err(err).Str("uid", uid).Str("to_uid", req.ToUID).Msg("Failed to send friend request")
		respondError(w, err.Error(), statusForError(err))
		return
	}

	log.Info().Str("uid", uid).Str("to_uid", req.ToUID).Msg("Friend request sent")
	w.WriteHeader(http.StatusNoContent)
}

// AcceptRequest handles POST /api/v1/friends/requests/{from_uid}/accept
func (h *FriendHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := middleware.GetUserID(ctx)
	fromUID := chi.URLParam(r, "from_uid")

	if fromUID == "" {
		respondError(w, "from_uid is required", http.StatusBadRequest)
		return
	}

	if err := h.socialService.AcceptFriendRequest(ctx, uid, fromUID); err != nil {
		log.Error().Err(err).Str("uid", uid).Str("from_uid", fromUID).Msg("Failed to accept friend request")
		respondError(w, err.Error(), statusForError(err))
		return
	}

	log.Info().Str("uid", uid).Str("from_uid", fromUID).Msg("Friend request accepted")
	w.WriteHeader(http.StatusNoContent)
}

// DeclineRequest handles DELETE /api/v1/friends/requests/{from_uid}
func (h *FriendHandler) DeclineRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := middleware.GetUserID(ctx)
	fromUID := chi.URLParam(r, "from_uid")

	if fromUID == "" {
		respondError(w, "from_uid is required", http.StatusBadRequest)
		return
	}

	if err := h.socialService.DeclineFriendRequest(ctx, uid, fromUID); err != nil {
		log.Error().Err(err).Str("uid", uid).Str("from_uid", fromUID).Msg("Failed to decline friend request")
		respondError(w, err.Error(), statusForError(err))
		return
	}

	log.Info().Str("uid", uid).Str("from_uid", fromUID).Msg("Friend request declined")
	w.WriteHeader(http.StatusNoContent)
}

// RemoveFriend handles DELETE /api/v1/friends/{friend_uid}
func (h *FriendHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := middleware.GetUserID(ctx)
	friendUID := chi.URLParam(r, "friend_uid")

	if friendUID == "" {
		respondError(w, "friend_uid is required", http.StatusBadRequest)
		return
	}

	if err := h.socialService.RemoveFriend(ctx, uid, friendUID); err != nil {
		log.Error().Err(err).Str("uid", uid).Str("friend_uid", friendUID).Msg("Failed to remove friend")
		respondError(w, err.Error(), statusForError(err))
		return
	}

	log.Info().Str("uid", uid).Str("friend_uid", friendUID).Msg("Friend removed")
	w.WriteHeader(http.StatusNoContent)
}
