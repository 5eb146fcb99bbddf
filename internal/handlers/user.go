package handlers

import (
	"encoding/json"
	"net/http"

	"dailydare-backend/internal/middleware"
	"dailydare-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// UserHandler handles the aggregate snapshot and profile mutations
type UserHandler struct {
	aggregateService *services.AggregateService
	authService      *services.AuthService
	socialService    *services.SocialService
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	aggregateService *services.AggregateService,
	authService *services.AuthService,
	socialService *services.SocialService,
) *UserHandler {
	return &UserHandler{
		aggregateService: aggregateService,
		authService:      authService,
		socialService:    socialService,
	}
}

// GetMe handles GET /api/v1/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := middleware.GetUserID(ctx)

	state, err := h.aggregateService.BuildUserState(ctx, uid)
	if err != nil {
		log.Error().Err(err).Str("uid", uid).Msg("Failed to build user state")
		respondError(w, "Failed to load user state", statusForError(err))
		return
	}

	respondJSON(w, http.StatusOK, state)
}

// UpdateProfileRequest is the body of PUT /api/v1/me/profile
type UpdateProfileRequest struct {
	UserName       string `json:"user_name"`
	UserHandle     string `json:"user_handle"`
	ProfilePicture string `json:"profile_picture"`
}

// UpdateProfile handles PUT /api/v1/me/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := middleware.GetUserID(ctx)

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.authService.UpdateProfile(ctx, uid, req.UserName, req.UserHandle, req.ProfilePicture); err != nil {
		log.Error().Err(err).Str("uid", uid).Msg("Failed to update profile")
		respondError(w, err.Error(), statusForError(err))
		return
	}

	log.Info().Str("uid", uid).Msg("Profile updated")
	w.WriteHeader(http.StatusNoContent)
}

// DeviceTokenRequest is the body of POST /api/v1/me/device-token
type DeviceTokenRequest struct {
	Token string `json:"token"`
}

// RegisterDeviceToken handles POST /api/v1/me/device-token
func (h *UserHandler) RegisterDeviceToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := middleware.GetUserID(ctx)

	var req DeviceTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.authService.RegisterDeviceToken(ctx, uid, req.Token); err != nil {
		log.Error().Err(err).Str("uid", uid).Msg("Failed to register device token")
		respondError(w, "Failed to register device token", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SearchUsers handles GET /api/v1/users/search?q=
func (h *UserHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query().Get("q")
	if q == "" {
		respondError(w, "q is required", http.StatusBadRequest)
		return
	}

	results, err := h.socialService.SearchUsers(ctx, q)
	if err != nil {
		log.Error().Err(err).Str("query", q).Msg("Failed to search users")
		respondError(w, "Failed to search users", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"users": results})
}
