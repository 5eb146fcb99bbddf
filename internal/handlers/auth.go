package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"dailydare-backend/internal/models"
	"dailydare-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles sign-up and sign-in
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// CredentialsRequest is the body of both sign-up and sign-in
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse carries the session token and the signed-in profile
type SessionResponse struct {
	Token string              `json:"token"`
	User  *models.UserProfile `json:"user"`
}

// SignUp handles POST /api/v1/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, token, err := h.authService.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			respondError(w, err.Error(), http.StatusConflict)
			return
		}
		log.Error().Err(err).Msg("Failed to sign up")
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Info().Str("uid", user.UID).Msg("User signed up")
	respondJSON(w, http.StatusOK, SessionResponse{Token: token, User: user})
}

// SignIn handles POST /api/v1/auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, token, err := h.authService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			respondError(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		log.Error().Err(err).Msg("Failed to sign in")
		respondError(w, "Failed to sign in", http.StatusInternalServerError)
		return
	}

	log.Info().Str("uid", user.UID).Msg("User signed in")
	respondJSON(w, http.StatusOK, SessionResponse{Token: token, User: user})
}
