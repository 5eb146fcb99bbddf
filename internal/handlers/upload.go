package handlers

import (
	"encoding/json"
	"net/http"

	"dailydare-backend/internal/middleware"
	"dailydare-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// UploadHandler handles pre-signed image upload URLs
type UploadHandler struct {
	uploadService *services.UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// CreateUploadRequest is the body of POST /api/v1/uploads
type CreateUploadRequest struct {
	ContentType string `json:"content_type"`
}

// CreateUpload handles POST /api/v1/uploads
func (h *UploadHandler) CreateUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := middleware.GetUserID(ctx)

	var req CreateUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ticket, err := h.uploadService.CreateUploadURL(ctx, uid, req.ContentType)
	if err != nil {
		log.Error().Err(err).Str("uid", uid).Msg("Failed to generate pre-signed URL")
		respondError(w, "Failed to create upload", http.StatusInternalServerError)
		return
	}

	log.Info().Str("uid", uid).Msg("Pre-signed upload URL generated")
	respondJSON(w, http.StatusOK, ticket)
}
