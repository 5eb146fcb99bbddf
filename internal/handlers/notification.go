package handlers

import (
	"net/http"

	"dailydare-backend/internal/middleware"
	"dailydare-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// NotificationHandler handles notification listing
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List handles GET /api/v1/notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := middleware.GetUserID(ctx)

	notifications, err := h.notificationService.List(ctx, uid)
	if err != nil {
		log.Error().Err(err).Str("uid", uid).Msg("Failed to list notifications")
		respondError(w, "Failed to load notifications", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"notifications": notifications})
}
