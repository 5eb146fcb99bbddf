package handlers

import (
	"net/http"

	"dailydare-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // mobile clients connect from app webviews, no origin check
	},
}

// WebSocketHandler handles WebSocket connections for live notifications
type WebSocketHandler struct {
	hub         *services.WSHub
	authService *services.AuthService
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(hub *services.WSHub, authService *services.AuthService) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, authService: authService}
}

// HandleWebSocket handles GET /ws?token=
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, "token required", http.StatusUnauthorized)
		return
	}

	uid, err := h.authService.ValidateJWT(token)
	if err != nil {
		respondError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	h.hub.Register(uid, conn)
	defer h.hub.Unregister(uid, conn)

	// The hub is server-push only; the read pump exists to service control
	// frames and detect disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Debug().Err(err).Str("uid", uid).Msg("WebSocket connection closed")
			return
		}
	}
}
