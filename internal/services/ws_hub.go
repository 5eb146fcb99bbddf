package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"dailydare-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WSMessage represents a WebSocket message pushed to a client
type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// wsClient pairs a connection with the mutex serializing writes to it.
// gorilla/websocket supports at most one concurrent writer per connection.
type wsClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// WSHub manages live WebSocket connections, one per signed-in user.
// Clients receive their notifications as they are created instead of
// waiting for the next aggregate rebuild.
type WSHub struct {
	mu      sync.RWMutex
	clients map[string]*wsClient
}

// NewWSHub creates a new WebSocket hub
func NewWSHub() *WSHub {
	return &WSHub{
		clients: make(map[string]*wsClient),
	}
}

// Register registers a connection for a user. A newer connection replaces
// an older one.
func (h *WSHub) Register(uid string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.clients[uid]; ok {
		existing.conn.Close()
	}
	h.clients[uid] = &wsClient{conn: conn}

	log.Info().Str("uid", uid).Msg("WebSocket connection registered")
}

// Unregister removes a user's connection if it is the given one
func (h *WSHub) Unregister(uid string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.clients[uid]; ok && current.conn == conn {
		current.conn.Close()
		delete(h.clients, uid)
		log.Info().Str("uid", uid).Msg("WebSocket connection unregistered")
	}
}

// IsOnline checks if a user has a live connection
func (h *WSHub) IsOnline(uid string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[uid]
	return ok
}

// SendToUser sends a message to a specific user. Writes to a connection are
// serialized, so concurrent senders to the same recipient are safe.
func (h *WSHub) SendToUser(uid string, message WSMessage) error {
	h.mu.RLock()
	client, ok := h.clients[uid]
	h.mu.RUnlock()

	if !ok {
		return fmt.Errorf("user %s is not connected", uid)
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	client.mu.Lock()
	err = client.conn.WriteMessage(websocket.TextMessage, data)
	client.mu.Unlock()
	if err != nil {
		h.Unregister(uid, client.conn)
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// NotifyNotification pushes a freshly created notification to its
// recipient if they are online.
func (h *WSHub) NotifyNotification(uid string, n *models.Notification) {
	if err := h.SendToUser(uid, WSMessage{Type: "notification", Data: n}); err != nil {
		log.Debug().Err(err).Str("uid", uid).Msg("Failed to push notification over WebSocket")
	}
}
