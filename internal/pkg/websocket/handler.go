package websocket

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Handler upgrades HTTP requests and attaches them to a Hub
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	initial  func() interface{}
	logger   zerolog.Logger
}

// NewHandler creates a WebSocket handler. When initial is set its result is
// sent to every client right after it connects.
func NewHandler(hub *Hub, allowedOrigins []string, initial func() interface{}, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:      hub,
		upgrader: newUpgrader(allowedOrigins),
		initial:  initial,
		logger:   logger,
	}
}

// HandleConnection godoc
// @Summary Stream live course transitions
// @Description Upgrades to a WebSocket that first receives the current live snapshot, then one JSON event per course opening or closing. Browsers may pass the token as the token query parameter.
// @Tags admin
// @Security BearerAuth
// @Param token query string false "JWT access token"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /admin/live/ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		h.logger.Warn().Err(err).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:      h.hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		addr:     conn.RemoteAddr().String(),
		username: c.GetString("username"),
		logger:   h.logger,
	}

	if h.initial != nil {
		if data, err := json.Marshal(h.initial()); err == nil {
			client.send <- data
		}
	}

	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
