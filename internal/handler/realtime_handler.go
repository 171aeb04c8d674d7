package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"jobnexus/internal/domain"
	"jobnexus/internal/middleware"
	"jobnexus/internal/realtime"
)

type RealtimeHandler struct {
	hub *realtime.Hub
}

func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

// Upgrade only lets authenticated websocket handshakes through.
func (h *RealtimeHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	if middleware.GetIdentity(c) == nil {
		return middleware.Unauthorized("Authentication required")
	}
	return c.Next()
}

func (h *RealtimeHandler) Stream() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		identity, ok := conn.Locals(middleware.IdentityContextKey).(*domain.Identity)
		if !ok || identity == nil {
			_ = conn.Close()
			return
		}
		h.hub.Serve(conn, identity.UserID)
	})
}
