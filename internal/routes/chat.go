package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agro-link/agro_link/internal/chat"
)

// RegisterChatRoutes wires unread-count endpoints.
func RegisterChatRoutes(r fiber.Router, h *chat.Handler) {
	group := r.Group("/chat")
	group.Get("/unread-count", h.UnreadCount)
	group.Post("/read/:senderID", h.MarkRead)
}
