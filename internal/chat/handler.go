package chat

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes unread-count endpoints. The session identifier stands in
// for the user identity; authentication lives in the upstream services.
type Handler struct {
	service *Service
}

// NewHandler constructs a chat HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// UnreadCount reports the caller's unread totals.
func (h *Handler) UnreadCount(c *fiber.Ctx) error {
	userID, _ := c.Locals("session_id").(string)
	if userID == "" {
		return fiber.NewError(http.StatusBadRequest, "missing session")
	}

	counts, err := h.service.Counts(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"total": total, "senders": counts})
}

// MarkRead zeroes the unread count for one sender.
func (h *Handler) MarkRead(c *fiber.Ctx) error {
	userID, _ := c.Locals("session_id").(string)
	if userID == "" {
		return fiber.NewError(http.StatusBadRequest, "missing session")
	}
	senderID := c.Params("senderID")
	if senderID == "" {
		return fiber.NewError(http.StatusBadRequest, "sender is required")
	}

	if err := h.service.MarkRead(c.UserContext(), userID, senderID); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "read"})
}
