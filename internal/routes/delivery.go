package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agro-link/agro_link/internal/delivery"
)

// RegisterDeliveryRoutes wires delivery quote endpoints.
func RegisterDeliveryRoutes(r fiber.Router, h *delivery.Handler) {
	r.Post("/delivery/quote", h.Quote)
}
