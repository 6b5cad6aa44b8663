package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agro-link/agro_link/internal/registration"
)

// RegisterRegistrationRoutes wires the two-step registration endpoints. The
// rate limiter guards only the final submission: step 1 never leaves the
// service, step 2 fans out to the upstream registrar.
func RegisterRegistrationRoutes(r fiber.Router, h *registration.Handler, rateLimiter fiber.Handler) {
	group := r.Group("/auth/register")
	group.Post("/identity", h.SubmitIdentity)
	group.Get("/details", h.GuardDetails)
	if rateLimiter != nil {
		group.Post("/details", rateLimiter, h.SubmitDetails)
	} else {
		group.Post("/details", h.SubmitDetails)
	}
}
