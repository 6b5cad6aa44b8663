package delivery

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/agro-link/agro_link/internal/geo"
)

// Handler exposes delivery quote endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a delivery HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type quoteRequest struct {
	ListingID string  `json:"listing_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Quote prices delivery from a listing's pickup point to the destination.
func (h *Handler) Quote(c *fiber.Ctx) error {
	var req quoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.ListingID == "" {
		return fiber.NewError(http.StatusBadRequest, "listing_id is required")
	}

	quote, err := h.service.QuoteFor(c.UserContext(), req.ListingID, geo.Point{Latitude: req.Latitude, Longitude: req.Longitude})
	if err != nil {
		switch {
		case errors.Is(err, ErrOutOfRegion):
			return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, ErrListingNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrNoPickupLocation):
			return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusOK).JSON(quote)
}
