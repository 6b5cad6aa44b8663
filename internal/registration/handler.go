package registration

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

const step1Path = "/register"

// Handler exposes the registration flow over HTTP.
type Handler struct {
	flow *Flow
}

// NewHandler constructs a registration HTTP handler.
func NewHandler(flow *Flow) *Handler {
	return &Handler{flow: flow}
}

type identityRequest struct {
	FullName       string `json:"fullname"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Password       string `json:"password"`
	RepeatPassword string `json:"repeatPassword"`
	Role           string `json:"role"`
}

type detailsRequest struct {
	BusinessName       string   `json:"businessName"`
	StreetAddress      string   `json:"streetAddress"`
	DeliveryAddress    string   `json:"deliveryAddress"`
	District           string   `json:"district"`
	City               string   `json:"city"`
	Province           string   `json:"province"`
	ZipCode            string   `json:"zipCode"`
	RegistrationNumber string   `json:"registrationNumber"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
}

// SubmitIdentity handles the step-1 form.
func (h *Handler) SubmitIdentity(c *fiber.Ctx) error {
	var req identityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	next, err := h.flow.SubmitIdentity(c.UserContext(), sessionID(c), IdentityInput{
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		Password:       req.Password,
		RepeatPassword: req.RepeatPassword,
		Role:           req.Role,
	})
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": verr.Code})
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"next": next})
}

// GuardDetails is the step-2 entry guard: without a draft it redirects back
// to step 1.
func (h *Handler) GuardDetails(c *fiber.Ctx) error {
	draft, err := h.flow.RequireDraft(c.UserContext(), sessionID(c))
	if errors.Is(err, ErrNoDraft) {
		return c.Redirect(step1Path, http.StatusSeeOther)
	}
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"role": draft.Role, "next": NextPath(draft.Role)})
}

// SubmitDetails handles the step-2 form and final submission.
func (h *Handler) SubmitDetails(c *fiber.Ctx) error {
	var req detailsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	err := h.flow.SubmitDetails(c.UserContext(), sessionID(c), DetailsInput{
		BusinessName:       req.BusinessName,
		StreetAddress:      req.StreetAddress,
		DeliveryAddress:    req.DeliveryAddress,
		District:           req.District,
		City:               req.City,
		Province:           req.Province,
		ZipCode:            req.ZipCode,
		RegistrationNumber: req.RegistrationNumber,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
	})
	if err != nil {
		if errors.Is(err, ErrNoDraft) {
			return c.Status(http.StatusConflict).JSON(fiber.Map{"error": "no_draft", "redirect": step1Path})
		}
		var verr *ValidationError
		if errors.As(err, &verr) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": verr.Code})
		}
		var serr *SubmissionError
		if errors.As(err, &serr) {
			return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": serr.ServerMessage})
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"redirect": "/login"})
}

func sessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals("session_id").(string)
	return sid
}
