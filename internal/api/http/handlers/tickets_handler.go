package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fixlane/repair-service/internal/api/dto"
	"github.com/fixlane/repair-service/internal/service"
	apperrors "github.com/fixlane/repair-service/pkg/errorutil"
)

// TicketsHandler manages public customer endpoints: intake, quoting and
// self-service tracking. None of these require authentication.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /api/tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.CreateTicket(c.Context(), req.ToServiceRequest())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, nil, true)})
}

// Estimate POST /api/tickets/estimate. Prices a request without persisting it.
func (h *TicketsHandler) Estimate(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	estimate, err := h.service.QuoteEstimate(c.Context(), req.ToServiceRequest())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.EstimateResponse{Estimate: estimate}})
}

// Track POST /api/tickets/track.
func (h *TicketsHandler) Track(c *fiber.Ctx) error {
	var req dto.TrackRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.TicketNumber) == "" || strings.TrimSpace(req.AccessCode) == "" {
		return apperrors.NewValidationError("ticketNumber and accessCode required", nil)
	}

	ticket, status, err := h.service.TrackTicket(c.Context(), req.TicketNumber, req.AccessCode)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, &status, false)})
}

// Catalog GET /api/catalog. Serves the price book for the intake form.
func (h *TicketsHandler) Catalog(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.NewCatalogResponse(h.service.Catalog())})
}
