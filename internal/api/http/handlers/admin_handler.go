package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/fixlane/repair-service/internal/api/dto"
	"github.com/fixlane/repair-service/internal/auth"
	"github.com/fixlane/repair-service/internal/service"
	apperrors "github.com/fixlane/repair-service/pkg/errorutil"
)

// AdminHandler exposes the staff workbench: listing, inspecting and advancing
// tickets, plus the dashboard summary. All routes sit behind auth middleware.
type AdminHandler struct {
	service *service.TicketService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(ticketService *service.TicketService) *AdminHandler {
	return &AdminHandler{service: ticketService}
}

// ListTickets GET /api/admin/tickets.
func (h *AdminHandler) ListTickets(c *fiber.Ctx) error {
	search := c.Query("search")
	stage := c.Query("stage")
	limit := parseInt(c.Query("limit"), 50)
	offset := parseInt(c.Query("offset"), 0)

	tickets, err := h.service.ListTickets(c.Context(), search, stage, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.NewTicketResponse(&tickets[i].Ticket, &tickets[i].Status, false))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /api/admin/tickets/:id.
func (h *AdminHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.service.GetTicket(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(&ticket.Ticket, &ticket.Status, false)})
}

// UpdateStage PATCH /api/admin/tickets/:id/stage.
func (h *AdminHandler) UpdateStage(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Staff == nil {
		return apperrors.NewUnauthorized("staff required")
	}

	var req dto.UpdateStageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.UpdateStage(c.Context(), principal.Staff, c.Params("id"), req.Stage)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(&ticket.Ticket, &ticket.Status, false)})
}

// Summary GET /api/admin/summary.
func (h *AdminHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSummaryResponse(summary)})
}

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}
