package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/service"
	"github.com/spec-kit/helpdesk/internal/session"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

// TicketsHandler serves the ticket lifecycle and read-side endpoints.
type TicketsHandler struct {
	lifecycle *service.LifecycleService
	listing   *service.ListingService
	history   *service.HistoryService
	validate  *validator.Validate
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(lifecycle *service.LifecycleService, listing *service.ListingService, history *service.HistoryService) *TicketsHandler {
	return &TicketsHandler{
		lifecycle: lifecycle,
		listing:   listing,
		history:   history,
		validate:  validator.New(),
	}
}

// List GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	if _, ok := session.CurrentUser(c); !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	query := service.ListQuery{
		Page: parseIntQuery(c, "page", 0),
		Size: parseIntQuery(c, "size", 10),
	}
	if raw := c.Query("status"); raw != "" {
		status, ok := domain.ParseTicketStatus(raw)
		if !ok {
			return apperrors.NewValidationError("unknown status", map[string]any{"status": raw})
		}
		query.Status = &status
	}
	if raw := c.Query("priority"); raw != "" {
		priority, ok := domain.ParseTicketPriority(raw)
		if !ok {
			return apperrors.NewValidationError("unknown priority", map[string]any{"priority": raw})
		}
		query.Priority = &priority
	}

	page, err := h.listing.List(c.UserContext(), query)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPageResponse(page, dto.NewTicketResponse))
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	principal, ok := session.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidationError("invalid payload", map[string]any{"reason": err.Error()})
	}

	ticket, err := h.lifecycle.Create(c.UserContext(), actorOf(principal), service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.TicketPriority(req.Priority),
	})
	if err != nil {
		return err
	}

	view, err := h.listing.Resolve(c.UserContext(), ticket)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewTicketResponse(*view))
}

// Get GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	if _, ok := session.CurrentUser(c); !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	view, err := h.listing.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponse(*view))
}

// ChangeStatus PATCH /tickets/:id/status.
func (h *TicketsHandler) ChangeStatus(c *fiber.Ctx) error {
	principal, ok := session.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidationError("invalid payload", map[string]any{"reason": err.Error()})
	}
	target, ok := domain.ParseTicketStatus(req.Status)
	if !ok {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": req.Status})
	}

	ticket, changed, err := h.lifecycle.ChangeStatus(c.UserContext(), actorOf(principal), c.Params("id"), target)
	if err != nil {
		return err
	}

	view, err := h.listing.Resolve(c.UserContext(), ticket)
	if err != nil {
		return err
	}
	return c.JSON(dto.ChangeStatusResponse{Ticket: dto.NewTicketResponse(*view), Changed: changed})
}

// Assign PATCH /tickets/:id/assign/:techId.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	principal, ok := session.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	ticket, changed, err := h.lifecycle.Assign(c.UserContext(), actorOf(principal), c.Params("id"), c.Params("techId"))
	if err != nil {
		return err
	}

	view, err := h.listing.Resolve(c.UserContext(), ticket)
	if err != nil {
		return err
	}
	return c.JSON(dto.AssignResponse{Ticket: dto.NewTicketResponse(*view), Changed: changed})
}

// History GET /tickets/:id/history.
func (h *TicketsHandler) History(c *fiber.Ctx) error {
	if _, ok := session.CurrentUser(c); !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	page, err := h.history.Query(c.UserContext(), c.Params("id"),
		parseIntQuery(c, "page", 0), parseIntQuery(c, "size", 10))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPageResponse(page, dto.NewHistoryEntryResponse))
}

// Delete DELETE /tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := session.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.lifecycle.Delete(c.UserContext(), actorOf(principal), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func actorOf(principal *session.Principal) service.Actor {
	return service.Actor{ID: principal.UserID, Role: principal.Role}
}

func parseIntQuery(c *fiber.Ctx, key string, def int) int {
	val := c.Query(key)
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}
