package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/authz"
	"github.com/spec-kit/helpdesk/internal/service"
	"github.com/spec-kit/helpdesk/internal/session"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

// ActivityHandler serves the recent-activity feed to administrators.
type ActivityHandler struct {
	activity *service.ActivityService
}

// NewActivityHandler constructs handler.
func NewActivityHandler(activity *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// List GET /activity.
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	principal, ok := session.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if !authz.CapabilitiesOf(principal.Role).CanManageUsers {
		return apperrors.NewForbidden("role cannot view the activity feed")
	}

	limit := parseIntQuery(c, "limit", 50)
	feed, err := h.activity.Recent(c.UserContext(), int64(limit))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewActivityFeedResponse(feed))
}
