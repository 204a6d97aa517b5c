package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk/internal/session"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Tickets           *handlers.TicketsHandler
	Users             *handlers.UsersHandler
	Activity          *handlers.ActivityHandler
	SessionMiddleware *session.Middleware
}

// RegisterRoutes wires HTTP routes. Capability checks live in the services;
// the session middleware only authenticates.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	tickets := app.Group("/tickets", cfg.SessionMiddleware.Handle)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Patch("/:id/status", cfg.Tickets.ChangeStatus)
	tickets.Patch("/:id/assign/:techId", cfg.Tickets.Assign)
	tickets.Get("/:id/history", cfg.Tickets.History)
	tickets.Delete("/:id", cfg.Tickets.Delete)

	users := app.Group("/users", cfg.SessionMiddleware.Handle)
	users.Get("/", cfg.Users.List)
	users.Delete("/:id", cfg.Users.Delete)

	app.Get("/activity", cfg.SessionMiddleware.Handle, cfg.Activity.List)
}
