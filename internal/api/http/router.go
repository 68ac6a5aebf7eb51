package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fixlane/repair-service/internal/api/http/handlers"
	"github.com/fixlane/repair-service/internal/auth"
	"github.com/fixlane/repair-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	Reviews        *handlers.ReviewsHandler
	Admin          *handlers.AdminHandler
	Staff          *handlers.StaffHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Get("/catalog", cfg.Tickets.Catalog)
	api.Post("/tickets", cfg.Tickets.CreateTicket)
	api.Post("/tickets/estimate", cfg.Tickets.Estimate)
	api.Post("/tickets/track", cfg.Tickets.Track)
	api.Get("/reviews", cfg.Reviews.ListReviews)
	api.Post("/reviews", cfg.Reviews.CreateReview)

	authGroup := app.Group("/auth")
	authGroup.Post("/staff/login", cfg.Staff.Login)
	authGroup.Post("/password/reset/request", cfg.Staff.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Staff.ConfirmPasswordReset)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, cfg.Staff.ChangePassword)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireStaffRole())
	admin.Get("/tickets", cfg.Admin.ListTickets)
	admin.Get("/tickets/:id", cfg.Admin.GetTicket)
	admin.Get("/summary", cfg.Admin.Summary)
	admin.Patch("/tickets/:id/stage",
		auth.RequireStaffRole(domain.StaffRoleTechnician, domain.StaffRoleManager, domain.StaffRoleAdmin),
		cfg.Admin.UpdateStage)
	admin.Get("/staff", auth.RequireStaffRole(domain.StaffRoleAdmin), cfg.Staff.ListStaff)
	admin.Post("/staff", auth.RequireStaffRole(domain.StaffRoleAdmin), cfg.Staff.CreateStaff)
}
