package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Dee126/DSAR-sub009/internal/api/http/handlers"
	"github.com/Dee126/DSAR-sub009/internal/auth"
	"github.com/Dee126/DSAR-sub009/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Cases          *handlers.CasesHandler
	Reports        *handlers.ReportsHandler
	Holidays       *handlers.HolidaysHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole())

	cases := protected.Group("/cases")
	cases.Post("", cfg.Cases.CreateCase)
	cases.Get("", cfg.Cases.ListCases)
	cases.Get("/:id", cfg.Cases.GetCase)
	cases.Post("/:id/transition", cfg.Cases.Transition)
	cases.Post("/:id/extend", auth.RequireRole(domain.ActorRoleAdmin), cfg.Cases.Extend)

	reports := protected.Group("/reports")
	reports.Get("/summary", cfg.Reports.Summary)
	reports.Get("/export", cfg.Reports.Export)

	holidays := protected.Group("/holidays")
	holidays.Get("", cfg.Holidays.List)
	holidays.Post("", auth.RequireRole(domain.ActorRoleAdmin), cfg.Holidays.Create)
	holidays.Delete("/:date", auth.RequireRole(domain.ActorRoleAdmin), cfg.Holidays.Delete)
}
