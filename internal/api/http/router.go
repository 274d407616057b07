package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bloodconnect/internal/api/http/handlers"
	"github.com/spec-kit/bloodconnect/internal/auth"
	"github.com/spec-kit/bloodconnect/internal/domain"
	"github.com/spec-kit/bloodconnect/internal/service"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Profile        *handlers.ProfileHandler
	Donors         *handlers.DonorsHandler
	Requests       *handlers.RequestsHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	app.Get("/", cfg.Dashboard.Home)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Users.Logout)

	profile := app.Group("/profile", cfg.AuthMiddleware.Handle)
	profile.Get("/", cfg.Profile.View)
	profile.Put("/", cfg.Profile.Edit)

	donor := app.Group("/donor", cfg.AuthMiddleware.Handle)
	donor.Post("/register", auth.RequireUserType(service.MsgOnlyDonorsCanRegister, domain.UserTypeDonor), cfg.Donors.Register)
	donorOnly := auth.RequireUserType(service.MsgOnlyDonorsCanAccessPage, domain.UserTypeDonor)
	donor.Get("/profile", donorOnly, cfg.Donors.View)
	donor.Put("/profile", donorOnly, cfg.Donors.Edit)

	requests := app.Group("/requests")
	requests.Get("/", cfg.Requests.List)
	requests.Post("/", cfg.AuthMiddleware.Handle, cfg.Requests.Create)
	requests.Get("/:id", cfg.AuthMiddleware.Optional, cfg.Requests.Get)
	requests.Post("/:id/accept", cfg.AuthMiddleware.Handle, cfg.Requests.Accept)
	requests.Post("/:id/complete", cfg.AuthMiddleware.Handle, cfg.Requests.Complete)
	requests.Post("/:id/cancel", cfg.AuthMiddleware.Handle, cfg.Requests.Cancel)
}
