package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/campus-od-api/internal/config"
	"github.com/noah-isme/campus-od-api/internal/handler"
	"github.com/noah-isme/campus-od-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler    *handler.AuthHandler
	StudentHandler *handler.StudentHandler
	StaffHandler   *handler.StaffHandler
	Session        fiber.Handler
	StudentOnly    fiber.Handler
	StaffOnly      fiber.Handler
}

// Register wires the HTTP routes into the fiber application. Each protected
// group carries the session middleware plus its declared role requirement.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/v1/health", handler.HealthCheck(cfg))

	session := deps.Session
	if session == nil {
		session = func(c *fiber.Ctx) error { return c.Next() }
	}
	studentOnly := deps.StudentOnly
	if studentOnly == nil {
		studentOnly = func(c *fiber.Ctx) error { return c.Next() }
	}
	staffOnly := deps.StaffOnly
	if staffOnly == nil {
		staffOnly = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}

	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(api.Group("/students", session, studentOnly))
	}

	if deps.StaffHandler != nil {
		deps.StaffHandler.Register(api.Group("/staff", session, staffOnly))
	}
}
