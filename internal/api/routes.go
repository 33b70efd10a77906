package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sentinel/sentinel-backend/internal/api/handlers"
	"github.com/sentinel/sentinel-backend/internal/services"
)

// SetupRoutes configures all routes
func SetupRoutes(app *fiber.App, svc *services.Services) {
	// Chat UI; loading the page resets the caller's session
	app.Get("/", handlers.Index(svc))
	app.Post("/chat", handlers.Chat(svc))
	app.Static("/static", "./static")

	// API routes
	api := app.Group("/api/v1")

	// Precomputed dataset statistics (read-only)
	api.Get("/stats", handlers.GetStats(svc))

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "sentinel-backend",
		})
	})
}
