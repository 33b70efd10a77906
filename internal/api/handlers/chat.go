package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sentinel/sentinel-backend/internal/services"
)

// SessionCookie names the cookie carrying the caller's session ID.
const SessionCookie = "sentinel_session"

// Index serves the chat page. Every load mints a fresh session ID and
// discards whatever history the previous one had accumulated.
func Index(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if old := c.Cookies(SessionCookie); old != "" {
			// Best effort; a stale history only wastes store space.
			_ = svc.Chat.ResetSession(c.Context(), old)
		}

		c.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    uuid.New().String(),
			HTTPOnly: true,
			SameSite: "Lax",
		})

		return c.SendFile("./static/index.html")
	}
}

// Chat handles one chat round-trip. Every outcome is HTTP 200 with a
// reply string: the model's answer, a prompt for input, or an embedded
// error description.
func Chat(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Message string `json:"message"`
		}
		// A malformed body is treated as an empty message.
		_ = c.BodyParser(&req)

		sessionID := c.Cookies(SessionCookie)
		if sessionID == "" {
			sessionID = uuid.New().String()
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookie,
				Value:    sessionID,
				HTTPOnly: true,
				SameSite: "Lax",
			})
		}

		reply, err := svc.Chat.HandleMessage(c.Context(), sessionID, req.Message)
		if err != nil {
			reply = "Error: " + err.Error()
		}

		return c.JSON(fiber.Map{
			"reply": reply,
		})
	}
}

// GetStats returns the precomputed statistics bundle.
func GetStats(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.Stats)
	}
}
