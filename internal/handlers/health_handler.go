package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Health reports liveness without exposing host details.
func Health(service string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"service": service,
			"time":    time.Now().Format(time.RFC3339),
		})
	}
}
