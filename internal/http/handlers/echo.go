package handlers

import (
	"github.com/gofiber/fiber/v2"

	"mirrorlab/internal/domain"
)

// Echo answers every request with the variant's fixed status and body. The
// request itself is never inspected.
func Echo(v domain.Variant) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Status(v.Status)
		if v.Body == "" {
			return nil
		}
		return c.SendString(v.Body)
	}
}
