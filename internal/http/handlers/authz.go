package handlers

import (
	applog "prodcat/internal/log"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin gates write operations on the X-User-Role header supplied by
// the upstream gateway. An absent header is allowed (legacy/internal trust);
// any role other than "admin" is rejected.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := c.Get("X-User-Role")
		if role != "" && role != "admin" {
			applog.Security(c, "access.denied.admin", map[string]any{"role": role})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"detail":     "admin role required",
				"error_type": "forbidden",
			})
		}
		return c.Next()
	}
}
