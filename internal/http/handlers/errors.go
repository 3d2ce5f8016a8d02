package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"prodcat/internal/apperr"
	applog "prodcat/internal/log"
)

// ErrorHandler translates the service-layer taxonomy into fixed status codes
// (404/409/422/400) and hides everything unclassified behind a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if ae, ok := apperr.As(err); ok {
		body := fiber.Map{"detail": ae.Message, "error_type": ae.Kind.String()}
		if ae.Kind == apperr.Validation {
			body["errors"] = ae.Violations
		}
		return c.Status(ae.Kind.Status()).JSON(body)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"detail": fe.Message, "error_type": "bad_request"})
	}
	applog.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"detail": "internal server error", "error_type": "internal_error",
	})
}
