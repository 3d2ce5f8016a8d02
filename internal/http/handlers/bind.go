package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"prodcat/internal/apperr"
)

var validateReq = validator.New()

// bind parses the JSON body into dst and checks its validate tags. Shape
// failures carry the full field list, same as attribute validation failures.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperr.BadRequestf("malformed request body")
	}
	if err := validateReq.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			violations := make([]apperr.Violation, 0, len(verrs))
			for _, fe := range verrs {
				violations = append(violations, apperr.Violation{
					Field:   fe.Field(),
					Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
				})
			}
			return apperr.NewValidation("request failed validation", violations)
		}
		return apperr.BadRequestf("invalid request")
	}
	return nil
}
