// Package apperr holds the error taxonomy shared by services and the HTTP
// boundary. Services return these; the fiber error handler translates them
// to fixed status codes. Anything else surfaces as a generic 500.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Kind int

const (
	NotFound Kind = iota
	Conflict
	Validation
	BadRequest
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case Validation:
		return "validation_error"
	default:
		return "bad_request"
	}
}

func (k Kind) Status() int {
	switch k {
	case NotFound:
		return fiber.StatusNotFound
	case Conflict:
		return fiber.StatusConflict
	case Validation:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusBadRequest
	}
}

// Violation is one field-level failure from the attribute validator.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Kind       Kind
	Message    string
	Violations []Violation
}

func (e *Error) Error() string { return e.Message }

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: NotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: Conflict, Message: fmt.Sprintf(format, args...)}
}

func BadRequestf(format string, args ...any) *Error {
	return &Error{Kind: BadRequest, Message: fmt.Sprintf(format, args...)}
}

// NewValidation carries the complete violation list, never just the first.
func NewValidation(message string, violations []Violation) *Error {
	return &Error{Kind: Validation, Message: message, Violations: violations}
}

// As unwraps err into *Error if it is one.
func As(err error) (*Error, bool) {
	var ae *Error
	ok := errors.As(err, &ae)
	return ae, ok
}
