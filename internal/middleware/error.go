package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jobnexus/internal/domain"
	"jobnexus/internal/pkg/validate"
)

type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	TraceID string            `json:"trace_id,omitempty"`
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fields map[string]string
	var errCode string

	var fe *fiber.Error
	var ve *validate.ValidationError
	switch {
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
	case errors.As(err, &ve):
		code = fiber.StatusBadRequest
		message = "Validation failed"
		fields = ve.Errors
		errCode = "VALIDATION_ERROR"
	default:
		if mapped := FromDomain(err); mapped != nil {
			code = mapped.Code
			message = mapped.Message
		}
	}

	if errCode == "" {
		errCode = errorCode(code)
	}
	return c.Status(code).JSON(ErrorResponse{
		Code:    errCode,
		Message: message,
		Fields:  fields,
		TraceID: uuid.New().String()[:8],
	})
}

// FromDomain maps domain sentinel errors to HTTP errors. It returns nil for
// anything it does not recognise.
func FromDomain(err error) *fiber.Error {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return Unauthorized("Authentication required")
	case errors.Is(err, domain.ErrForbidden):
		return Forbidden("Insufficient permissions for this operation")
	case errors.Is(err, domain.ErrNotFound):
		return NotFound("Resource not found")
	case errors.Is(err, domain.ErrMissingNotificationID):
		return BadRequest("Notification ID required")
	case errors.Is(err, domain.ErrInvalidPassword):
		return BadRequest("Password is incorrect")
	case errors.Is(err, domain.ErrConfirmationMismatch):
		return BadRequest("Please type DELETE to confirm")
	case errors.Is(err, domain.ErrConflict):
		return Conflict("Resource already exists")
	case errors.Is(err, domain.ErrValidation):
		return BadRequest("Validation failed")
	}
	return nil
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusConflict:
		return "CONFLICT"
	}
	return "INTERNAL_ERROR"
}

func NewError(code int, message string) *fiber.Error {
	return fiber.NewError(code, message)
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}

func Conflict(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusConflict, message)
}
