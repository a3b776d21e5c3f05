package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"exampleapi/internal/http/middleware"
	"exampleapi/internal/service"
	"exampleapi/internal/validator"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	})
}

func writeValidationError(c *fiber.Ctx, verr *validator.ValidationError) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    "VALIDATION_ERROR",
			Message: "request validation failed",
			Fields:  verr.Errors,
		},
	})
}

// writeServiceError maps a service error onto the response envelope.
// Unexpected errors are recorded for the request log and answered with a generic 500.
func writeServiceError(c *fiber.Ctx, err error) error {
	var verr *validator.ValidationError
	switch {
	case errors.As(err, &verr):
		return writeValidationError(c, verr)
	case errors.Is(err, service.ErrMalformedInput):
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, service.ErrInvalidReference):
		return writeError(c, fiber.StatusBadRequest, "INVALID_REFERENCE", "referenced resource does not exist")
	case errors.Is(err, service.ErrInvalidValue):
		return writeError(c, fiber.StatusBadRequest, "INVALID_VALUE", "a field value is out of range for its column")
	case errors.Is(err, service.ErrConflict):
		return writeError(c, fiber.StatusConflict, "CONFLICT", "resource already exists")
	default:
		c.Locals(middleware.ErrorLocalKey, err.Error())
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// clientErrorCodes names the Fiber client errors that can reach ErrorHandler.
var clientErrorCodes = map[int]string{
	fiber.StatusBadRequest:                  "BAD_REQUEST",
	fiber.StatusNotFound:                    "NOT_FOUND",
	fiber.StatusMethodNotAllowed:            "METHOD_NOT_ALLOWED",
	fiber.StatusRequestTimeout:              "REQUEST_TIMEOUT",
	fiber.StatusRequestEntityTooLarge:       "PAYLOAD_TOO_LARGE",
	fiber.StatusUnsupportedMediaType:        "UNSUPPORTED_MEDIA_TYPE",
	fiber.StatusRequestHeaderFieldsTooLarge: "HEADERS_TOO_LARGE",
	fiber.StatusTooManyRequests:             "TOO_MANY_REQUESTS",
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
// Only 5xx errors are recorded for the request log.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		if status >= fiber.StatusBadRequest && status < fiber.StatusInternalServerError {
			code, ok := clientErrorCodes[status]
			if !ok {
				code = "CLIENT_ERROR"
			}
			return writeError(c, status, code, strings.ToLower(utils.StatusMessage(status)))
		}

		c.Locals(middleware.ErrorLocalKey, err.Error())
		return writeError(c, status, "INTERNAL_ERROR", "internal server error")
	}
}
