package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Jeong-wonho/heremap-start/internal/adapters/here"
	"github.com/Jeong-wonho/heremap-start/internal/core/ports"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // bad_request, not_found, internal_error, ...
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusNotFound, "not_found", msg)
}

func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, "internal_error", msg)
}

func errBadGateway(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadGateway, "upstream_error", msg)
}

// errFrom maps a service error onto the envelope. Details stay in the log.
func errFrom(c *fiber.Ctx, err error, what string) error {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return errNotFound(c, what+" not found")
	case errors.Is(err, here.ErrUpstream):
		return errBadGateway(c, what+": upstream service unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		return newError(c, fiber.StatusGatewayTimeout, "timeout", what+": timed out")
	default:
		return errInternal(c, what+": internal error")
	}
}
