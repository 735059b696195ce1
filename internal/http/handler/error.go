package handler

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"stmtapi/internal/batch"
	"stmtapi/internal/http/middleware"
	"stmtapi/internal/service"
)

// errorPayload is the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts the request_id stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// validationError rejects a request parameter before any service call.
// Handlers must render it with writeValidationError; returning it to Fiber
// would route it through the global error handler and lose the code.
type validationError struct {
	code    string
	message string
}

func (e *validationError) Error() string { return e.message }

// writeValidationError renders a parameter validation failure as a 400.
func writeValidationError(c *fiber.Ctx, err error) error {
	var verr *validationError
	if errors.As(err, &verr) {
		return writeError(c, fiber.StatusBadRequest, verr.code, verr.message)
	}
	return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "bad request")
}

// writeError writes a standardized JSON error response without leaking
// internal details.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps service-layer sentinel errors onto the error
// payload; anything unrecognized becomes a 500 without detail.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
	case errors.Is(err, service.ErrAlreadyProcessing):
		return writeError(c, fiber.StatusConflict, "ALREADY_PROCESSING", "document is already being processed")
	case errors.Is(err, service.ErrInvalidRating):
		return writeError(c, fiber.StatusBadRequest, "INVALID_RATING", "rating must be between 1 and 5")
	case errors.Is(err, service.ErrCommentTooLong):
		return writeError(c, fiber.StatusBadRequest, "COMMENT_TOO_LONG", "comment is too long")
	case errors.Is(err, batch.ErrJobActive):
		return writeError(c, fiber.StatusConflict, "JOB_ACTIVE", "a batch job is already running")
	case errors.Is(err, batch.ErrJobNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "batch job not found")
	case errors.Is(err, batch.ErrNoItems):
		return writeError(c, fiber.StatusBadRequest, "NO_DOCUMENTS", "no documents to process")
	case errors.Is(err, batch.ErrUnknownType):
		return writeError(c, fiber.StatusBadRequest, "INVALID_JOB_TYPE", "unknown batch job type")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes
// error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "FILE_TOO_LARGE", "uploaded file exceeds the size limit")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
