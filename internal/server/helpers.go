package server

import (
	"errors"

	"devconnect/internal/models"
	"devconnect/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// statusForError maps service error codes to HTTP status codes. Anything
// that is not an AppError is a store or driver failure and surfaces as 500.
func statusForError(err error) int {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeNotFound:
			return fiber.StatusNotFound
		case models.CodeUnauthorized:
			return fiber.StatusUnauthorized
		case models.CodeValidation, models.CodeDuplicateLike:
			return fiber.StatusBadRequest
		}
	}
	return fiber.StatusInternalServerError
}

// respondServiceError records the error on the active span and writes the
// mapped JSON error response.
func (s *Server) respondServiceError(c *fiber.Ctx, err error) error {
	observability.RecordErrorInContext(c.UserContext(), err)
	return models.RespondWithError(c, statusForError(err), err)
}
