package server

import (
	"errors"
	"fmt"
	"strings"

	"wey/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// errResponseWritten signals that an error response was already written to the
// client and the handler should return nil to Fiber.
var errResponseWritten = errors.New("error response written")

// currentUserID returns the authenticated user's ID stored by AuthRequired.
func currentUserID(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals("userID").(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// parseUUID parses a route parameter as a UUID, writing a 400 response on
// failure and returning errResponseWritten.
func parseUUID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(fmt.Sprintf("Invalid %s", humanizeParam(param))))
		return uuid.Nil, errResponseWritten
	}
	return id, nil
}

// humanizeParam turns a camelCase route param name into words: "userId" -> "user id".
func humanizeParam(param string) string {
	var words []string
	start := 0
	for i, r := range param {
		if i > 0 && r >= 'A' && r <= 'Z' {
			words = append(words, param[start:i])
			start = i
		}
	}
	words = append(words, param[start:])
	return strings.ToLower(strings.Join(words, " "))
}

// respondServiceError maps an AppError returned from a service to the right
// HTTP status. Unknown errors become a 500.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		case "VALIDATION_ERROR", "CONFLICT":
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		case "UNAUTHORIZED":
			return models.RespondWithError(c, fiber.StatusUnauthorized, appErr)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError,
		models.NewInternalError(err))
}
