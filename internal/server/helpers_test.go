package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"wey/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param string
		want  string
	}{
		{"id", "id"},
		{"userId", "user id"},
		{"postCommentId", "post comment id"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, humanizeParam(tt.param))
	}
}

func TestParseUUID(t *testing.T) {
	app := fiber.New()
	app.Get("/users/:userId", func(c *fiber.Ctx) error {
		id, err := parseUUID(c, "userId")
		if err != nil {
			return nil
		}
		return c.JSON(fiber.Map{"id": id.String()})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/not-a-uuid", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/users/7f0c74b4-18b9-47a5-a9f1-6f3c8f7f0001", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRespondServiceErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"Not Found", models.NewNotFoundError("User", "x"), http.StatusNotFound},
		{"Validation", models.NewValidationError("bad input"), http.StatusBadRequest},
		{"Conflict", models.NewConflictError("already there"), http.StatusBadRequest},
		{"Unauthorized", models.NewUnauthorizedError("no credentials"), http.StatusUnauthorized},
		{"Unknown", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return respondServiceError(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}
