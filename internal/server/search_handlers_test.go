package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wey/internal/models"
	"wey/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSearchHandler(t *testing.T) {
	viewer := uuid.New()

	userRepo := new(MockUserRepository)
	userRepo.On("SearchByName", mock.Anything, "ann").
		Return([]models.User{{ID: uuid.New(), Name: "Anna"}}, nil)

	postRepo := new(MockPostRepository)
	postRepo.On("Search", mock.Anything, "ann", viewer).
		Return([]*models.Post{{ID: uuid.New(), Body: "announcing", CreatedAt: time.Now()}}, nil)

	s := &Server{
		config:        testConfig(),
		searchService: service.NewSearchService(userRepo, postRepo),
	}
	app := fiber.New()
	app.Get("/api/search", withUserID(viewer), s.Search)

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=ann", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Users []models.User `json:"users"`
		Posts []models.Post `json:"posts"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Len(t, result.Users, 1)
	assert.Len(t, result.Posts, 1)
	userRepo.AssertExpectations(t)
	postRepo.AssertExpectations(t)
}

func TestSearchHandlerEmptyQuery(t *testing.T) {
	viewer := uuid.New()

	userRepo := new(MockUserRepository)
	userRepo.On("SearchByName", mock.Anything, "").Return([]models.User{}, nil)

	postRepo := new(MockPostRepository)
	postRepo.On("Search", mock.Anything, "", viewer).Return([]*models.Post{}, nil)

	s := &Server{
		config:        testConfig(),
		searchService: service.NewSearchService(userRepo, postRepo),
	}
	app := fiber.New()
	app.Get("/api/search", withUserID(viewer), s.Search)

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
