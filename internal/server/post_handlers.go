package server

import (
	"wey/internal/models"

	"github.com/gofiber/fiber/v2"
)

type createPostRequest struct {
	Body string `json:"body"`
}

// GetFeed returns the authenticated user's feed: their own posts and
// their friends' posts, newest first.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	posts, err := s.feedService.ListFeed(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

// CreatePost creates a new post authored by the authenticated user
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), currentUserID(c), req.Body)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// ToggleLike likes a post, or removes the like when the user already
// liked it. Returns the resulting state and like count.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	postID, err := parseUUID(c, "id")
	if err != nil {
		return nil // response already written
	}

	result, err := s.postService.ToggleLike(c.UserContext(), currentUserID(c), postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
