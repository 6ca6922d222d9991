package server

import (
	"wey/internal/models"

	"github.com/gofiber/fiber/v2"
)

type createCommentRequest struct {
	Body string `json:"body"`
}

// GetComments returns a post's comments, oldest first
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := parseUUID(c, "id")
	if err != nil {
		return nil // response already written
	}

	comments, err := s.postService.ListComments(c.UserContext(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(comments)
}

// CreateComment adds a comment to a post
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := parseUUID(c, "id")
	if err != nil {
		return nil // response already written
	}

	var req createCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.postService.AddComment(c.UserContext(), currentUserID(c), postID, req.Body)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}
