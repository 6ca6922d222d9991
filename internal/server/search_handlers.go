package server

import (
	"github.com/gofiber/fiber/v2"
)

// Search finds users by name and posts by body matching the query as a
// case-insensitive substring. An empty query matches everything.
func (s *Server) Search(c *fiber.Ctx) error {
	query := c.Query("q")

	result, err := s.searchService.Search(c.UserContext(), currentUserID(c), query)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
