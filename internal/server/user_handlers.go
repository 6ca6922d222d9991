package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetMyProfile returns the authenticated user's own profile
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	user, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	friendsCount, err := s.friendRepo.CountFriends(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	user.FriendsCount = friendsCount

	return c.Status(fiber.StatusOK).JSON(user)
}

// GetUserPosts returns a user's profile together with their posts,
// newest first. Profiles are visible to any authenticated user.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	authorID, err := parseUUID(c, "id")
	if err != nil {
		return nil // response already written
	}

	page, err := s.feedService.Profile(c.UserContext(), currentUserID(c), authorID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(page)
}
