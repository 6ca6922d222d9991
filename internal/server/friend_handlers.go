package server

import (
	"wey/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFriendsAndRequests returns a user's profile, their friends, and,
// when the viewer is looking at their own profile, their pending
// incoming friend requests.
func (s *Server) GetFriendsAndRequests(c *fiber.Ctx) error {
	profileID, err := parseUUID(c, "userId")
	if err != nil {
		return nil // response already written
	}

	overview, err := s.friendshipService.FriendsAndRequests(c.UserContext(), currentUserID(c), profileID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(overview)
}

// SendFriendRequest creates a friend request to the given user
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	recipientID, err := parseUUID(c, "userId")
	if err != nil {
		return nil // response already written
	}

	request, err := s.friendshipService.SendRequest(c.UserContext(), currentUserID(c), recipientID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

// AcceptFriendRequest accepts a friend request from the given user
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	return s.resolveFriendRequest(c, models.FriendshipStatusAccepted)
}

// RejectFriendRequest rejects a friend request from the given user
func (s *Server) RejectFriendRequest(c *fiber.Ctx) error {
	return s.resolveFriendRequest(c, models.FriendshipStatusRejected)
}

func (s *Server) resolveFriendRequest(c *fiber.Ctx, decision models.FriendshipStatus) error {
	requesterID, err := parseUUID(c, "userId")
	if err != nil {
		return nil // response already written
	}

	request, err := s.friendshipService.ResolveRequest(c.UserContext(), currentUserID(c), requesterID, decision)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(request)
}
