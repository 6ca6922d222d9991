package service

import (
	"context"

	"wey/internal/models"
	"wey/internal/repository"

	"github.com/google/uuid"
)

// FriendshipService provides friend-request and friendship business logic.
type FriendshipService struct {
	friendRepo repository.FriendshipRepository
	userRepo   repository.UserRepository
}

// NewFriendshipService returns a new FriendshipService.
func NewFriendshipService(friendRepo repository.FriendshipRepository, userRepo repository.UserRepository) *FriendshipService {
	return &FriendshipService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// FriendsOverview is the friends page for a profile: the profile user, their
// friend set and, for the owner only, the pending requests addressed to them.
type FriendsOverview struct {
	User     *models.User               `json:"user"`
	Friends  []models.User              `json:"friends"`
	Requests []models.FriendshipRequest `json:"requests"`
}

// SendRequest creates an open friend request from requester to the recipient.
func (s *FriendshipService) SendRequest(ctx context.Context, requesterID, recipientID uuid.UUID) (*models.FriendshipRequest, error) {
	if requesterID == recipientID {
		return nil, models.NewValidationError("Cannot send a friend request to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, recipientID); err != nil {
		return nil, err
	}

	open, err := s.friendRepo.GetOpenRequestBetween(ctx, requesterID, recipientID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		if open.CreatedByID == requesterID {
			return nil, models.NewConflictError("Friend request already sent")
		}
		return nil, models.NewConflictError("You already have a pending friend request from this user")
	}

	friends, err := s.friendRepo.AreFriends(ctx, requesterID, recipientID)
	if err != nil {
		return nil, err
	}
	if friends {
		return nil, models.NewConflictError("You are already friends")
	}

	request := &models.FriendshipRequest{
		CreatedByID:  requesterID,
		CreatedForID: recipientID,
		Status:       models.FriendshipStatusSent,
	}
	if err := s.friendRepo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	return s.friendRepo.GetRequestByID(ctx, request.ID)
}

// ResolveRequest accepts or rejects the request sent by requesterID to the
// resolver. The lookup is by the user pair, not the request id, and does not
// filter on status: an already resolved request can be resolved again.
func (s *FriendshipService) ResolveRequest(ctx context.Context, resolverID, requesterID uuid.UUID, decision models.FriendshipStatus) (*models.FriendshipRequest, error) {
	if decision != models.FriendshipStatusAccepted && decision != models.FriendshipStatusRejected {
		return nil, models.NewValidationError("Decision must be accepted or rejected")
	}

	request, err := s.friendRepo.GetRequestBetween(ctx, resolverID, requesterID)
	if err != nil {
		return nil, err
	}

	if decision == models.FriendshipStatusAccepted {
		if err := s.friendRepo.Accept(ctx, request); err != nil {
			return nil, err
		}
	} else {
		if err := s.friendRepo.UpdateStatus(ctx, request.ID, models.FriendshipStatusRejected); err != nil {
			return nil, err
		}
	}

	request.Status = decision
	return request, nil
}

// FriendsAndRequests returns the profile user's friend set, plus the pending
// requests addressed to the profile. The friend list is visible to any
// viewer; incoming requests are only ever shown to the profile owner.
func (s *FriendshipService) FriendsAndRequests(ctx context.Context, viewerID, profileID uuid.UUID) (*FriendsOverview, error) {
	user, err := s.userRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	friends, err := s.friendRepo.GetFriends(ctx, profileID)
	if err != nil {
		return nil, err
	}
	user.FriendsCount = int64(len(friends))

	requests := []models.FriendshipRequest{}
	if viewerID == profileID {
		requests, err = s.friendRepo.GetPendingRequests(ctx, profileID)
		if err != nil {
			return nil, err
		}
	}

	if friends == nil {
		friends = []models.User{}
	}
	return &FriendsOverview{
		User:     user,
		Friends:  friends,
		Requests: requests,
	}, nil
}
