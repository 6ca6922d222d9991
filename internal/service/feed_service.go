package service

import (
	"context"
	"time"

	"wey/internal/models"
	"wey/internal/repository"

	"github.com/google/uuid"
)

// FeedService composes the timelines visible to a viewer.
type FeedService struct {
	postRepo   repository.PostRepository
	friendRepo repository.FriendshipRepository
	userRepo   repository.UserRepository
}

// NewFeedService returns a new FeedService.
func NewFeedService(postRepo repository.PostRepository, friendRepo repository.FriendshipRepository, userRepo repository.UserRepository) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// ProfilePage is a user's public profile: the user and all their posts.
type ProfilePage struct {
	User  *models.User   `json:"user"`
	Posts []*models.Post `json:"posts"`
}

// ListFeed returns the posts authored by the viewer and the viewer's friends,
// newest first.
func (s *FeedService) ListFeed(ctx context.Context, viewerID uuid.UUID) ([]*models.Post, error) {
	friends, err := s.friendRepo.GetFriends(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]uuid.UUID, 0, len(friends)+1)
	authorIDs = append(authorIDs, viewerID)
	for _, f := range friends {
		authorIDs = append(authorIDs, f.ID)
	}

	posts, err := s.postRepo.ListByAuthors(ctx, authorIDs, viewerID)
	if err != nil {
		return nil, err
	}

	formatPostTimestamps(posts)
	if posts == nil {
		posts = []*models.Post{}
	}
	return posts, nil
}

// Profile returns a user's posts regardless of friendship. Profiles are
// public within the authenticated API.
func (s *FeedService) Profile(ctx context.Context, viewerID, authorID uuid.UUID) (*ProfilePage, error) {
	user, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	count, err := s.friendRepo.CountFriends(ctx, authorID)
	if err != nil {
		return nil, err
	}
	user.FriendsCount = count

	posts, err := s.postRepo.ListByAuthor(ctx, authorID, viewerID)
	if err != nil {
		return nil, err
	}

	formatPostTimestamps(posts)
	if posts == nil {
		posts = []*models.Post{}
	}
	return &ProfilePage{User: user, Posts: posts}, nil
}

func formatPostTimestamps(posts []*models.Post) {
	now := time.Now()
	for _, p := range posts {
		p.CreatedAtFormatted = models.TimeSince(p.CreatedAt, now)
	}
}
