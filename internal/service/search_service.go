package service

import (
	"context"
	"time"

	"wey/internal/models"
	"wey/internal/repository"

	"github.com/google/uuid"
)

// SearchService runs case-insensitive substring search over user names and
// post bodies.
type SearchService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
}

// NewSearchService returns a new SearchService.
func NewSearchService(userRepo repository.UserRepository, postRepo repository.PostRepository) *SearchService {
	return &SearchService{
		userRepo: userRepo,
		postRepo: postRepo,
	}
}

// SearchResult holds the matches of one search in both entity sets.
type SearchResult struct {
	Users []models.User  `json:"users"`
	Posts []*models.Post `json:"posts"`
}

// Search returns users whose name and posts whose body contain the query.
// An empty query matches everything.
func (s *SearchService) Search(ctx context.Context, viewerID uuid.UUID, query string) (*SearchResult, error) {
	users, err := s.userRepo.SearchByName(ctx, query)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.Search(ctx, query, viewerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, p := range posts {
		p.CreatedAtFormatted = models.TimeSince(p.CreatedAt, now)
	}

	if users == nil {
		users = []models.User{}
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return &SearchResult{Users: users, Posts: posts}, nil
}
