package service

import (
	"context"
	"time"

	"wey/internal/models"
	"wey/internal/repository"

	"github.com/google/uuid"
)

// PostService provides post, like and comment business logic.
type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// LikeResult reports the like state of a post after a toggle.
type LikeResult struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

// CreatePost creates a post for the author. An empty body is allowed.
func (s *PostService) CreatePost(ctx context.Context, authorID uuid.UUID, body string) (*models.Post, error) {
	post := &models.Post{
		Body:        body,
		CreatedByID: authorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	created, err := s.postRepo.GetByID(ctx, post.ID, authorID)
	if err != nil {
		return nil, err
	}
	created.CreatedAtFormatted = models.TimeSince(created.CreatedAt, time.Now())
	return created, nil
}

// ToggleLike likes the post when the user has not liked it yet and removes
// the like otherwise. The returned count reflects the state after the toggle.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uuid.UUID) (*LikeResult, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, uuid.Nil); err != nil {
		return nil, err
	}

	liked, err := s.postRepo.ToggleLike(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	count, err := s.postRepo.CountLikes(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &LikeResult{Liked: liked, LikesCount: count}, nil
}

// AddComment creates a comment on the post.
func (s *PostService) AddComment(ctx context.Context, authorID, postID uuid.UUID, body string) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, uuid.Nil); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Body:        body,
		CreatedByID: authorID,
		PostID:      postID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	created, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	created.CreatedAtFormatted = models.TimeSince(created.CreatedAt, time.Now())
	return created, nil
}

// ListComments returns the post's comments oldest first.
func (s *PostService) ListComments(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, uuid.Nil); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, c := range comments {
		c.CreatedAtFormatted = models.TimeSince(c.CreatedAt, now)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return comments, nil
}
