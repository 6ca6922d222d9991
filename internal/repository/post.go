// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"wey/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts and likes.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uuid.UUID, currentUserID uuid.UUID) (*models.Post, error)
	ListByAuthors(ctx context.Context, authorIDs []uuid.UUID, currentUserID uuid.UUID) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, currentUserID uuid.UUID) ([]*models.Post, error)
	Search(ctx context.Context, query string, currentUserID uuid.UUID) ([]*models.Post, error)
	ToggleLike(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	CountLikes(ctx context.Context, postID uuid.UUID) (int64, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uuid.UUID, currentUserID uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("CreatedBy").
		First(&post, "posts.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []uuid.UUID, currentUserID uuid.UUID) ([]*models.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var posts []*models.Post
	if err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("CreatedBy").
		Where("created_by_id IN ?", authorIDs).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID, currentUserID uuid.UUID) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("CreatedBy").
		Where("created_by_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Search(ctx context.Context, query string, currentUserID uuid.UUID) ([]*models.Post, error) {
	var posts []*models.Post
	like := "%" + query + "%"
	if err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("CreatedBy").
		Where("body ILIKE ?", like).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// applyPostDetails adds subqueries to fetch counts and liked status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uuid.UUID) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count"

	if currentUserID != uuid.Nil {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.created_by_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

// ToggleLike creates the like when absent and removes it when present,
// returning whether the post is liked after the call. The insert uses
// ON CONFLICT DO NOTHING against the (created_by_id, post_id) unique index so
// concurrent double-likes collapse into one row.
func (r *postRepository) ToggleLike(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (id, created_by_id, post_id, created_at)
		 VALUES (?, ?, ?, NOW())
		 ON CONFLICT (created_by_id, post_id) DO NOTHING`,
		uuid.New(), userID, postID,
	)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	// Row already existed: this call is an unlike.
	if err := r.db.WithContext(ctx).
		Where("created_by_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return false, nil
}

func (r *postRepository) CountLikes(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
