// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"wey/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FriendshipRepository defines persistence operations for friendship requests
// and the symmetric friend-edge set.
type FriendshipRepository interface {
	CreateRequest(ctx context.Context, request *models.FriendshipRequest) error
	GetRequestByID(ctx context.Context, id uuid.UUID) (*models.FriendshipRequest, error)
	GetOpenRequestBetween(ctx context.Context, userID1, userID2 uuid.UUID) (*models.FriendshipRequest, error)
	GetRequestBetween(ctx context.Context, createdForID, createdByID uuid.UUID) (*models.FriendshipRequest, error)
	GetPendingRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendshipRequest, error)
	UpdateStatus(ctx context.Context, requestID uuid.UUID, status models.FriendshipStatus) error
	Accept(ctx context.Context, request *models.FriendshipRequest) error
	GetFriends(ctx context.Context, userID uuid.UUID) ([]models.User, error)
	CountFriends(ctx context.Context, userID uuid.UUID) (int64, error)
	AreFriends(ctx context.Context, userID1, userID2 uuid.UUID) (bool, error)
}

// friendshipRepository implements FriendshipRepository
type friendshipRepository struct {
	db *gorm.DB
}

// NewFriendshipRepository creates a new friendship repository
func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &friendshipRepository{db: db}
}

// CreateRequest inserts an open request. The partial unique index on
// (pair, status = 'sent') is the authoritative guard against duplicate open
// requests: two concurrent sends for the same pair resolve here, not in the
// service's preliminary checks.
func (r *friendshipRepository) CreateRequest(ctx context.Context, request *models.FriendshipRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Friend request already sent")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendshipRepository) GetRequestByID(ctx context.Context, id uuid.UUID) (*models.FriendshipRequest, error) {
	var request models.FriendshipRequest
	if err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("CreatedFor").
		First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Friendship request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

// GetOpenRequestBetween returns the open (sent) request between two users in
// either direction, or nil when none exists.
func (r *friendshipRepository) GetOpenRequestBetween(ctx context.Context, userID1, userID2 uuid.UUID) (*models.FriendshipRequest, error) {
	var request models.FriendshipRequest
	if err := r.db.WithContext(ctx).
		Where("status = ?", models.FriendshipStatusSent).
		Where("(created_by_id = ? AND created_for_id = ?) OR (created_by_id = ? AND created_for_id = ?)",
			userID1, userID2, userID2, userID1).
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No open request exists
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

// GetRequestBetween finds the request addressed to createdForID by createdByID.
// Deliberately no status predicate: a resolved request still matches, so it
// can be re-resolved.
func (r *friendshipRepository) GetRequestBetween(ctx context.Context, createdForID, createdByID uuid.UUID) (*models.FriendshipRequest, error) {
	var request models.FriendshipRequest
	if err := r.db.WithContext(ctx).
		Where("created_for_id = ? AND created_by_id = ?", createdForID, createdByID).
		Preload("CreatedBy").
		Preload("CreatedFor").
		Order("created_at DESC").
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Friendship request", createdByID)
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

func (r *friendshipRepository) GetPendingRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendshipRequest, error) {
	var requests []models.FriendshipRequest

	// Find open requests where the user is the recipient
	if err := r.db.WithContext(ctx).
		Where("created_for_id = ? AND status = ?", userID, models.FriendshipStatusSent).
		Preload("CreatedBy").
		Preload("CreatedFor").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return requests, nil
}

func (r *friendshipRepository) UpdateStatus(ctx context.Context, requestID uuid.UUID, status models.FriendshipStatus) error {
	if err := r.db.WithContext(ctx).
		Model(&models.FriendshipRequest{}).
		Where("id = ?", requestID).
		Update("status", status).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Accept marks the request accepted and inserts the symmetric friend edge in
// one transaction. The edge insert is idempotent: re-accepting an already
// accepted request leaves the single canonical edge row in place.
func (r *friendshipRepository) Accept(ctx context.Context, request *models.FriendshipRequest) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.FriendshipRequest{}).
			Where("id = ?", request.ID).
			Update("status", models.FriendshipStatusAccepted).Error; err != nil {
			return err
		}

		low, high := models.OrderedPair(request.CreatedByID, request.CreatedForID)
		edge := &models.FriendEdge{UserLowID: low, UserHighID: high}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(edge).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendshipRepository) GetFriends(ctx context.Context, userID uuid.UUID) ([]models.User, error) {
	var users []models.User

	// Find the opposite side of every edge touching the user
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN friend_edges fe ON (users.id = fe.user_low_id OR users.id = fe.user_high_id)").
		Where("(fe.user_low_id = ? OR fe.user_high_id = ?) AND users.id != ?",
			userID, userID, userID).
		Where("users.deleted_at IS NULL").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return users, nil
}

// CountFriends counts the edges whose far side is a live user, so the count
// always agrees with GetFriends.
func (r *friendshipRepository) CountFriends(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN friend_edges fe ON (users.id = fe.user_low_id OR users.id = fe.user_high_id)").
		Where("(fe.user_low_id = ? OR fe.user_high_id = ?) AND users.id != ?",
			userID, userID, userID).
		Where("users.deleted_at IS NULL").
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *friendshipRepository) AreFriends(ctx context.Context, userID1, userID2 uuid.UUID) (bool, error) {
	low, high := models.OrderedPair(userID1, userID2)
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FriendEdge{}).
		Where("user_low_id = ? AND user_high_id = ?", low, high).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
