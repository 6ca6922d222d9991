// Package models contains data structures for the application's domain models.
package models

import (
	"bytes"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FriendshipStatus represents the status of a friendship request.
type FriendshipStatus string

const (
	// FriendshipStatusSent indicates an open, unresolved friendship request.
	FriendshipStatusSent FriendshipStatus = "sent"
	// FriendshipStatusAccepted indicates an accepted friendship request.
	FriendshipStatusAccepted FriendshipStatus = "accepted"
	// FriendshipStatusRejected indicates a rejected friendship request.
	FriendshipStatusRejected FriendshipStatus = "rejected"
)

// FriendshipRequest is a directional request from CreatedBy to CreatedFor.
// At most one request with status "sent" may exist per unordered user pair,
// in either direction.
type FriendshipRequest struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedByID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"created_by_id"`
	CreatedForID uuid.UUID        `gorm:"type:uuid;not null;index" json:"created_for_id"`
	Status       FriendshipStatus `gorm:"type:varchar(20);default:'sent';index" json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`

	// Relationships
	CreatedBy  User `gorm:"foreignKey:CreatedByID" json:"created_by"`
	CreatedFor User `gorm:"foreignKey:CreatedForID" json:"created_for,omitempty"`
}

// TableName specifies the table name for GORM
func (FriendshipRequest) TableName() string {
	return "friendship_requests"
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (r *FriendshipRequest) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// FriendEdge is a single row per unordered friend pair. UserLowID is always
// the smaller UUID by byte order, so a pair can never appear twice in
// reciprocal orderings.
type FriendEdge struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserLowID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_friend_edge_pair" json:"user_low_id"`
	UserHighID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_friend_edge_pair" json:"user_high_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (FriendEdge) TableName() string {
	return "friend_edges"
}

// BeforeCreate assigns the UUID primary key and swaps the pair into
// canonical (low, high) order so reciprocal inserts hit the same unique row.
func (e *FriendEdge) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if bytes.Compare(e.UserLowID[:], e.UserHighID[:]) > 0 {
		e.UserLowID, e.UserHighID = e.UserHighID, e.UserLowID
	}
	return nil
}

// OrderedPair returns the canonical (low, high) ordering of two user IDs.
func OrderedPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(a[:], b[:]) > 0 {
		return b, a
	}
	return a, b
}
