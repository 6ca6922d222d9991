// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a user account in the Wey application.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string         `gorm:"unique;not null" json:"email"`
	Name        string         `gorm:"not null" json:"name"`
	Password    string         `gorm:"not null" json:"-"`
	Avatar      string         `json:"avatar"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	IsStaff     bool           `gorm:"default:false" json:"is_staff"`
	IsSuperuser bool           `gorm:"default:false" json:"is_superuser"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// FriendsCount is not persisted; computed at query time
	FriendsCount int64 `gorm:"-" json:"friends_count"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
