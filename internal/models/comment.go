// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment represents a comment on a post in the Wey application.
type Comment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Body        string    `gorm:"type:text" json:"body"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by_id"`
	PostID      uuid.UUID `gorm:"type:uuid;not null;index" json:"post_id"`
	CreatedBy   User      `gorm:"foreignKey:CreatedByID" json:"created_by"`
	// CreatedAtFormatted is the relative display string for CreatedAt (computed)
	CreatedAtFormatted string         `gorm:"-" json:"created_at_formatted"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (c *Comment) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
