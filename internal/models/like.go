package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like represents a user's like on a post.
// The combination of CreatedByID and PostID must be unique; a second like by
// the same user removes the row instead of duplicating it.
type Like struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_like_user_post" json:"created_by_id"`
	PostID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_like_user_post" json:"post_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (l *Like) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
