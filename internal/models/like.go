package models

import (
	"time"
)

// Like represents a user's like on a post. The unique (post_id, user_id)
// index closes the lost-update race between concurrent like requests at the
// store boundary; the service still rejects duplicates before writing.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_user" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
