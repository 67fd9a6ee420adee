package models

import (
	"time"
)

// Post represents a feed post. AuthorName and AuthorAvatar are display
// fields captured verbatim from the creation payload, not joined from the
// user's live profile. UserID is the ownership key and never changes.
//
// Posts are hard-deleted: a post either exists or it does not, there is no
// tombstone state.
type Post struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Text   string `gorm:"type:text;not null" json:"text"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	// AuthorName and AuthorAvatar both carry the payload's name value;
	// the client does not send a separate avatar field.
	AuthorName   string    `json:"name"`
	AuthorAvatar string    `json:"avatar"`
	Likes        []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"likes"`
	CreatedAt    time.Time `json:"created_at"`
}
