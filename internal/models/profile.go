package models

import (
	"time"
)

// Profile is the public developer profile attached to a user. Exactly one
// profile may exist per user; Handle is the URL-facing unique name.
type Profile struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User           User      `gorm:"foreignKey:UserID" json:"user"`
	Handle         string    `gorm:"uniqueIndex;not null" json:"handle"`
	Bio            string    `gorm:"type:text" json:"bio"`
	Skills         []string  `gorm:"serializer:json" json:"skills"`
	Company        string    `json:"company"`
	Website        string    `json:"website"`
	Location       string    `json:"location"`
	GithubUsername string    `json:"github_username"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
