package models

import (
	"time"

	"gorm.io/gorm"
)

// APIKey grants header-based access for service integrations (e.g. the
// finance office polling the validation queue). Keys act with the
// permissions of the owning user.
type APIKey struct {
	gorm.Model
	UserID     uint       `json:"user_id"`
	User       User       `json:"user"`
	Key        string     `json:"key" gorm:"uniqueIndex"`
	Name       string     `json:"name"`
	ExpiresAt  *time.Time `json:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
}
