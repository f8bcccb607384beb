package models

import (
	"time"

	"gorm.io/gorm"
)

// Registration is one user's enrollment in one event offering.
// Completed is derived: it flips to true when every payment and
// requirement document attached to it is approved (or not required),
// and never flips back.
type Registration struct {
	gorm.Model
	UserID        uint        `json:"user_id" gorm:"uniqueIndex:idx_user_detail"`
	EventDetailID uint        `json:"event_detail_id" gorm:"uniqueIndex:idx_user_detail"`
	User          User        `json:"user" gorm:"foreignKey:UserID"`
	EventDetail   EventDetail `json:"event_detail" gorm:"foreignKey:EventDetailID"`
	Completed     bool        `json:"completed"`
	CompletedAt   *time.Time  `json:"completed_at"`
}
