package models

import (
	"time"

	"gorm.io/gorm"
)

// Grade is the instructor's final score for one registration.
type Grade struct {
	gorm.Model
	RegistrationID uint         `json:"registration_id" gorm:"uniqueIndex"`
	Registration   Registration `json:"-"`
	Score          float64      `json:"score"`
	Comment        string       `json:"comment"`
	RecordedByID   uint         `json:"recorded_by_id"`
}

// Attendance is one session's presence mark for one registration.
type Attendance struct {
	gorm.Model
	RegistrationID uint      `json:"registration_id" gorm:"uniqueIndex:idx_reg_session"`
	SessionDate    time.Time `json:"session_date" gorm:"uniqueIndex:idx_reg_session"`
	Present        bool      `json:"present"`
	RecordedByID   uint      `json:"recorded_by_id"`
}
