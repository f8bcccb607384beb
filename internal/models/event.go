package models

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	gorm.Model
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	// Responsibles may approve or reject payments and requirement
	// documents for every offering of this event.
	Responsibles []User        `json:"responsibles" gorm:"many2many:event_responsibles;"`
	Details      []EventDetail `json:"details" gorm:"foreignKey:EventID"`
}

// EventDetail is one offering (course edition, workshop session) of an
// event. Cost is in cents; zero means the offering is free and no proof
// of payment is ever requested.
type EventDetail struct {
	gorm.Model
	EventID      uint               `json:"event_id"`
	Event        Event              `json:"-"`
	Title        string             `json:"title"`
	CostCents    int64              `json:"cost_cents"`
	Capacity     int                `json:"capacity"`
	InstructorID *uint              `json:"instructor_id"`
	Instructor   *User              `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`
	Requirements []EventRequirement `json:"requirements" gorm:"foreignKey:EventDetailID"`
}

// EventRequirement declares one document type every registration on the
// offering must get approved (e.g. "id_scan").
type EventRequirement struct {
	gorm.Model
	EventDetailID uint   `json:"event_detail_id" gorm:"uniqueIndex:idx_detail_doctype"`
	DocType       string `json:"doc_type" gorm:"uniqueIndex:idx_detail_doctype"`
	Description   string `json:"description"`
}
