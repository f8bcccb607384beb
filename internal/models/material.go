package models

import (
	"gorm.io/gorm"
)

// CourseMaterial is a file the instructor shares with participants of
// one offering. FileRef is an opaque reference into the upload store.
type CourseMaterial struct {
	gorm.Model
	EventDetailID uint   `json:"event_detail_id" gorm:"index"`
	UploadedByID  uint   `json:"uploaded_by_id"`
	UploadedBy    User   `json:"uploaded_by" gorm:"foreignKey:UploadedByID"`
	Title         string `json:"title"`
	FileRef       string `json:"file_ref"`
}
