package models

import (
	"time"

	"gorm.io/gorm"
)

// Requirement document statuses.
const (
	DocumentPendingUpload = "PENDING_UPLOAD"
	DocumentPendingReview = "PENDING_REVIEW"
	DocumentApproved      = "APPROVED"
	DocumentRejected      = "REJECTED"
)

// DocumentTransitions is the legal document state graph. Unlike the
// payment machine, a rejected document first clears back to
// PENDING_UPLOAD and needs a fresh submission before re-entering
// review.
var DocumentTransitions = map[string][]string{
	DocumentPendingUpload: {DocumentPendingReview},
	DocumentPendingReview: {DocumentApproved, DocumentRejected},
	DocumentApproved:      {},
	DocumentRejected:      {DocumentPendingUpload},
}

// RequirementDocument tracks one non-monetary requirement (e.g. an ID
// scan) of a registration. One row per (registration, doc type) pair,
// created at enrollment from the offering's requirement list.
type RequirementDocument struct {
	gorm.Model
	RegistrationID uint         `json:"registration_id" gorm:"uniqueIndex:idx_reg_doctype"`
	Registration   Registration `json:"-"`
	DocType        string       `json:"doc_type" gorm:"uniqueIndex:idx_reg_doctype"`
	Description    string       `json:"description"`
	FileRef        string       `json:"file_ref"`
	Status         string       `json:"status"`
	RejectComment  string       `json:"reject_comment"`
	SubmittedAt    *time.Time   `json:"submitted_at"`
	ReviewedByID   *uint        `json:"reviewed_by_id"`
	ReviewedAt     *time.Time   `json:"reviewed_at"`
}

func CanTransitionDocument(from, to string) bool {
	for _, s := range DocumentTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
