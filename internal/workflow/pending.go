package workflow

import (
	"context"

	"github.com/ucampus/campus-events-api/internal/models"
	"gorm.io/gorm"
)

// PendingSet is the review queue for one validator.
type PendingSet struct {
	Payments  []models.Payment
	Documents []models.RequirementDocument
}

// PendingForValidator lists every payment and document awaiting review
// on events the caller may validate. Admins see the whole queue; staff
// see the events they are responsible for; students get Forbidden.
func (s *Service) PendingForValidator(ctx context.Context, callerID uint) (*PendingSet, error) {
	var caller models.User
	err := s.db.First(&caller, callerID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, &NotFoundError{Entity: "user", ID: callerID}
	}
	if err != nil {
		return nil, err
	}
	if !caller.IsStaff() {
		return nil, &ForbiddenError{Reason: "validation queue is staff only"}
	}

	set := &PendingSet{}

	payments := s.db.WithContext(ctx).Model(&models.Payment{}).
		Joins("JOIN registrations ON registrations.id = payments.registration_id").
		Joins("JOIN event_details ON event_details.id = registrations.event_detail_id").
		Where("payments.status = ?", models.PaymentPendingReview)
	if !caller.IsAdmin() {
		payments = payments.
			Joins("JOIN event_responsibles ON event_responsibles.event_id = event_details.event_id").
			Where("event_responsibles.user_id = ?", callerID)
	}
	if err := payments.Find(&set.Payments).Error; err != nil {
		return nil, err
	}

	docs := s.db.WithContext(ctx).Model(&models.RequirementDocument{}).
		Joins("JOIN registrations ON registrations.id = requirement_documents.registration_id").
		Joins("JOIN event_details ON event_details.id = registrations.event_detail_id").
		Where("requirement_documents.status = ?", models.DocumentPendingReview)
	if !caller.IsAdmin() {
		docs = docs.
			Joins("JOIN event_responsibles ON event_responsibles.event_id = event_details.event_id").
			Where("event_responsibles.user_id = ?", callerID)
	}
	if err := docs.Find(&set.Documents).Error; err != nil {
		return nil, err
	}

	return set, nil
}
