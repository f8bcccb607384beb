package workflow

import (
	"context"
	"time"

	"github.com/ucampus/campus-events-api/internal/models"
	"github.com/ucampus/campus-events-api/internal/notifier"
)

// IsRegistrationComplete reports the derived completion state.
func (s *Service) IsRegistrationComplete(ctx context.Context, registrationID uint) (bool, error) {
	reg, err := s.loadRegistration(registrationID)
	if err != nil {
		return false, err
	}
	return reg.Completed, nil
}

// recomputeCompletion re-derives the completion boolean from scratch
// after an approval. The full recompute trades a little redundant work
// for never holding a stale partial result. The flip to complete is
// guarded on completed = false, so the completion effect fires exactly
// once no matter how many approvals race past the threshold.
func (s *Service) recomputeCompletion(ctx context.Context, registrationID uint) error {
	reg, err := s.loadRegistration(registrationID)
	if err != nil {
		return err
	}
	if reg.Completed {
		return nil
	}

	complete, err := s.allRequirementsSatisfied(reg)
	if err != nil || !complete {
		return err
	}

	now := time.Now()
	res := s.db.WithContext(ctx).Model(&models.Registration{}).
		Where("id = ? AND completed = ?", reg.ID, false).
		Updates(map[string]interface{}{
			"completed":    true,
			"completed_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Another approval already flipped it; the effect has fired.
		return nil
	}

	s.logger.Info("registration completed", "registration_id", reg.ID, "user_id", reg.UserID)
	s.notify(func(n notifier.Notifier) error {
		return n.RegistrationCompleted(reg.User, reg.EventDetail)
	})
	return nil
}

// allRequirementsSatisfied checks every payment, every document, and
// coverage of the offering's required document types.
func (s *Service) allRequirementsSatisfied(reg *models.Registration) (bool, error) {
	var payments []models.Payment
	if err := s.db.Where("registration_id = ?", reg.ID).Find(&payments).Error; err != nil {
		return false, err
	}
	for _, p := range payments {
		if !p.Satisfied() {
			return false, nil
		}
	}

	var docs []models.RequirementDocument
	if err := s.db.Where("registration_id = ?", reg.ID).Find(&docs).Error; err != nil {
		return false, err
	}
	covered := make(map[string]bool, len(docs))
	for _, d := range docs {
		if d.Status != models.DocumentApproved {
			return false, nil
		}
		covered[d.DocType] = true
	}

	var required []models.EventRequirement
	if err := s.db.Where("event_detail_id = ?", reg.EventDetailID).Find(&required).Error; err != nil {
		return false, err
	}
	for _, r := range required {
		if !covered[r.DocType] {
			return false, nil
		}
	}
	return true, nil
}
