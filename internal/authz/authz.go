package authz

import (
	"context"

	"github.com/ucampus/campus-events-api/internal/models"
	"gorm.io/gorm"
)

// Service is the single place role and ownership capabilities are
// resolved. Handlers and the validation workflow ask it yes/no
// questions instead of re-deriving authorization from role strings.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CanValidate reports whether the user may approve or reject payments
// and documents for offerings of the given event: admins always, staff
// only when listed as a responsible of the event.
func (s *Service) CanValidate(ctx context.Context, userID, eventID uint) (bool, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	if user.IsAdmin() {
		return true, nil
	}
	if !user.IsStaff() {
		return false, nil
	}

	var count int64
	err := s.db.WithContext(ctx).Table("event_responsibles").
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CanInstruct reports whether the user may upload materials and record
// grades or attendance for the given offering.
func (s *Service) CanInstruct(ctx context.Context, userID, eventDetailID uint) (bool, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	if user.IsAdmin() {
		return true, nil
	}
	if !user.IsStaff() {
		return false, nil
	}

	var detail models.EventDetail
	if err := s.db.WithContext(ctx).First(&detail, eventDetailID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	return detail.InstructorID != nil && *detail.InstructorID == userID, nil
}
