package workflow

import (
	"context"
	"strings"
	"time"

	"github.com/ucampus/campus-events-api/internal/models"
	"github.com/ucampus/campus-events-api/internal/notifier"
	"gorm.io/gorm"
)

// CreatePayment attaches the monetary requirement to a fresh
// registration. Free offerings get a terminal NONE_REQUIRED record so
// completion aggregation treats every registration uniformly.
func (s *Service) CreatePayment(ctx context.Context, registrationID uint, amountCents int64, method string) (*models.Payment, error) {
	reg, err := s.loadRegistration(registrationID)
	if err != nil {
		return nil, err
	}

	payment := models.Payment{
		RegistrationID: reg.ID,
		AmountCents:    amountCents,
	}
	if reg.EventDetail.CostCents == 0 {
		payment.Status = models.PaymentNoneRequired
	} else {
		if !models.ValidPaymentMethod(method) {
			return nil, &ValidationError{Reason: "unknown payment method: " + method}
		}
		payment.Method = method
		payment.Status = models.PaymentPendingProof
	}

	if err := s.db.WithContext(ctx).Create(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// SubmitProof attaches (or re-attaches) a proof-of-payment file and
// moves the payment into review. Resubmission after a rejection is this
// same single step; there is no intermediate upload-pending stop as
// with documents.
func (s *Service) SubmitProof(ctx context.Context, callerID, registrationID uint, fileRef string) (*models.Payment, error) {
	if strings.TrimSpace(fileRef) == "" {
		return nil, &ValidationError{Reason: "file reference is required"}
	}

	reg, err := s.loadRegistration(registrationID)
	if err != nil {
		return nil, err
	}
	if reg.UserID != callerID {
		return nil, &ForbiddenError{Reason: "only the registration owner may submit proof"}
	}
	if reg.Completed {
		return nil, &AlreadyFinalizedError{RegistrationID: reg.ID}
	}

	payment, err := s.paymentFor(reg.ID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransitionPayment(payment.Status, models.PaymentPendingReview) {
		return nil, &InvalidTransitionError{Current: payment.Status, Action: "submit proof"}
	}

	if s.testSyncHook != nil {
		s.testSyncHook()
	}

	now := time.Now()
	res := s.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ? AND status = ?", payment.ID, payment.Status).
		Updates(map[string]interface{}{
			"status":         models.PaymentPendingReview,
			"proof_file_ref": fileRef,
			"reject_comment": "",
			"submitted_at":   now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, &ConcurrentModificationError{Entity: "payment", ID: payment.ID}
	}

	updated, err := s.paymentFor(reg.ID)
	if err != nil {
		return nil, err
	}
	s.notify(func(n notifier.Notifier) error {
		return n.PaymentSubmitted(reg.User, reg.EventDetail, *updated)
	})
	return updated, nil
}

// DecidePayment approves or rejects a payment under review. Rejection
// requires a non-blank comment; approval triggers the completion
// recompute for the owning registration.
func (s *Service) DecidePayment(ctx context.Context, callerID, registrationID uint, decision, comment string) (*models.Payment, error) {
	target, err := paymentTarget(decision)
	if err != nil {
		return nil, err
	}

	reg, err := s.loadRegistration(registrationID)
	if err != nil {
		return nil, err
	}
	if err := s.requireValidator(ctx, callerID, reg); err != nil {
		return nil, err
	}
	if reg.Completed {
		return nil, &AlreadyFinalizedError{RegistrationID: reg.ID}
	}

	payment, err := s.paymentFor(reg.ID)
	if err != nil {
		return nil, err
	}
	if target == models.PaymentRejected && strings.TrimSpace(comment) == "" {
		return nil, &ValidationError{Reason: "a rejection comment is required"}
	}
	if !models.CanTransitionPayment(payment.Status, target) {
		return nil, &InvalidTransitionError{Current: payment.Status, Action: "decide " + decision}
	}

	if s.testSyncHook != nil {
		s.testSyncHook()
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":         target,
		"reviewed_by_id": callerID,
		"reviewed_at":    now,
	}
	if target == models.PaymentRejected {
		updates["reject_comment"] = comment
	}
	res := s.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ? AND status = ?", payment.ID, payment.Status).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, &ConcurrentModificationError{Entity: "payment", ID: payment.ID}
	}

	updated, err := s.paymentFor(reg.ID)
	if err != nil {
		return nil, err
	}
	s.notify(func(n notifier.Notifier) error {
		return n.PaymentDecided(reg.User, reg.EventDetail, *updated)
	})

	if target == models.PaymentApproved {
		if err := s.recomputeCompletion(ctx, reg.ID); err != nil {
			return nil, err
		}
	}
	return updated, nil
}

func (s *Service) paymentFor(registrationID uint) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.Where("registration_id = ?", registrationID).First(&payment).Error
	if err == gorm.ErrRecordNotFound {
		return nil, &NotFoundError{Entity: "payment for registration", ID: registrationID}
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func paymentTarget(decision string) (string, error) {
	switch decision {
	case DecisionApprove:
		return models.PaymentApproved, nil
	case DecisionReject:
		return models.PaymentRejected, nil
	default:
		return "", &ValidationError{Reason: "unknown decision: " + decision}
	}
}
