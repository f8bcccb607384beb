package workflow

import (
	"context"
	"log/slog"

	"github.com/ucampus/campus-events-api/internal/models"
	"github.com/ucampus/campus-events-api/internal/notifier"
	"gorm.io/gorm"
)

// Review decisions accepted by DecidePayment and DecideDocument.
const (
	DecisionApprove = "APPROVE"
	DecisionReject  = "REJECT"
)

// Authorizer resolves the single capability the workflow cares about:
// may this user approve or reject records for offerings of this event.
type Authorizer interface {
	CanValidate(ctx context.Context, userID, eventID uint) (bool, error)
}

// Service drives payments and requirement documents through their state
// machines and recomputes registration completion on every approval.
// Every transition is a conditional update guarded on the current
// status, so a losing concurrent caller gets ConcurrentModificationError
// instead of silently reapplying its change.
type Service struct {
	db       *gorm.DB
	authz    Authorizer
	notifier notifier.Notifier
	logger   *slog.Logger

	// Invoked between the state read and the guarded write when set;
	// lets tests interleave a competing writer deterministically.
	testSyncHook func()
}

func NewService(db *gorm.DB, authz Authorizer, n notifier.Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{db: db, authz: authz, notifier: n, logger: logger}
}

// loadRegistration fetches a registration with its offering, or a typed
// NotFoundError.
func (s *Service) loadRegistration(registrationID uint) (*models.Registration, error) {
	var reg models.Registration
	err := s.db.Preload("EventDetail").Preload("User").First(&reg, registrationID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, &NotFoundError{Entity: "registration", ID: registrationID}
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// requireValidator checks the caller's validation capability for the
// registration's event.
func (s *Service) requireValidator(ctx context.Context, callerID uint, reg *models.Registration) error {
	ok, err := s.authz.CanValidate(ctx, callerID, reg.EventDetail.EventID)
	if err != nil {
		return err
	}
	if !ok {
		return &ForbiddenError{Reason: "not a responsible for this event"}
	}
	return nil
}

func (s *Service) notify(fn func(n notifier.Notifier) error) {
	if s.notifier == nil {
		return
	}
	if err := fn(s.notifier); err != nil {
		s.logger.Warn("notification failed", "error", err)
	}
}
