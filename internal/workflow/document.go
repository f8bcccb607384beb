package workflow

import (
	"context"
	"strings"
	"time"

	"github.com/ucampus/campus-events-api/internal/models"
	"github.com/ucampus/campus-events-api/internal/notifier"
	"gorm.io/gorm"
)

// CreateDocuments materializes one PENDING_UPLOAD record per document
// type the offering requires. Called once at enrollment.
func (s *Service) CreateDocuments(ctx context.Context, registrationID uint) ([]models.RequirementDocument, error) {
	reg, err := s.loadRegistration(registrationID)
	if err != nil {
		return nil, err
	}

	var required []models.EventRequirement
	if err := s.db.WithContext(ctx).Where("event_detail_id = ?", reg.EventDetailID).Find(&required).Error; err != nil {
		return nil, err
	}

	docs := make([]models.RequirementDocument, 0, len(required))
	for _, r := range required {
		doc := models.RequirementDocument{
			RegistrationID: reg.ID,
			DocType:        r.DocType,
			Description:    r.Description,
			Status:         models.DocumentPendingUpload,
		}
		if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	// A free offering with no requirements is complete on arrival.
	if err := s.recomputeCompletion(ctx, reg.ID); err != nil {
		return nil, err
	}
	return docs, nil
}

// SubmitDocument attaches a file to a requirement document and moves it
// into review. Only legal from PENDING_UPLOAD; a rejected document must
// be reopened first (see ReopenDocument).
func (s *Service) SubmitDocument(ctx context.Context, callerID, registrationID uint, docType, fileRef string) (*models.RequirementDocument, error) {
	if strings.TrimSpace(fileRef) == "" {
		return nil, &ValidationError{Reason: "file reference is required"}
	}

	reg, err := s.loadRegistration(registrationID)
	if err != nil {
		return nil, err
	}
	if reg.UserID != callerID {
		return nil, &ForbiddenError{Reason: "only the registration owner may submit documents"}
	}
	if reg.Completed {
		return nil, &AlreadyFinalizedError{RegistrationID: reg.ID}
	}

	doc, err := s.documentFor(reg.ID, docType)
	if err != nil {
		return nil, err
	}
	if doc.Status != models.DocumentPendingUpload {
		return nil, &InvalidTransitionError{Current: doc.Status, Action: "submit document"}
	}

	if s.testSyncHook != nil {
		s.testSyncHook()
	}

	now := time.Now()
	res := s.db.WithContext(ctx).Model(&models.RequirementDocument{}).
		Where("id = ? AND status = ?", doc.ID, doc.Status).
		Updates(map[string]interface{}{
			"status":       models.DocumentPendingReview,
			"file_ref":     fileRef,
			"submitted_at": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, &ConcurrentModificationError{Entity: "document", ID: doc.ID}
	}

	updated, err := s.documentFor(reg.ID, docType)
	if err != nil {
		return nil, err
	}
	s.notify(func(n notifier.Notifier) error {
		return n.DocumentSubmitted(reg.User, reg.EventDetail, *updated)
	})
	return updated, nil
}

// ReopenDocument clears a rejected document back to PENDING_UPLOAD so
// the student can submit a replacement file. This two-step resubmission
// is deliberate and differs from the payment machine, where a new proof
// goes straight back into review.
func (s *Service) ReopenDocument(ctx context.Context, callerID, registrationID uint, docType string) (*models.RequirementDocument, error) {
	reg, err := s.loadRegistration(registrationID)
	if err != nil {
		return nil, err
	}
	if reg.UserID != callerID {
		return nil, &ForbiddenError{Reason: "only the registration owner may reopen documents"}
	}
	if reg.Completed {
		return nil, &AlreadyFinalizedError{RegistrationID: reg.ID}
	}

	doc, err := s.documentFor(reg.ID, docType)
	if err != nil {
		return nil, err
	}
	if !models.CanTransitionDocument(doc.Status, models.DocumentPendingUpload) {
		return nil, &InvalidTransitionError{Current: doc.Status, Action: "reopen document"}
	}

	if s.testSyncHook != nil {
		s.testSyncHook()
	}

	res := s.db.WithContext(ctx).Model(&models.RequirementDocument{}).
		Where("id = ? AND status = ?", doc.ID, doc.Status).
		Updates(map[string]interface{}{
			"status":         models.DocumentPendingUpload,
			"file_ref":       "",
			"reject_comment": "",
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, &ConcurrentModificationError{Entity: "document", ID: doc.ID}
	}

	return s.documentFor(reg.ID, docType)
}

// DecideDocument approves or rejects a document under review. Rejections
// need a comment, same as payments.
func (s *Service) DecideDocument(ctx context.Context, callerID, registrationID uint, docType, decision, comment string) (*models.RequirementDocument, error) {
	target, err := documentTarget(decision)
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

	doc, err := s.documentFor(reg.ID, docType)
	if err != nil {
		return nil, err
	}
	if target == models.DocumentRejected && strings.TrimSpace(comment) == "" {
		return nil, &ValidationError{Reason: "a rejection comment is required"}
	}
	if !models.CanTransitionDocument(doc.Status, target) {
		return nil, &InvalidTransitionError{Current: doc.Status, Action: "decide " + decision}
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
	if target == models.DocumentRejected {
		updates["reject_comment"] = comment
	}
	res := s.db.WithContext(ctx).Model(&models.RequirementDocument{}).
		Where("id = ? AND status = ?", doc.ID, doc.Status).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, &ConcurrentModificationError{Entity: "document", ID: doc.ID}
	}

	updated, err := s.documentFor(reg.ID, docType)
	if err != nil {
		return nil, err
	}
	s.notify(func(n notifier.Notifier) error {
		return n.DocumentDecided(reg.User, reg.EventDetail, *updated)
	})

	if target == models.DocumentApproved {
		if err := s.recomputeCompletion(ctx, reg.ID); err != nil {
			return nil, err
		}
	}
	return updated, nil
}

func (s *Service) documentFor(registrationID uint, docType string) (*models.RequirementDocument, error) {
	var doc models.RequirementDocument
	err := s.db.Where("registration_id = ? AND doc_type = ?", registrationID, docType).First(&doc).Error
	if err == gorm.ErrRecordNotFound {
		return nil, &NotFoundError{Entity: "document " + docType + " for registration", ID: registrationID}
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func documentTarget(decision string) (string, error) {
	switch decision {
	case DecisionApprove:
		return models.DocumentApproved, nil
	case DecisionReject:
		return models.DocumentRejected, nil
	default:
		return "", &ValidationError{Reason: "unknown decision: " + decision}
	}
}
