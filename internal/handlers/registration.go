package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/ucampus/campus-events-api/internal/auth"
	"github.com/ucampus/campus-events-api/internal/models"
	"github.com/ucampus/campus-events-api/internal/orders"
	"github.com/ucampus/campus-events-api/internal/workflow"
	"gorm.io/gorm"
)

type RegistrationHandler struct {
	db          *gorm.DB
	workflow    *workflow.Service
	generator   *orders.Generator
	authHandler *auth.AuthHandler
}

func NewRegistrationHandler(db *gorm.DB, wf *workflow.Service, gen *orders.Generator, authHandler *auth.AuthHandler) *RegistrationHandler {
	return &RegistrationHandler{db: db, workflow: wf, generator: gen, authHandler: authHandler}
}

type EnrollRequest struct {
	auth.AuthInput
	Body struct {
		EventDetailID uint   `json:"event_detail_id" doc:"Offering to enroll in" required:"true"`
		PaymentMethod string `json:"payment_method,omitempty" doc:"cash, transfer or card; required for paid offerings"`
	}
}

type RegistrationView struct {
	ID            uint                         `json:"id"`
	EventDetailID uint                         `json:"event_detail_id"`
	Completed     bool                         `json:"completed"`
	CompletedAt   *time.Time                   `json:"completed_at,omitempty"`
	Payment       *models.Payment              `json:"payment,omitempty"`
	Documents     []models.RequirementDocument `json:"documents,omitempty"`
}

type EnrollResponse struct {
	Body RegistrationView
}

// HandleEnroll creates the registration plus its requirement records:
// one payment (NONE_REQUIRED for free offerings) and one pending
// document per required type.
func (h *RegistrationHandler) HandleEnroll(ctx context.Context, input *EnrollRequest) (*EnrollResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	var detail models.EventDetail
	if err := h.db.First(&detail, input.Body.EventDetailID).Error; err != nil {
		return nil, huma.Error404NotFound("Offering not found")
	}

	if detail.Capacity > 0 {
		var count int64
		h.db.Model(&models.Registration{}).Where("event_detail_id = ?", detail.ID).Count(&count)
		if count >= int64(detail.Capacity) {
			return nil, huma.Error409Conflict("Offering is full")
		}
	}

	var existing models.Registration
	if err := h.db.Where("user_id = ? AND event_detail_id = ?", userID, detail.ID).First(&existing).Error; err == nil {
		return nil, huma.Error409Conflict("Already enrolled in this offering")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error500InternalServerError("Database error: " + err.Error())
	}

	registration := models.Registration{
		UserID:        userID,
		EventDetailID: detail.ID,
	}
	if err := h.db.Create(&registration).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create registration: " + err.Error())
	}

	payment, err := h.workflow.CreatePayment(ctx, registration.ID, detail.CostCents, input.Body.PaymentMethod)
	if err != nil {
		return nil, mapWorkflowError(err)
	}
	docs, err := h.workflow.CreateDocuments(ctx, registration.ID)
	if err != nil {
		return nil, mapWorkflowError(err)
	}

	res := &EnrollResponse{}
	res.Body = RegistrationView{
		ID:            registration.ID,
		EventDetailID: registration.EventDetailID,
		Completed:     registration.Completed,
		Payment:       payment,
		Documents:     docs,
	}
	return res, nil
}

type MyRegistrationsRequest struct {
	auth.AuthInput
}

type MyRegistrationsResponse struct {
	Body []RegistrationView
}

func (h *RegistrationHandler) HandleMyRegistrations(ctx context.Context, input *MyRegistrationsRequest) (*MyRegistrationsResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	var regs []models.Registration
	if err := h.db.Where("user_id = ?", userID).Find(&regs).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list registrations")
	}

	views := make([]RegistrationView, 0, len(regs))
	for _, reg := range regs {
		view := RegistrationView{
			ID:            reg.ID,
			EventDetailID: reg.EventDetailID,
			Completed:     reg.Completed,
			CompletedAt:   reg.CompletedAt,
		}
		var payment models.Payment
		if err := h.db.Where("registration_id = ?", reg.ID).First(&payment).Error; err == nil {
			view.Payment = &payment
		}
		h.db.Where("registration_id = ?", reg.ID).Find(&view.Documents)
		views = append(views, view)
	}

	return &MyRegistrationsResponse{Body: views}, nil
}

type RegistrationStatusRequest struct {
	auth.AuthInput
	ID uint `path:"id" doc:"Registration ID"`
}

type RegistrationStatusResponse struct {
	Body struct {
		Complete bool `json:"complete"`
	}
}

func (h *RegistrationHandler) HandleStatus(ctx context.Context, input *RegistrationStatusRequest) (*RegistrationStatusResponse, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	complete, err := h.workflow.IsRegistrationComplete(ctx, input.ID)
	if err != nil {
		return nil, mapWorkflowError(err)
	}

	res := &RegistrationStatusResponse{}
	res.Body.Complete = complete
	return res, nil
}

type CertificateRequest struct {
	auth.AuthInput
	ID uint `path:"id" doc:"Registration ID"`
}

type CertificateResponse struct {
	Body orders.Result
}

// HandleCertificate issues the completion certificate PDF; incomplete
// registrations get a designed not-applicable outcome.
func (h *RegistrationHandler) HandleCertificate(ctx context.Context, input *CertificateRequest) (*CertificateResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	var reg models.Registration
	if err := h.db.Preload("User").Preload("EventDetail").First(&reg, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Registration not found")
	}
	if reg.UserID != userID {
		return nil, huma.Error403Forbidden("Not your registration")
	}

	result, err := h.generator.Certificate(reg)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate certificate: " + err.Error())
	}
	return &CertificateResponse{Body: *result}, nil
}
