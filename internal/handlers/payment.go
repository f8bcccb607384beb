package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/ucampus/campus-events-api/internal/auth"
	"github.com/ucampus/campus-events-api/internal/models"
	"github.com/ucampus/campus-events-api/internal/orders"
	"github.com/ucampus/campus-events-api/internal/workflow"
	"gorm.io/gorm"
)

type PaymentHandler struct {
	db          *gorm.DB
	workflow    *workflow.Service
	generator   *orders.Generator
	authHandler *auth.AuthHandler
}

func NewPaymentHandler(db *gorm.DB, wf *workflow.Service, gen *orders.Generator, authHandler *auth.AuthHandler) *PaymentHandler {
	return &PaymentHandler{db: db, workflow: wf, generator: gen, authHandler: authHandler}
}

type SubmitProofRequest struct {
	auth.AuthInput
	RegistrationID uint `path:"id" doc:"Registration ID"`
	Body           struct {
		FileRef string `json:"file_ref" doc:"Reference to the uploaded proof-of-payment file" required:"true"`
	}
}

type PaymentResponse struct {
	Body models.Payment
}

func (h *PaymentHandler) HandleSubmitProof(ctx context.Context, input *SubmitProofRequest) (*PaymentResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	payment, err := h.workflow.SubmitProof(ctx, userID, input.RegistrationID, input.Body.FileRef)
	if err != nil {
		return nil, mapWorkflowError(err)
	}
	return &PaymentResponse{Body: *payment}, nil
}

type DecidePaymentRequest struct {
	auth.AuthInput
	RegistrationID uint `path:"id" doc:"Registration ID"`
	Body           struct {
		Decision string `json:"decision" doc:"APPROVE or REJECT" required:"true" enum:"APPROVE,REJECT"`
		Comment  string `json:"comment,omitempty" doc:"Mandatory when rejecting"`
	}
}

func (h *PaymentHandler) HandleDecide(ctx context.Context, input *DecidePaymentRequest) (*PaymentResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	payment, err := h.workflow.DecidePayment(ctx, userID, input.RegistrationID, input.Body.Decision, input.Body.Comment)
	if err != nil {
		return nil, mapWorkflowError(err)
	}
	return &PaymentResponse{Body: *payment}, nil
}

type OrderOfPaymentRequest struct {
	auth.AuthInput
	RegistrationID uint `path:"id" doc:"Registration ID"`
}

type OrderOfPaymentResponse struct {
	Body orders.Result
}

// HandleOrderOfPayment generates the bank-payable order PDF. Free
// offerings are a designed not-applicable outcome; missing document
// prerequisites block generation.
func (h *PaymentHandler) HandleOrderOfPayment(ctx context.Context, input *OrderOfPaymentRequest) (*OrderOfPaymentResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	var reg models.Registration
	if err := h.db.Preload("User").Preload("EventDetail").First(&reg, input.RegistrationID).Error; err != nil {
		return nil, huma.Error404NotFound("Registration not found")
	}
	if reg.UserID != userID {
		return nil, huma.Error403Forbidden("Not your registration")
	}

	if reg.EventDetail.CostCents == 0 {
		result, err := h.generator.OrderOfPayment(reg, models.Payment{})
		if err != nil {
			return nil, huma.Error500InternalServerError("Failed to generate order: " + err.Error())
		}
		return &OrderOfPaymentResponse{Body: *result}, nil
	}

	var payment models.Payment
	if err := h.db.Where("registration_id = ?", reg.ID).First(&payment).Error; err != nil {
		return nil, huma.Error404NotFound("Payment record not found")
	}

	// Academic prerequisites first: every required document must be
	// approved before the order is issued.
	var outstanding int64
	h.db.Model(&models.RequirementDocument{}).
		Where("registration_id = ? AND status != ?", reg.ID, models.DocumentApproved).
		Count(&outstanding)
	if outstanding > 0 {
		return nil, huma.Error409Conflict("Requirement documents must be approved before an order of payment is issued")
	}

	result, err := h.generator.OrderOfPayment(reg, payment)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate order: " + err.Error())
	}
	return &OrderOfPaymentResponse{Body: *result}, nil
}
