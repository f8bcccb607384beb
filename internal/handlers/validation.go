package handlers

import (
	"context"

	"github.com/ucampus/campus-events-api/internal/auth"
	"github.com/ucampus/campus-events-api/internal/models"
	"github.com/ucampus/campus-events-api/internal/workflow"
)

type ValidationHandler struct {
	workflow    *workflow.Service
	authHandler *auth.AuthHandler
}

func NewValidationHandler(wf *workflow.Service, authHandler *auth.AuthHandler) *ValidationHandler {
	return &ValidationHandler{workflow: wf, authHandler: authHandler}
}

type PendingRequest struct {
	auth.AuthInput
}

type PendingResponse struct {
	Body struct {
		Payments  []models.Payment             `json:"payments"`
		Documents []models.RequirementDocument `json:"documents"`
	}
}

// HandlePending returns the caller's review queue: everything in
// PENDING_REVIEW on events they may validate.
func (h *ValidationHandler) HandlePending(ctx context.Context, input *PendingRequest) (*PendingResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	set, err := h.workflow.PendingForValidator(ctx, userID)
	if err != nil {
		return nil, mapWorkflowError(err)
	}

	res := &PendingResponse{}
	res.Body.Payments = set.Payments
	res.Body.Documents = set.Documents
	return res, nil
}
