package handlers

import (
	"context"

	"github.com/ucampus/campus-events-api/internal/auth"
	"github.com/ucampus/campus-events-api/internal/models"
	"github.com/ucampus/campus-events-api/internal/workflow"
	"gorm.io/gorm"
)

type DocumentHandler struct {
	db          *gorm.DB
	workflow    *workflow.Service
	authHandler *auth.AuthHandler
}

func NewDocumentHandler(db *gorm.DB, wf *workflow.Service, authHandler *auth.AuthHandler) *DocumentHandler {
	return &DocumentHandler{db: db, workflow: wf, authHandler: authHandler}
}

type SubmitDocumentRequest struct {
	auth.AuthInput
	RegistrationID uint   `path:"id" doc:"Registration ID"`
	DocType        string `path:"docType" doc:"Required document type"`
	Body           struct {
		FileRef string `json:"file_ref" doc:"Reference to the uploaded file" required:"true"`
	}
}

type DocumentResponse struct {
	Body models.RequirementDocument
}

func (h *DocumentHandler) HandleSubmit(ctx context.Context, input *SubmitDocumentRequest) (*DocumentResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	doc, err := h.workflow.SubmitDocument(ctx, userID, input.RegistrationID, input.DocType, input.Body.FileRef)
	if err != nil {
		return nil, mapWorkflowError(err)
	}
	return &DocumentResponse{Body: *doc}, nil
}

type ReopenDocumentRequest struct {
	auth.AuthInput
	RegistrationID uint   `path:"id" doc:"Registration ID"`
	DocType        string `path:"docType" doc:"Required document type"`
}

// HandleReopen clears a rejected document back to pending-upload so a
// replacement file can be submitted.
func (h *DocumentHandler) HandleReopen(ctx context.Context, input *ReopenDocumentRequest) (*DocumentResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	doc, err := h.workflow.ReopenDocument(ctx, userID, input.RegistrationID, input.DocType)
	if err != nil {
		return nil, mapWorkflowError(err)
	}
	return &DocumentResponse{Body: *doc}, nil
}

type DecideDocumentRequest struct {
	auth.AuthInput
	RegistrationID uint   `path:"id" doc:"Registration ID"`
	DocType        string `path:"docType" doc:"Required document type"`
	Body           struct {
		Decision string `json:"decision" doc:"APPROVE or REJECT" required:"true" enum:"APPROVE,REJECT"`
		Comment  string `json:"comment,omitempty" doc:"Mandatory when rejecting"`
	}
}

func (h *DocumentHandler) HandleDecide(ctx context.Context, input *DecideDocumentRequest) (*DocumentResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	doc, err := h.workflow.DecideDocument(ctx, userID, input.RegistrationID, input.DocType, input.Body.Decision, input.Body.Comment)
	if err != nil {
		return nil, mapWorkflowError(err)
	}
	return &DocumentResponse{Body: *doc}, nil
}
