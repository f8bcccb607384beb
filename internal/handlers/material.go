package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/ucampus/campus-events-api/internal/auth"
	"github.com/ucampus/campus-events-api/internal/authz"
	"github.com/ucampus/campus-events-api/internal/models"
	"gorm.io/gorm"
)

type MaterialHandler struct {
	db          *gorm.DB
	authz       *authz.Service
	authHandler *auth.AuthHandler
}

func NewMaterialHandler(db *gorm.DB, az *authz.Service, authHandler *auth.AuthHandler) *MaterialHandler {
	return &MaterialHandler{db: db, authz: az, authHandler: authHandler}
}

type UploadMaterialRequest struct {
	auth.AuthInput
	DetailID uint `path:"detailId" doc:"Offering ID"`
	Body     struct {
		Title   string `json:"title" doc:"Material title" required:"true"`
		FileRef string `json:"file_ref" doc:"Reference to the uploaded file" required:"true"`
	}
}

type MaterialResponse struct {
	Body models.CourseMaterial
}

// HandleUpload lets the offering's instructor (or an admin) share a
// material with participants.
func (h *MaterialHandler) HandleUpload(ctx context.Context, input *UploadMaterialRequest) (*MaterialResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	ok, err := h.authz.CanInstruct(ctx, userID, input.DetailID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to check capability: " + err.Error())
	}
	if !ok {
		return nil, huma.Error403Forbidden("Only the instructor may upload materials")
	}

	material := models.CourseMaterial{
		EventDetailID: input.DetailID,
		UploadedByID:  userID,
		Title:         input.Body.Title,
		FileRef:       input.Body.FileRef,
	}
	if err := h.db.Create(&material).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to save material: " + err.Error())
	}
	return &MaterialResponse{Body: material}, nil
}

type ListMaterialsRequest struct {
	auth.AuthInput
	DetailID uint `path:"detailId" doc:"Offering ID"`
}

type ListMaterialsResponse struct {
	Body []models.CourseMaterial
}

// HandleList shows materials to enrolled participants, the instructor,
// and admins.
func (h *MaterialHandler) HandleList(ctx context.Context, input *ListMaterialsRequest) (*ListMaterialsResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	canInstruct, err := h.authz.CanInstruct(ctx, userID, input.DetailID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to check capability: " + err.Error())
	}
	if !canInstruct {
		var enrolled int64
		h.db.Model(&models.Registration{}).
			Where("user_id = ? AND event_detail_id = ?", userID, input.DetailID).
			Count(&enrolled)
		if enrolled == 0 {
			return nil, huma.Error403Forbidden("Enroll in the offering to see its materials")
		}
	}

	var materials []models.CourseMaterial
	if err := h.db.Where("event_detail_id = ?", input.DetailID).Find(&materials).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list materials")
	}
	return &ListMaterialsResponse{Body: materials}, nil
}
