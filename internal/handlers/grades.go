package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/ucampus/campus-events-api/internal/auth"
	"github.com/ucampus/campus-events-api/internal/authz"
	"github.com/ucampus/campus-events-api/internal/models"
	"gorm.io/gorm"
)

type GradeHandler struct {
	db          *gorm.DB
	authz       *authz.Service
	authHandler *auth.AuthHandler
}

func NewGradeHandler(db *gorm.DB, az *authz.Service, authHandler *auth.AuthHandler) *GradeHandler {
	return &GradeHandler{db: db, authz: az, authHandler: authHandler}
}

// requireInstructorOf loads the registration and checks the caller
// instructs its offering.
func (h *GradeHandler) requireInstructorOf(ctx context.Context, cookie string, registrationID uint) (uint, *models.Registration, error) {
	userID, err := h.authHandler.Authorize(ctx, cookie)
	if err != nil {
		return 0, nil, err
	}

	var reg models.Registration
	if err := h.db.First(&reg, registrationID).Error; err != nil {
		return 0, nil, huma.Error404NotFound("Registration not found")
	}

	ok, err := h.authz.CanInstruct(ctx, userID, reg.EventDetailID)
	if err != nil {
		return 0, nil, huma.Error500InternalServerError("Failed to check capability: " + err.Error())
	}
	if !ok {
		return 0, nil, huma.Error403Forbidden("Only the instructor may record grades or attendance")
	}
	return userID, &reg, nil
}

type RecordGradeRequest struct {
	auth.AuthInput
	RegistrationID uint `path:"id" doc:"Registration ID"`
	Body           struct {
		Score   float64 `json:"score" doc:"Final score" required:"true"`
		Comment string  `json:"comment,omitempty"`
	}
}

type GradeResponse struct {
	Body models.Grade
}

// HandleRecordGrade upserts the final score for a registration.
func (h *GradeHandler) HandleRecordGrade(ctx context.Context, input *RecordGradeRequest) (*GradeResponse, error) {
	userID, reg, err := h.requireInstructorOf(ctx, input.Cookie, input.RegistrationID)
	if err != nil {
		return nil, err
	}

	var grade models.Grade
	if err := h.db.FirstOrInit(&grade, models.Grade{RegistrationID: reg.ID}).Error; err != nil {
		return nil, huma.Error500InternalServerError("Database error: " + err.Error())
	}
	grade.Score = input.Body.Score
	grade.Comment = input.Body.Comment
	grade.RecordedByID = userID
	if err := h.db.Save(&grade).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to save grade: " + err.Error())
	}
	return &GradeResponse{Body: grade}, nil
}

type RecordAttendanceRequest struct {
	auth.AuthInput
	RegistrationID uint `path:"id" doc:"Registration ID"`
	Body           struct {
		SessionDate time.Time `json:"session_date" doc:"Session day being marked" required:"true"`
		Present     bool      `json:"present"`
	}
}

type AttendanceResponse struct {
	Body models.Attendance
}

func (h *GradeHandler) HandleRecordAttendance(ctx context.Context, input *RecordAttendanceRequest) (*AttendanceResponse, error) {
	userID, reg, err := h.requireInstructorOf(ctx, input.Cookie, input.RegistrationID)
	if err != nil {
		return nil, err
	}

	var mark models.Attendance
	err = h.db.FirstOrInit(&mark, models.Attendance{
		RegistrationID: reg.ID,
		SessionDate:    input.Body.SessionDate,
	}).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error: " + err.Error())
	}
	mark.Present = input.Body.Present
	mark.RecordedByID = userID
	if err := h.db.Save(&mark).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to save attendance: " + err.Error())
	}
	return &AttendanceResponse{Body: mark}, nil
}

type MyGradeRequest struct {
	auth.AuthInput
	RegistrationID uint `path:"id" doc:"Registration ID"`
}

// HandleMyGrade lets the student see their own recorded grade.
func (h *GradeHandler) HandleMyGrade(ctx context.Context, input *MyGradeRequest) (*GradeResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	var reg models.Registration
	if err := h.db.First(&reg, input.RegistrationID).Error; err != nil {
		return nil, huma.Error404NotFound("Registration not found")
	}
	if reg.UserID != userID {
		return nil, huma.Error403Forbidden("Not your registration")
	}

	var grade models.Grade
	if err := h.db.Where("registration_id = ?", reg.ID).First(&grade).Error; err != nil {
		return nil, huma.Error404NotFound("No grade recorded yet")
	}
	return &GradeResponse{Body: grade}, nil
}
