package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/ucampus/campus-events-api/internal/auth"
	"github.com/ucampus/campus-events-api/internal/models"
	"gorm.io/gorm"
)

type EventHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewEventHandler(db *gorm.DB, authHandler *auth.AuthHandler) *EventHandler {
	return &EventHandler{db: db, authHandler: authHandler}
}

func (h *EventHandler) requireAdmin(ctx context.Context, cookie string) (*models.User, error) {
	user, err := h.authHandler.CurrentUser(ctx, cookie)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, huma.Error403Forbidden("Admin role required")
	}
	return user, nil
}

type CreateEventRequest struct {
	auth.AuthInput
	Body struct {
		Name        string    `json:"name" doc:"Event name" required:"true"`
		Description string    `json:"description"`
		StartDate   time.Time `json:"start_date"`
		EndDate     time.Time `json:"end_date"`
	}
}

type EventResponse struct {
	Body models.Event
}

func (h *EventHandler) HandleCreateEvent(ctx context.Context, input *CreateEventRequest) (*EventResponse, error) {
	if _, err := h.requireAdmin(ctx, input.Cookie); err != nil {
		return nil, err
	}
	if input.Body.EndDate.Before(input.Body.StartDate) {
		return nil, huma.Error400BadRequest("End date cannot be before start date")
	}

	event := models.Event{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		StartDate:   input.Body.StartDate,
		EndDate:     input.Body.EndDate,
	}
	if err := h.db.Create(&event).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create event: " + err.Error())
	}
	return &EventResponse{Body: event}, nil
}

type AddDetailRequest struct {
	auth.AuthInput
	EventID uint `path:"id" doc:"Event ID"`
	Body    struct {
		Title        string `json:"title" doc:"Offering title" required:"true"`
		CostCents    int64  `json:"cost_cents" doc:"Registration fee in cents; zero for free offerings"`
		Capacity     int    `json:"capacity" doc:"Maximum registrations; zero for unlimited"`
		InstructorID *uint  `json:"instructor_id,omitempty"`
		Requirements []struct {
			DocType     string `json:"doc_type" required:"true"`
			Description string `json:"description"`
		} `json:"requirements,omitempty" doc:"Document types every registration must get approved"`
	}
}

type DetailResponse struct {
	Body models.EventDetail
}

func (h *EventHandler) HandleAddDetail(ctx context.Context, input *AddDetailRequest) (*DetailResponse, error) {
	if _, err := h.requireAdmin(ctx, input.Cookie); err != nil {
		return nil, err
	}
	if input.Body.CostCents < 0 {
		return nil, huma.Error400BadRequest("Cost cannot be negative")
	}

	var event models.Event
	if err := h.db.First(&event, input.EventID).Error; err != nil {
		return nil, huma.Error404NotFound("Event not found")
	}

	detail := models.EventDetail{
		EventID:      event.ID,
		Title:        input.Body.Title,
		CostCents:    input.Body.CostCents,
		Capacity:     input.Body.Capacity,
		InstructorID: input.Body.InstructorID,
	}
	for _, r := range input.Body.Requirements {
		detail.Requirements = append(detail.Requirements, models.EventRequirement{
			DocType:     r.DocType,
			Description: r.Description,
		})
	}
	if err := h.db.Create(&detail).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create offering: " + err.Error())
	}
	return &DetailResponse{Body: detail}, nil
}

type AssignResponsibleRequest struct {
	auth.AuthInput
	EventID uint `path:"id" doc:"Event ID"`
	Body    struct {
		UserID uint `json:"user_id" doc:"Staff user to make responsible" required:"true"`
	}
}

type MessageResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

// HandleAssignResponsible grants a staff user the validation capability
// for every offering of the event.
func (h *EventHandler) HandleAssignResponsible(ctx context.Context, input *AssignResponsibleRequest) (*MessageResponse, error) {
	if _, err := h.requireAdmin(ctx, input.Cookie); err != nil {
		return nil, err
	}

	var event models.Event
	if err := h.db.First(&event, input.EventID).Error; err != nil {
		return nil, huma.Error404NotFound("Event not found")
	}
	var user models.User
	if err := h.db.First(&user, input.Body.UserID).Error; err != nil {
		return nil, huma.Error404NotFound("User not found")
	}
	if !user.IsStaff() {
		return nil, huma.Error400BadRequest("Responsibles must hold the staff role")
	}

	if err := h.db.Model(&event).Association("Responsibles").Append(&user); err != nil {
		return nil, huma.Error500InternalServerError("Failed to assign responsible: " + err.Error())
	}

	res := &MessageResponse{}
	res.Body.Message = "Responsible assigned"
	return res, nil
}

type ListEventsRequest struct{}

type ListEventsResponse struct {
	Body []models.Event
}

func (h *EventHandler) HandleListEvents(ctx context.Context, input *ListEventsRequest) (*ListEventsResponse, error) {
	var events []models.Event
	if err := h.db.Preload("Details").Preload("Details.Requirements").Find(&events).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list events")
	}
	return &ListEventsResponse{Body: events}, nil
}

type GetEventRequest struct {
	ID uint `path:"id" doc:"Event ID"`
}

func (h *EventHandler) HandleGetEvent(ctx context.Context, input *GetEventRequest) (*EventResponse, error) {
	var event models.Event
	err := h.db.Preload("Details").Preload("Details.Requirements").First(&event, input.ID).Error
	if err != nil {
		return nil, huma.Error404NotFound("Event not found")
	}
	return &EventResponse{Body: event}, nil
}
