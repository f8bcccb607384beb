package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/ucampus/campus-events-api/internal/auth"
	"github.com/ucampus/campus-events-api/internal/models"
	"gorm.io/gorm"
)

type UserHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewUserHandler(db *gorm.DB, authHandler *auth.AuthHandler) *UserHandler {
	return &UserHandler{db: db, authHandler: authHandler}
}

type MeRequest struct {
	auth.AuthInput
}

type MeResponse struct {
	Body struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Avatar   string `json:"avatar"`
		Role     string `json:"role"`
	}
}

func (h *UserHandler) HandleMe(ctx context.Context, input *MeRequest) (*MeResponse, error) {
	user, err := h.authHandler.CurrentUser(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	res := &MeResponse{}
	res.Body.ID = user.ID
	res.Body.Username = user.Username
	res.Body.Email = user.Email
	res.Body.Avatar = user.Avatar
	res.Body.Role = user.Role
	return res, nil
}

type SetRoleRequest struct {
	auth.AuthInput
	UserID uint `path:"id" doc:"User ID"`
	Body   struct {
		Role string `json:"role" doc:"student, staff or admin" required:"true" enum:"student,staff,admin"`
	}
}

type SetRoleResponse struct {
	Body models.User
}

// HandleSetRole lets an admin promote or demote accounts.
func (h *UserHandler) HandleSetRole(ctx context.Context, input *SetRoleRequest) (*SetRoleResponse, error) {
	caller, err := h.authHandler.CurrentUser(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, huma.Error403Forbidden("Admin role required")
	}

	var user models.User
	if err := h.db.First(&user, input.UserID).Error; err != nil {
		return nil, huma.Error404NotFound("User not found")
	}
	user.Role = input.Body.Role
	if err := h.db.Save(&user).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update role: " + err.Error())
	}
	return &SetRoleResponse{Body: user}, nil
}
