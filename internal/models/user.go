package models

import (
	"gorm.io/gorm"
)

// Role values a user account can hold. "staff" covers instructors and
// event responsibles; which events a staff member may act on is resolved
// through Event.Responsibles and EventDetail.InstructorID.
const (
	RoleStudent = "student"
	RoleStaff   = "staff"
	RoleAdmin   = "admin"
)

type User struct {
	gorm.Model
	SSOID        string `json:"sso_id" gorm:"uniqueIndex"`
	Username     string `json:"username"`
	Email        string `json:"email" gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`
	Avatar       string `json:"avatar"`
	Role         string `json:"role" gorm:"default:student"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsStaff() bool {
	return u.Role == RoleStaff || u.Role == RoleAdmin
}
