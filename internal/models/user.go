package models

import (
	"time"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
)

// PasswordHashPlaceholder is stored when a user row is created without real
// authentication (the identify flow does not take a password).
const PasswordHashPlaceholder = "NOPASS"

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"not null;size:100;index"`
	Email        string    `json:"email" gorm:"not null;size:255;index"`
	FullName     string    `json:"fullName" gorm:"size:100"`
	Role         UserRole  `json:"role" gorm:"size:20;default:student"`
	PasswordHash string    `json:"-" gorm:"size:255"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// ParseRole maps a role string onto a known role. Unknown values are
// reported so callers can keep the stored role unchanged.
func ParseRole(s string) (UserRole, bool) {
	switch UserRole(s) {
	case RoleStudent:
		return RoleStudent, true
	case RoleTeacher:
		return RoleTeacher, true
	default:
		return "", false
	}
}
