package domain

import (
	"time"
)

type UserRole string

const (
	RoleSeeker UserRole = "seeker"
	RoleHR     UserRole = "hr"
	RoleAdmin  UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleSeeker, RoleHR, RoleAdmin:
		return true
	default:
		return false
	}
}

type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Identity is the authenticated actor extracted once at the HTTP boundary.
type Identity struct {
	UserID int64
	Role   UserRole
}

func (i *Identity) IsHR() bool {
	return i != nil && i.Role == RoleHR
}

type Company struct {
	ID          int64   `json:"id" db:"id"`
	HRUserID    int64   `json:"hr_user_id" db:"hr_user_id"`
	CompanyName string  `json:"company_name" db:"company_name"`
	Logo        *string `json:"logo,omitempty" db:"logo"`
}

type DeleteAccountInput struct {
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"required"`
	ConfirmText     string `json:"confirm_text" form:"confirm_text" validate:"required"`
}

const DeleteAccountConfirmText = "DELETE"

type LoginInput struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}
