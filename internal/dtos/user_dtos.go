package dtos

import (
	"time"

	"github.com/google/uuid"
)

type AddUserRequest struct {
	Username    string     `json:"username" validate:"required,min=3,max=50"`
	FirstName   string     `json:"first_name,omitempty"`
	LastName    string     `json:"last_name,omitempty"`
	OtherName   string     `json:"other_name,omitempty"`
	PhoneNumber string     `json:"phone_number" validate:"required"`
	Email       string     `json:"email" validate:"required,email"`
	Password    string     `json:"password" validate:"required,min=8"`
	RoleID      *uuid.UUID `json:"role_id,omitempty"`
	IsSuperuser bool       `json:"is_superuser"`
}

type UpdateUserRequest struct {
	UserID      uuid.UUID  `json:"user_id" validate:"required"`
	FirstName   *string    `json:"first_name,omitempty"`
	LastName    *string    `json:"last_name,omitempty"`
	OtherName   *string    `json:"other_name,omitempty"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	Email       *string    `json:"email,omitempty"`
	RoleID      *uuid.UUID `json:"role_id,omitempty"`
}

type UserActionRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

type SetPasswordRequest struct {
	UserID   uuid.UUID `json:"user_id" validate:"required"`
	Password string    `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
