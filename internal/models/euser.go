package models

import (
	"time"

	"github.com/google/uuid"
)

// Role names a set of back-office capabilities.
type Role struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	StateID     uuid.UUID `json:"state_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EUser is a back-office operator. Superusers may omit a role.
type EUser struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	FirstName    string     `json:"first_name,omitempty"`
	LastName     string     `json:"last_name,omitempty"`
	OtherName    string     `json:"other_name,omitempty"`
	PhoneNumber  string     `json:"phone_number"`
	Email        string     `json:"email"`
	RoleID       *uuid.UUID `json:"role_id,omitempty"`
	IsSuperuser  bool       `json:"is_superuser"`
	StateID      uuid.UUID  `json:"state_id"`
	LastActivity *time.Time `json:"last_activity,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// EUserPassword is one entry of a user's password history. The newest
// Active row is the current password; superseded rows are Disabled.
type EUserPassword struct {
	ID           uuid.UUID `json:"id"`
	EUserID      uuid.UUID `json:"euser_id"`
	PasswordHash string    `json:"-"`
	StateID      uuid.UUID `json:"state_id"`
	CreatedAt    time.Time `json:"created_at"`
}
