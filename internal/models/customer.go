package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is an ordering account. The legacy system kept the login user
// and the customer profile in separate tables; they are folded together
// here since a customer maps one-to-one to its user record.
type Customer struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Code         string    `json:"code"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	StateID      uuid.UUID `json:"state_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
