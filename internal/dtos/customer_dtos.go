package dtos

import "github.com/google/uuid"

type AddCustomerRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

type UpdateCustomerRequest struct {
	CustomerID  uuid.UUID  `json:"customer_id" validate:"required"`
	Email       *string    `json:"email,omitempty"`
	Password    *string    `json:"password,omitempty"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	StateID     *uuid.UUID `json:"state_id,omitempty"`
}
