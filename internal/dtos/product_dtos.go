package dtos

import "github.com/google/uuid"

type AddProductRequest struct {
	Name        string    `json:"name" validate:"required,min=1,max=100"`
	Description string    `json:"description,omitempty"`
	CategoryID  uuid.UUID `json:"category_id" validate:"required"`
	CurrencyID  uuid.UUID `json:"currency_id" validate:"required"`
	PriceMinor  int64     `json:"price_minor" validate:"gte=0"`
	Quantity    int64     `json:"quantity" validate:"gte=0"`
}

type UpdateProductRequest struct {
	ProductID   uuid.UUID  `json:"product_id" validate:"required"`
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string    `json:"description,omitempty"`
	PriceMinor  *int64     `json:"price_minor,omitempty" validate:"omitempty,gte=0"`
	Quantity    *int64     `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	StateID     *uuid.UUID `json:"state_id,omitempty"`
}
