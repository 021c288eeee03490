package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products, e.g. Clothing, Food, Toys.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	StateID     uuid.UUID `json:"state_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Currency is a priced currency, e.g. US Dollar - USD.
type Currency struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
	StateID     uuid.UUID `json:"state_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Product is a sellable item. Prices are stored in minor units to keep the
// arithmetic exact.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CategoryID  uuid.UUID `json:"category_id"`
	CurrencyID  uuid.UUID `json:"currency_id"`
	PriceMinor  int64     `json:"price_minor"`
	Quantity    int64     `json:"quantity"`
	StateID     uuid.UUID `json:"state_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
