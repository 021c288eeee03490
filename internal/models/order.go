package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is a customer purchase. TotalMinor is the sum of its items' line
// totals in minor units.
type Order struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	TotalMinor int64     `json:"total_minor"`
	StateID    uuid.UUID `json:"state_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// OrderItem is one product line on an order. UnitPriceMinor is captured at
// order time so later price edits don't rewrite history.
type OrderItem struct {
	ID             uuid.UUID `json:"id"`
	OrderID        uuid.UUID `json:"order_id"`
	ProductID      uuid.UUID `json:"product_id"`
	Quantity       int64     `json:"quantity"`
	UnitPriceMinor int64     `json:"unit_price_minor"`
	CreatedAt      time.Time `json:"created_at"`
}
