package dtos

import (
	"github.com/google/uuid"

	"github.com/lawrenceChege/order-management/internal/models"
)

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int64     `json:"quantity" validate:"required,gt=0"`
}

type PlaceOrderRequest struct {
	CustomerID uuid.UUID          `json:"customer_id" validate:"required"`
	Items      []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderResponse struct {
	Order *models.Order       `json:"order"`
	Items []*models.OrderItem `json:"items,omitempty"`
}
