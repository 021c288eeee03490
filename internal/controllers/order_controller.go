package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/lawrenceChege/order-management/internal/dtos"
	"github.com/lawrenceChege/order-management/internal/services"
	"github.com/lawrenceChege/order-management/internal/utils"
)

type OrderController struct {
	orderService *services.OrderService
}

func NewOrderController(os *services.OrderService) *OrderController {
	return &OrderController{orderService: os}
}

var orderValidate = validator.New()

// PlaceOrderHandler => POST /api/v1/orders
func (c *OrderController) PlaceOrderHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Unable to read payload", nil, err,
		)
		return
	}
	var req dtos.PlaceOrderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return
	}
	if err := orderValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid order details", nil, err,
		)
		return
	}

	env := c.orderService.PlaceOrder(r.Context(), buildMeta(r, body), &req)
	utils.RespondWithJSON(w, statusForCode(env.Code), env)
}

// CompleteOrderHandler => POST /api/v1/orders/{id}/complete
func (c *OrderController) CompleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, mux.Vars(r), "id")
	if !ok {
		return
	}
	env := c.orderService.CompleteOrder(r.Context(), buildMeta(r, nil), id)
	utils.RespondWithJSON(w, statusForCode(env.Code), env)
}

// CancelOrderHandler => POST /api/v1/orders/{id}/cancel
func (c *OrderController) CancelOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, mux.Vars(r), "id")
	if !ok {
		return
	}
	env := c.orderService.CancelOrder(r.Context(), buildMeta(r, nil), id)
	utils.RespondWithJSON(w, statusForCode(env.Code), env)
}

// GetOrderHandler => GET /api/v1/orders/{id}
func (c *OrderController) GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, mux.Vars(r), "id")
	if !ok {
		return
	}
	env := c.orderService.GetOrder(r.Context(), buildMeta(r, nil), id)
	utils.RespondWithJSON(w, statusForCode(env.Code), env)
}

// GetOrdersHandler => GET /api/v1/orders[?customer_id=...]
func (c *OrderController) GetOrdersHandler(w http.ResponseWriter, r *http.Request) {
	var customerID *uuid.UUID
	if raw := r.URL.Query().Get("customer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondErrorWithCode(
				w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid customer_id provided", nil, err,
			)
			return
		}
		customerID = &id
	}
	env := c.orderService.GetOrders(r.Context(), buildMeta(r, nil), customerID)
	utils.RespondWithJSON(w, statusForCode(env.Code), env)
}
