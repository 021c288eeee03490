package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/lawrenceChege/order-management/internal/dtos"
	"github.com/lawrenceChege/order-management/internal/services"
	"github.com/lawrenceChege/order-management/internal/utils"
)

type CustomerController struct {
	customerService *services.CustomerService
}

func NewCustomerController(cs *services.CustomerService) *CustomerController {
	return &CustomerController{customerService: cs}
}

var customerValidate = validator.New()

// AddCustomerHandler => POST /api/v1/customers
func (c *CustomerController) AddCustomerHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Unable to read payload", nil, err,
		)
		return
	}
	var req dtos.AddCustomerRequest
	if err := json.Unmarshal(body, &req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return
	}
	if err := customerValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid customer details", nil, err,
		)
		return
	}

	env := c.customerService.AddCustomer(r.Context(), buildMeta(r, body), &req)
	utils.RespondWithJSON(w, statusForCode(env.Code), env)
}

// EditCustomerHandler => PATCH /api/v1/customers
func (c *CustomerController) EditCustomerHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Unable to read payload", nil, err,
		)
		return
	}
	var req dtos.UpdateCustomerRequest
	if err := json.Unmarshal(body, &req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return
	}
	if err := customerValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid customer details", nil, err,
		)
		return
	}

	env := c.customerService.EditCustomer(r.Context(), buildMeta(r, body), &req)
	utils.RespondWithJSON(w, statusForCode(env.Code), env)
}

// GetCustomerHandler => GET /api/v1/customers/{id}
func (c *CustomerController) GetCustomerHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, mux.Vars(r), "id")
	if !ok {
		return
	}
	env := c.customerService.GetCustomer(r.Context(), buildMeta(r, nil), id)
	utils.RespondWithJSON(w, statusForCode(env.Code), env)
}

// GetCustomersHandler => GET /api/v1/customers
func (c *CustomerController) GetCustomersHandler(w http.ResponseWriter, r *http.Request) {
	env := c.customerService.GetCustomers(r.Context(), buildMeta(r, nil))
	utils.RespondWithJSON(w, statusForCode(env.Code), env)
}

// DeleteCustomerHandler => DELETE /api/v1/customers/{id}
func (c *CustomerController) DeleteCustomerHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, mux.Vars(r), "id")
	if !ok {
		return
	}
	env := c.customerService.DeleteCustomer(r.Context(), buildMeta(r, nil), id)
	utils.RespondWithJSON(w, statusForCode(env.Code), env)
}
