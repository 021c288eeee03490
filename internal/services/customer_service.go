package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lawrenceChege/order-management/internal/constants"
	"github.com/lawrenceChege/order-management/internal/dtos"
	"github.com/lawrenceChege/order-management/internal/models"
	"github.com/lawrenceChege/order-management/internal/repositories"
	"github.com/lawrenceChege/order-management/internal/utils"
)

// CustomerService manages ordering accounts. Every operation opens an audit
// action before touching customer data and closes it with the outcome.
type CustomerService struct {
	customers repositories.CustomerRepository
	states    repositories.StateRepository
	log       *ActionLogService
}

func NewCustomerService(
	customers repositories.CustomerRepository,
	states repositories.StateRepository,
	log *ActionLogService,
) *CustomerService {
	return &CustomerService{customers: customers, states: states, log: log}
}

func (s *CustomerService) AddCustomer(ctx context.Context, meta RequestMeta, req *dtos.AddCustomerRequest) *dtos.Envelope {
	action, err := s.log.LogAction(ctx, constants.ActionAddCustomer, "customers/customer_service/AddCustomer", meta)
	if err != nil {
		utils.Logger.WithError(err).Error("AddCustomer: unable to open action")
		return openFailedEnvelope()
	}

	if !utils.ValidateEmail(req.Email) {
		return closeFailed(ctx, s.log, action, constants.CodeInvalidField, "Invalid email provided")
	}
	phone := req.PhoneNumber
	if phone != "" {
		phone = utils.NormalizePhoneNumber(phone, "", 0)
		if phone == "" {
			return closeFailed(ctx, s.log, action, constants.CodeInvalidField, "Invalid phone number provided")
		}
	}
	if _, err := s.customers.GetByUsername(ctx, req.Username); err == nil {
		return closeFailed(ctx, s.log, action, constants.CodeCustomerCreateFailed, "Username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Logger.WithError(err).Error("AddCustomer: password hashing failed")
		return closeFailed(ctx, s.log, action, constants.CodeCustomerCreateFailed, "Customer creation failed")
	}
	active, err := s.states.GetByName(ctx, models.StateActive)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeCustomerCreateFailed, "Customer creation failed")
	}

	customer := &models.Customer{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Code:         customerCode(),
		PhoneNumber:  phone,
		StateID:      active.ID,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		utils.Logger.WithError(err).Error("AddCustomer: insert failed")
		return closeFailed(ctx, s.log, action, constants.CodeCustomerCreateFailed, "Customer creation failed")
	}
	return closeComplete(ctx, s.log, action, constants.CodeSuccess, "Customer created successfully", customer)
}

func (s *CustomerService) EditCustomer(ctx context.Context, meta RequestMeta, req *dtos.UpdateCustomerRequest) *dtos.Envelope {
	action, err := s.log.LogAction(ctx, constants.ActionEditCustomer, "customers/customer_service/EditCustomer", meta)
	if err != nil {
		utils.Logger.WithError(err).Error("EditCustomer: unable to open action")
		return openFailedEnvelope()
	}

	customer, err := s.customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeCustomerNotFound, "Customer not found")
	}
	if req.Email != nil {
		if !utils.ValidateEmail(*req.Email) {
			return closeFailed(ctx, s.log, action, constants.CodeInvalidField, "Invalid email provided")
		}
		customer.Email = strings.ToLower(*req.Email)
	}
	if req.PhoneNumber != nil {
		phone := utils.NormalizePhoneNumber(*req.PhoneNumber, "", 0)
		if phone == "" {
			return closeFailed(ctx, s.log, action, constants.CodeInvalidField, "Invalid phone number provided")
		}
		customer.PhoneNumber = phone
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.Logger.WithError(err).Error("EditCustomer: password hashing failed")
			return closeFailed(ctx, s.log, action, constants.CodeCustomerUpdateFailed, "Customer update failed")
		}
		customer.PasswordHash = string(hash)
	}
	if req.StateID != nil {
		if _, err := s.states.GetByID(ctx, *req.StateID); err != nil {
			return closeFailed(ctx, s.log, action, constants.CodeInvalidID, "Invalid state provided")
		}
		customer.StateID = *req.StateID
	}

	if err := s.customers.Update(ctx, customer); err != nil {
		utils.Logger.WithError(err).Error("EditCustomer: update failed")
		return closeFailed(ctx, s.log, action, constants.CodeCustomerUpdateFailed, "Customer update failed")
	}
	return closeComplete(ctx, s.log, action, constants.CodeSuccess, "Customer updated successfully", customer)
}

func (s *CustomerService) GetCustomer(ctx context.Context, meta RequestMeta, customerID uuid.UUID) *dtos.Envelope {
	action, err := s.log.LogAction(ctx, constants.ActionGetCustomer, "customers/customer_service/GetCustomer", meta)
	if err != nil {
		utils.Logger.WithError(err).Error("GetCustomer: unable to open action")
		return openFailedEnvelope()
	}

	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeCustomerNotFound, "Customer not found")
	}
	return closeComplete(ctx, s.log, action, constants.CodeRetrieved, "Customer retrieved successfully", customer)
}

func (s *CustomerService) GetCustomers(ctx context.Context, meta RequestMeta) *dtos.Envelope {
	action, err := s.log.LogAction(ctx, constants.ActionGetCustomer, "customers/customer_service/GetCustomers", meta)
	if err != nil {
		utils.Logger.WithError(err).Error("GetCustomers: unable to open action")
		return openFailedEnvelope()
	}

	customers, err := s.customers.List(ctx)
	if err != nil {
		utils.Logger.WithError(err).Error("GetCustomers: list failed")
		return closeFailed(ctx, s.log, action, constants.CodeCustomersNotFound, "Unable to retrieve customers")
	}
	if len(customers) == 0 {
		return closeComplete(ctx, s.log, action, constants.CodeCustomersNotFound, "No customers found", []*models.Customer{})
	}
	return closeComplete(ctx, s.log, action, constants.CodeRetrieved, "Customers retrieved successfully", customers)
}

// DeleteCustomer disables the account. Customer rows are never removed, so
// their orders and audit history keep a valid owner.
func (s *CustomerService) DeleteCustomer(ctx context.Context, meta RequestMeta, customerID uuid.UUID) *dtos.Envelope {
	action, err := s.log.LogAction(ctx, constants.ActionDeleteCustomer, "customers/customer_service/DeleteCustomer", meta)
	if err != nil {
		utils.Logger.WithError(err).Error("DeleteCustomer: unable to open action")
		return openFailedEnvelope()
	}

	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeCustomerNotFound, "Customer not found")
	}
	disabled, err := s.states.GetByName(ctx, models.StateDisabled)
	if err != nil {
		return closeFailed(ctx, s.log, action, constants.CodeCustomerUpdateFailed, "Customer delete failed")
	}
	customer.StateID = disabled.ID
	if err := s.customers.Update(ctx, customer); err != nil {
		utils.Logger.WithError(err).Error("DeleteCustomer: update failed")
		return closeFailed(ctx, s.log, action, constants.CodeCustomerUpdateFailed, "Customer delete failed")
	}
	return closeComplete(ctx, s.log, action, constants.CodeSuccess, "Customer deleted successfully", customer)
}

// customerCode derives a short human-readable account code.
func customerCode() string {
	return "C-" + strings.ToUpper(uuid.New().String()[:8])
}
