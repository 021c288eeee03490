package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lawrenceChege/order-management/internal/constants"
	"github.com/lawrenceChege/order-management/internal/dtos"
	"github.com/lawrenceChege/order-management/internal/models"
	"github.com/lawrenceChege/order-management/internal/testhelpers"
)

type customerFixture struct {
	*auditFixture
	customers *testhelpers.MemCustomerRepository
	svc       *CustomerService
}

func newCustomerFixture(t *testing.T) *customerFixture {
	t.Helper()
	af := newAuditFixture(t)
	customers := testhelpers.NewMemCustomerRepository()
	return &customerFixture{
		auditFixture: af,
		customers:    customers,
		svc:          NewCustomerService(customers, af.states, af.log),
	}
}

func addCustomerReq() *dtos.AddCustomerRequest {
	return &dtos.AddCustomerRequest{
		Username:    "wanjiku",
		Email:       "wanjiku@example.com",
		Password:    "S3cret!pass",
		PhoneNumber: "0712345678",
	}
}

func TestAddCustomerSuccess(t *testing.T) {
	f := newCustomerFixture(t)

	env := f.svc.AddCustomer(context.Background(), RequestMeta{}, addCustomerReq())
	require.Equal(t, constants.CodeSuccess, env.Code)
	require.NotEmpty(t, env.ActionID)

	customer, ok := env.Data.(*models.Customer)
	require.True(t, ok)
	require.Equal(t, "wanjiku", customer.Username)
	require.Equal(t, "254712345678", customer.PhoneNumber)
	require.NotEmpty(t, customer.Code)
	require.NotEmpty(t, customer.PasswordHash)
	require.NotEqual(t, "S3cret!pass", customer.PasswordHash)

	// The bracketing action closed Complete.
	action, err := f.actions.GetByID(context.Background(), uuid.MustParse(env.ActionID))
	require.NoError(t, err)
	require.Equal(t, f.complete.ID, action.StateID)
	require.Equal(t, constants.CodeSuccess, action.StatusCode)
}

func TestAddCustomerDuplicateUsername(t *testing.T) {
	f := newCustomerFixture(t)
	ctx := context.Background()

	env := f.svc.AddCustomer(ctx, RequestMeta{}, addCustomerReq())
	require.Equal(t, constants.CodeSuccess, env.Code)

	env = f.svc.AddCustomer(ctx, RequestMeta{}, addCustomerReq())
	require.Equal(t, constants.CodeCustomerCreateFailed, env.Code)
	require.NotEmpty(t, env.ActionID)

	// The failed attempt still leaves an audit record, closed Failed.
	action, err := f.actions.GetByID(ctx, uuid.MustParse(env.ActionID))
	require.NoError(t, err)
	require.Equal(t, f.failed.ID, action.StateID)
}

func TestAddCustomerOpenFailureEnvelope(t *testing.T) {
	ctx := context.Background()
	states := testhelpers.NewMemStateRepository()
	_, err := states.GetOrCreate(ctx, models.StateActive, "")
	require.NoError(t, err)

	// No action types provisioned, so opening the audit row fails.
	types := testhelpers.NewMemActionTypeRepository()
	users := testhelpers.NewMemEUserRepository()
	actions := testhelpers.NewMemActionRepository(types, states, users)
	log := NewActionLogService(actions, types, states, users)
	svc := NewCustomerService(testhelpers.NewMemCustomerRepository(), states, log)

	env := svc.AddCustomer(ctx, RequestMeta{}, addCustomerReq())
	require.Equal(t, constants.CodeActionLogFailed, env.Code)
	require.Equal(t, "Failed to log action", env.Message)
	require.Empty(t, env.ActionID)
}

func TestAddCustomerInvalidEmail(t *testing.T) {
	f := newCustomerFixture(t)

	req := addCustomerReq()
	req.Email = "not-an-email"
	env := f.svc.AddCustomer(context.Background(), RequestMeta{}, req)
	require.Equal(t, constants.CodeInvalidField, env.Code)
}

func TestEditCustomerNotFound(t *testing.T) {
	f := newCustomerFixture(t)

	env := f.svc.EditCustomer(context.Background(), RequestMeta{}, &dtos.UpdateCustomerRequest{CustomerID: uuid.New()})
	require.Equal(t, constants.CodeCustomerNotFound, env.Code)
}

func TestEditCustomerUpdatesEmail(t *testing.T) {
	f := newCustomerFixture(t)
	ctx := context.Background()

	env := f.svc.AddCustomer(ctx, RequestMeta{}, addCustomerReq())
	created := env.Data.(*models.Customer)

	newEmail := "wanjiku.new@example.com"
	env = f.svc.EditCustomer(ctx, RequestMeta{}, &dtos.UpdateCustomerRequest{
		CustomerID: created.ID,
		Email:      &newEmail,
	})
	require.Equal(t, constants.CodeSuccess, env.Code)
	require.Equal(t, newEmail, env.Data.(*models.Customer).Email)
}

func TestGetCustomersEmpty(t *testing.T) {
	f := newCustomerFixture(t)

	env := f.svc.GetCustomers(context.Background(), RequestMeta{})
	require.Equal(t, constants.CodeCustomersNotFound, env.Code)
}

func TestDeleteCustomerDisables(t *testing.T) {
	f := newCustomerFixture(t)
	ctx := context.Background()

	env := f.svc.AddCustomer(ctx, RequestMeta{}, addCustomerReq())
	created := env.Data.(*models.Customer)

	env = f.svc.DeleteCustomer(ctx, RequestMeta{}, created.ID)
	require.Equal(t, constants.CodeSuccess, env.Code)

	stored, err := f.customers.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, f.disabled.ID, stored.StateID)
}
