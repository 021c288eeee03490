package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/lawrenceChege/order-management/internal/constants"
	"github.com/lawrenceChege/order-management/internal/dtos"
	"github.com/lawrenceChege/order-management/internal/models"
	"github.com/lawrenceChege/order-management/internal/routes"
	"github.com/lawrenceChege/order-management/internal/services"
	"github.com/lawrenceChege/order-management/internal/testhelpers"
)

func newCustomerTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	ctx := t.Context()

	states := testhelpers.NewMemStateRepository()
	for _, name := range []string{models.StateActive, models.StateComplete, models.StateFailed, models.StateDisabled} {
		_, err := states.GetOrCreate(ctx, name, "")
		require.NoError(t, err)
	}
	active, err := states.GetByName(ctx, models.StateActive)
	require.NoError(t, err)

	types := testhelpers.NewMemActionTypeRepository()
	for _, name := range constants.AllActionTypes {
		_, err := types.GetOrCreate(ctx, name, active.ID)
		require.NoError(t, err)
	}

	users := testhelpers.NewMemEUserRepository()
	actions := testhelpers.NewMemActionRepository(types, states, users)
	customers := testhelpers.NewMemCustomerRepository()

	logSvc := services.NewActionLogService(actions, types, states, users)
	controller := NewCustomerController(services.NewCustomerService(customers, states, logSvc))

	router := mux.NewRouter()
	router.HandleFunc(routes.CustomersBase, controller.AddCustomerHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.CustomersBase, controller.GetCustomersHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.CustomerByID, controller.GetCustomerHandler).Methods(http.MethodGet)
	return router
}

func TestAddCustomerEndpoint(t *testing.T) {
	router := newCustomerTestRouter(t)

	payload := map[string]string{
		"username":     "wanjiku",
		"email":        "wanjiku@example.com",
		"password":     "S3cret!pass",
		"phone_number": "0712345678",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", bytes.NewReader(body))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var env dtos.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Equal(t, constants.CodeSuccess, env.Code)
	require.NotEmpty(t, env.ActionID)
}

func TestAddCustomerEndpointRejectsBadPayload(t *testing.T) {
	router := newCustomerTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", bytes.NewReader([]byte(`{"username":"x"}`)))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCustomerEndpointInvalidID(t *testing.T) {
	router := newCustomerTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/not-a-uuid", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCustomersEndpointEmpty(t *testing.T) {
	router := newCustomerTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var env dtos.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Equal(t, constants.CodeCustomersNotFound, env.Code)
}

func TestStatusForCode(t *testing.T) {
	require.Equal(t, http.StatusOK, statusForCode(constants.CodeSuccess))
	require.Equal(t, http.StatusOK, statusForCode(constants.CodeRetrieved))
	require.Equal(t, http.StatusBadRequest, statusForCode(constants.CodeInvalidField))
	require.Equal(t, http.StatusNotFound, statusForCode(constants.CodeCustomerNotFound))
	require.Equal(t, http.StatusNotFound, statusForCode(constants.CodeNoActionsFound))
	require.Equal(t, http.StatusInternalServerError, statusForCode(constants.CodeActionLogFailed))
	require.Equal(t, http.StatusBadRequest, statusForCode(constants.CodeOrderCreateFailed))
}
