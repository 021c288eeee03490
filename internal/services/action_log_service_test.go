package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lawrenceChege/order-management/internal/constants"
	"github.com/lawrenceChege/order-management/internal/models"
	"github.com/lawrenceChege/order-management/internal/testhelpers"
	"github.com/lawrenceChege/order-management/internal/utils"
)

type auditFixture struct {
	states  *testhelpers.MemStateRepository
	types   *testhelpers.MemActionTypeRepository
	actions *testhelpers.MemActionRepository
	users   *testhelpers.MemEUserRepository
	log     *ActionLogService

	active   *models.State
	complete *models.State
	failed   *models.State
	disabled *models.State
}

func newAuditFixture(t *testing.T) *auditFixture {
	t.Helper()
	ctx := context.Background()

	states := testhelpers.NewMemStateRepository()
	active, err := states.GetOrCreate(ctx, models.StateActive, "")
	require.NoError(t, err)
	complete, err := states.GetOrCreate(ctx, models.StateComplete, "")
	require.NoError(t, err)
	failed, err := states.GetOrCreate(ctx, models.StateFailed, "")
	require.NoError(t, err)
	disabled, err := states.GetOrCreate(ctx, models.StateDisabled, "")
	require.NoError(t, err)

	types := testhelpers.NewMemActionTypeRepository()
	for _, name := range constants.AllActionTypes {
		_, err := types.GetOrCreate(ctx, name, active.ID)
		require.NoError(t, err)
	}

	users := testhelpers.NewMemEUserRepository()
	actions := testhelpers.NewMemActionRepository(types, states, users)

	return &auditFixture{
		states:   states,
		types:    types,
		actions:  actions,
		users:    users,
		log:      NewActionLogService(actions, types, states, users),
		active:   active,
		complete: complete,
		failed:   failed,
		disabled: disabled,
	}
}

func TestLogActionAssignsSequentialReferences(t *testing.T) {
	f := newAuditFixture(t)
	ctx := context.Background()

	first, err := f.log.LogAction(ctx, constants.ActionAddCustomer, "customers/customer_service/AddCustomer", RequestMeta{})
	require.NoError(t, err)
	require.Equal(t, "A00000001", first.Reference)
	require.Equal(t, constants.CodePendingStatus, first.StatusCode)
	require.Equal(t, f.active.ID, first.StateID)

	second, err := f.log.LogAction(ctx, constants.ActionAddProduct, "products/product_service/AddProduct", RequestMeta{})
	require.NoError(t, err)
	require.Equal(t, "A00000002", second.Reference)
}

func TestLogActionRequiresTrace(t *testing.T) {
	f := newAuditFixture(t)

	_, err := f.log.LogAction(context.Background(), constants.ActionAddCustomer, "", RequestMeta{})
	require.ErrorIs(t, err, utils.ErrMissingTrace)
}

func TestLogActionUnknownActionType(t *testing.T) {
	f := newAuditFixture(t)

	_, err := f.log.LogAction(context.Background(), "Launch Rocket", "rockets/launch", RequestMeta{})
	require.ErrorIs(t, err, utils.ErrActionTypeNotFound)
}

func TestLogActionUnknownActorIsRecordedWithoutUser(t *testing.T) {
	f := newAuditFixture(t)
	ghost := uuid.New()

	action, err := f.log.LogAction(context.Background(), constants.ActionAddCustomer,
		"customers/customer_service/AddCustomer", RequestMeta{UserID: &ghost})
	require.NoError(t, err)
	require.Nil(t, action.UserID)
}

func TestLogActionCapturesRequestContext(t *testing.T) {
	f := newAuditFixture(t)

	action, err := f.log.LogAction(context.Background(), constants.ActionPlaceOrder,
		"orders/order_service/PlaceOrder", RequestMeta{
			SourceIP:       "10.0.0.7",
			Payload:        map[string]interface{}{"customer_id": "abc"},
			ClientViewable: true,
		})
	require.NoError(t, err)
	require.NotNil(t, action.SourceIP)
	require.Equal(t, "10.0.0.7", *action.SourceIP)
	require.Equal(t, "abc", action.Request["customer_id"])
	require.True(t, action.IsClientViewable)
}

func TestCompleteActionTransitionsToComplete(t *testing.T) {
	f := newAuditFixture(t)
	ctx := context.Background()

	action, err := f.log.LogAction(ctx, constants.ActionAddCustomer, "customers/customer_service/AddCustomer", RequestMeta{})
	require.NoError(t, err)

	updated, err := f.log.CompleteAction(ctx, action, constants.CodeSuccess, "Customer created successfully", nil)
	require.NoError(t, err)
	require.Equal(t, f.complete.ID, updated.StateID)
	require.Equal(t, constants.CodeSuccess, updated.StatusCode)
	require.Equal(t, "Customer created successfully", updated.Description)
}

func TestCompleteActionHonorsStateOverride(t *testing.T) {
	f := newAuditFixture(t)
	ctx := context.Background()

	action, err := f.log.LogAction(ctx, constants.ActionDisableUser, "users/euser_service/DisableUser", RequestMeta{})
	require.NoError(t, err)

	updated, err := f.log.CompleteAction(ctx, action, constants.CodeSuccess, "done", f.disabled)
	require.NoError(t, err)
	require.Equal(t, f.disabled.ID, updated.StateID)
}

func TestMarkActionFailedTransitionsToFailed(t *testing.T) {
	f := newAuditFixture(t)
	ctx := context.Background()

	action, err := f.log.LogAction(ctx, constants.ActionPlaceOrder, "orders/order_service/PlaceOrder", RequestMeta{})
	require.NoError(t, err)

	updated, err := f.log.MarkActionFailed(ctx, action, constants.CodeOrderCreateFailed, "Insufficient stock")
	require.NoError(t, err)
	require.Equal(t, f.failed.ID, updated.StateID)
	require.Equal(t, constants.CodeOrderCreateFailed, updated.StatusCode)
}

func TestCloseActionValidation(t *testing.T) {
	f := newAuditFixture(t)
	ctx := context.Background()

	action, err := f.log.LogAction(ctx, constants.ActionAddCustomer, "customers/customer_service/AddCustomer", RequestMeta{})
	require.NoError(t, err)

	_, err = f.log.CompleteAction(ctx, action, "", "desc", nil)
	require.ErrorIs(t, err, utils.ErrMissingStatusCode)

	_, err = f.log.CompleteAction(ctx, action, constants.CodeSuccess, "", nil)
	require.ErrorIs(t, err, utils.ErrMissingDescription)

	_, err = f.log.CompleteAction(ctx, nil, constants.CodeSuccess, "desc", nil)
	require.ErrorIs(t, err, utils.ErrMissingAction)
}

func TestClosingTwiceIsDetected(t *testing.T) {
	f := newAuditFixture(t)
	ctx := context.Background()

	action, err := f.log.LogAction(ctx, constants.ActionAddCustomer, "customers/customer_service/AddCustomer", RequestMeta{})
	require.NoError(t, err)

	_, err = f.log.CompleteAction(ctx, action, constants.CodeSuccess, "first close", nil)
	require.NoError(t, err)

	_, err = f.log.CompleteAction(ctx, action, constants.CodeSuccess, "second close", nil)
	require.ErrorIs(t, err, utils.ErrActionClosed)

	_, err = f.log.MarkActionFailed(ctx, action, constants.CodeException, "late failure")
	require.ErrorIs(t, err, utils.ErrActionClosed)

	// The terminal row keeps its first outcome.
	stored, err := f.actions.GetByID(ctx, action.ID)
	require.NoError(t, err)
	require.Equal(t, "first close", stored.Description)
}

func TestConcurrentOpensGetDistinctReferences(t *testing.T) {
	f := newAuditFixture(t)
	ctx := context.Background()

	// The counter only varies its last character, so keep the total well
	// under the 35 distinct successors available from an empty log.
	const workers = 4
	const opensPerWorker = 5

	var wg sync.WaitGroup
	refs := make(chan string, workers*opensPerWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < opensPerWorker; i++ {
				action, err := f.log.LogAction(ctx, constants.ActionPlaceOrder,
					fmt.Sprintf("orders/order_service/PlaceOrder/%d", w), RequestMeta{})
				if err != nil {
					t.Error(err)
					return
				}
				refs <- action.Reference
			}
		}(w)
	}
	wg.Wait()
	close(refs)

	seen := make(map[string]bool)
	for ref := range refs {
		require.Len(t, ref, 9)
		require.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
	require.Len(t, seen, workers*opensPerWorker)
}
