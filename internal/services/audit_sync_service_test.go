package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lawrenceChege/order-management/internal/constants"
	"github.com/lawrenceChege/order-management/internal/models"
)

type captureExporter struct {
	exported []*models.Action
	err      error
}

func (e *captureExporter) Export(_ context.Context, actions []*models.Action) error {
	if e.err != nil {
		return e.err
	}
	e.exported = append(e.exported, actions...)
	return nil
}

func TestSyncActionsExportsOnlyTerminal(t *testing.T) {
	f := newAuditFixture(t)
	ctx := context.Background()

	open, err := f.log.LogAction(ctx, constants.ActionAddCustomer, "customers/customer_service/AddCustomer", RequestMeta{})
	require.NoError(t, err)

	closed, err := f.log.LogAction(ctx, constants.ActionAddProduct, "products/product_service/AddProduct", RequestMeta{})
	require.NoError(t, err)
	_, err = f.log.CompleteAction(ctx, closed, constants.CodeSuccess, "done", nil)
	require.NoError(t, err)

	failed, err := f.log.LogAction(ctx, constants.ActionPlaceOrder, "orders/order_service/PlaceOrder", RequestMeta{})
	require.NoError(t, err)
	_, err = f.log.MarkActionFailed(ctx, failed, constants.CodeOrderCreateFailed, "no stock")
	require.NoError(t, err)

	exp := &captureExporter{}
	sync := NewAuditSyncService(f.actions, f.states, exp)

	n, err := sync.SyncActions(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Len(t, exp.exported, 2)
	for _, a := range exp.exported {
		require.NotEqual(t, open.ID, a.ID, "active action must not be exported")
	}

	// A second pass finds nothing new.
	n, err = sync.SyncActions(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestSyncActionsLeavesBatchOnExportFailure(t *testing.T) {
	f := newAuditFixture(t)
	ctx := context.Background()

	a, err := f.log.LogAction(ctx, constants.ActionAddCustomer, "customers/customer_service/AddCustomer", RequestMeta{})
	require.NoError(t, err)
	_, err = f.log.CompleteAction(ctx, a, constants.CodeSuccess, "done", nil)
	require.NoError(t, err)

	exp := &captureExporter{err: errors.New("sink unavailable")}
	sync := NewAuditSyncService(f.actions, f.states, exp)

	_, err = sync.SyncActions(ctx)
	require.Error(t, err)

	// Once the sink recovers, the same batch ships.
	exp.err = nil
	n, err := sync.SyncActions(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
