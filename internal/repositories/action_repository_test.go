package repositories

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/require"

	"github.com/lawrenceChege/order-management/internal/models"
	"github.com/lawrenceChege/order-management/internal/utils"
)

// The fakes below script one transaction per Begin so the allocation loop in
// CreateWithReference can be driven through failure paths that need two
// racing connections on a live database.

type rowFunc func(dest ...interface{}) error

func (f rowFunc) Scan(dest ...interface{}) error { return f(dest...) }

type scriptedTx struct {
	pgx.Tx
	queryRow  func(sql string, args ...interface{}) pgx.Row
	committed bool
}

func (t *scriptedTx) QueryRow(_ context.Context, sql string, args ...interface{}) pgx.Row {
	return t.queryRow(sql, args...)
}

func (t *scriptedTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *scriptedTx) Rollback(context.Context) error { return nil }

type scriptedDB struct {
	DB
	txs  []*scriptedTx
	next int
}

func (d *scriptedDB) Begin(context.Context) (pgx.Tx, error) {
	tx := d.txs[d.next]
	d.next++
	return tx, nil
}

// allocationTx scripts the read-generate-insert sequence: lastRef (or
// lastErr) answers the latest-row lock query, insertErr fails the INSERT.
func allocationTx(lastRef string, lastErr, insertErr error) *scriptedTx {
	tx := &scriptedTx{}
	tx.queryRow = func(sql string, _ ...interface{}) pgx.Row {
		switch {
		case strings.Contains(sql, "SELECT reference FROM actions"):
			return rowFunc(func(dest ...interface{}) error {
				if lastErr != nil {
					return lastErr
				}
				*dest[0].(*string) = lastRef
				return nil
			})
		case strings.Contains(sql, "SELECT EXISTS"):
			return rowFunc(func(dest ...interface{}) error {
				*dest[0].(*bool) = false
				return nil
			})
		case strings.Contains(sql, "INSERT INTO actions"):
			return rowFunc(func(dest ...interface{}) error {
				if insertErr != nil {
					return insertErr
				}
				now := time.Now()
				*dest[0].(*time.Time) = now
				*dest[1].(*time.Time) = now
				return nil
			})
		}
		panic("unexpected query: " + sql)
	}
	return tx
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "actions_reference_key"}
}

func newTestAction() *models.Action {
	return &models.Action{
		ID:           uuid.New(),
		ActionTypeID: uuid.New(),
		StateID:      uuid.New(),
		StatusCode:   "000.000.000",
		Trace:        "repositories/action_repository_test",
	}
}

// An empty table leaves nothing for the row lock to serialize on, so two
// concurrent openers can both derive the first reference; the loser's INSERT
// hits the unique index. The whole transaction must rerun and pick up the
// winner's committed row.
func TestCreateWithReferenceRetriesInsertCollision(t *testing.T) {
	loser := allocationTx("", pgx.ErrNoRows, uniqueViolation())
	rerun := allocationTx("A00000001", nil, nil)
	db := &scriptedDB{txs: []*scriptedTx{loser, rerun}}
	repo := NewActionRepository(db)

	a := newTestAction()
	require.NoError(t, repo.CreateWithReference(context.Background(), a))
	require.Equal(t, "A00000002", a.Reference)
	require.False(t, loser.committed)
	require.True(t, rerun.committed)
}

func TestCreateWithReferencePropagatesOtherInsertErrors(t *testing.T) {
	broken := allocationTx("", pgx.ErrNoRows, errors.New("connection reset"))
	db := &scriptedDB{txs: []*scriptedTx{broken}}
	repo := NewActionRepository(db)

	err := repo.CreateWithReference(context.Background(), newTestAction())
	require.ErrorContains(t, err, "connection reset")
	require.Equal(t, 1, db.next, "non-collision errors must not retry")
}

func TestCreateWithReferenceGivesUpAfterRepeatedCollisions(t *testing.T) {
	var txs []*scriptedTx
	for i := 0; i <= maxReferenceRetries; i++ {
		txs = append(txs, allocationTx("A00000001", nil, uniqueViolation()))
	}
	db := &scriptedDB{txs: txs}
	repo := NewActionRepository(db)

	err := repo.CreateWithReference(context.Background(), newTestAction())
	require.ErrorIs(t, err, utils.ErrReferenceExhausted)
	require.Equal(t, maxReferenceRetries+1, db.next)
}
