package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/lawrenceChege/order-management/internal/audit"
	"github.com/lawrenceChege/order-management/internal/models"
	"github.com/lawrenceChege/order-management/internal/utils"
)

// maxReferenceRetries bounds collision-driven regeneration before an open
// is abandoned.
const maxReferenceRetries = 20

type ActionRepository interface {
	// CreateWithReference assigns the next unique reference to a and inserts
	// it, all inside one transaction. The most recent action row is locked
	// for the whole read-generate-insert sequence so concurrent openers
	// serialize instead of deriving the same successor. A unique violation
	// at insert time retries the whole transaction, bounded like reference
	// regeneration.
	CreateWithReference(ctx context.Context, a *models.Action) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Action, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*models.ActionDetail, error)
	List(ctx context.Context) ([]*models.ActionDetail, error)

	// CloseIfActive transitions an action to a terminal state only when it
	// is still in fromState. Returns utils.ErrActionClosed when the row was
	// already terminal (or absent), so a repeated close is detectable.
	CloseIfActive(ctx context.Context, id, fromStateID, toStateID uuid.UUID, statusCode, description string) (*models.Action, error)

	ListUnsynced(ctx context.Context, terminalStateIDs []uuid.UUID, limit int) ([]*models.Action, error)
	MarkSynced(ctx context.Context, ids []uuid.UUID) error
}

type actionRepo struct {
	db DB
}

func NewActionRepository(db DB) ActionRepository {
	return &actionRepo{db: db}
}

const baseSelectAction = `
	SELECT id, user_id, action_type_id, reference, source_ip, request, status_code,
	       trace, COALESCE(description,''), is_client_viewable, state_id, synced,
	       created_at, updated_at
	FROM actions`

func (r *actionRepo) CreateWithReference(ctx context.Context, a *models.Action) error {
	for attempt := 0; ; attempt++ {
		err := r.createWithReferenceOnce(ctx, a)
		// On an empty table the row lock protects nothing, so two openers
		// can both derive the first reference and the loser only finds out
		// at insert time. Rerunning the transaction re-reads the winner's
		// committed row and derives a fresh successor.
		if !isUniqueViolation(err) {
			return err
		}
		if attempt >= maxReferenceRetries {
			return utils.ErrReferenceExhausted
		}
	}
}

func (r *actionRepo) createWithReferenceOnce(ctx context.Context, a *models.Action) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var last string
	err = tx.QueryRow(ctx, `SELECT reference FROM actions ORDER BY created_at DESC LIMIT 1 FOR UPDATE`).Scan(&last)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	ref := audit.NextReference(last)
	for attempt := 0; ; attempt++ {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM actions WHERE reference=$1)`, ref).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			break
		}
		if attempt >= maxReferenceRetries {
			return utils.ErrReferenceExhausted
		}
		ref = audit.NextReference(ref)
	}
	a.Reference = ref

	// Insert is the last step of the atomic unit: a failed open leaves no
	// half-open row behind.
	row := tx.QueryRow(ctx, `
		INSERT INTO actions (
			id, user_id, action_type_id, reference, source_ip, request,
			status_code, trace, description, is_client_viewable, state_id,
			synced, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,false,NOW(),NOW())
		RETURNING created_at, updated_at
	`,
		a.ID, a.UserID, a.ActionTypeID, a.Reference, a.SourceIP, a.Request,
		a.StatusCode, a.Trace, a.Description, a.IsClientViewable, a.StateID,
	)
	if err := row.Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *actionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Action, error) {
	row := r.db.QueryRow(ctx, baseSelectAction+" WHERE id=$1", id)
	return scanAction(row)
}

const baseSelectActionDetail = `
	SELECT a.id, a.user_id, a.action_type_id, a.reference, a.source_ip, a.request,
	       a.status_code, a.trace, COALESCE(a.description,''), a.is_client_viewable,
	       a.state_id, a.synced, a.created_at, a.updated_at,
	       at.name, s.name, u.username
	FROM actions a
	JOIN action_types at ON at.id = a.action_type_id
	JOIN states s ON s.id = a.state_id
	LEFT JOIN eusers u ON u.id = a.user_id`

func (r *actionRepo) GetDetail(ctx context.Context, id uuid.UUID) (*models.ActionDetail, error) {
	row := r.db.QueryRow(ctx, baseSelectActionDetail+" WHERE a.id=$1", id)
	return scanActionDetail(row)
}

func (r *actionRepo) List(ctx context.Context) ([]*models.ActionDetail, error) {
	rows, err := r.db.Query(ctx, baseSelectActionDetail+" ORDER BY a.created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []*models.ActionDetail
	for rows.Next() {
		a, err := scanActionDetail(rows)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

func (r *actionRepo) CloseIfActive(ctx context.Context, id, fromStateID, toStateID uuid.UUID, statusCode, description string) (*models.Action, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE actions
		SET status_code=$3, description=$4, state_id=$5, updated_at=NOW()
		WHERE id=$1 AND state_id=$2
		RETURNING id, user_id, action_type_id, reference, source_ip, request, status_code,
		          trace, COALESCE(description,''), is_client_viewable, state_id, synced,
		          created_at, updated_at
	`, id, fromStateID, toStateID, statusCode, description)
	a, err := scanAction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, utils.ErrActionClosed
	}
	return a, err
}

func (r *actionRepo) ListUnsynced(ctx context.Context, terminalStateIDs []uuid.UUID, limit int) ([]*models.Action, error) {
	rows, err := r.db.Query(ctx,
		baseSelectAction+` WHERE synced=false AND state_id = ANY($1) ORDER BY created_at LIMIT $2`,
		terminalStateIDs, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []*models.Action
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

func (r *actionRepo) MarkSynced(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx, `UPDATE actions SET synced=true, updated_at=NOW() WHERE id = ANY($1)`, ids)
	return err
}

func scanAction(row pgx.Row) (*models.Action, error) {
	var a models.Action
	if err := row.Scan(
		&a.ID, &a.UserID, &a.ActionTypeID, &a.Reference, &a.SourceIP, &a.Request,
		&a.StatusCode, &a.Trace, &a.Description, &a.IsClientViewable, &a.StateID,
		&a.Synced, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func scanActionDetail(row pgx.Row) (*models.ActionDetail, error) {
	var a models.ActionDetail
	if err := row.Scan(
		&a.ID, &a.UserID, &a.ActionTypeID, &a.Reference, &a.SourceIP, &a.Request,
		&a.StatusCode, &a.Trace, &a.Description, &a.IsClientViewable, &a.StateID,
		&a.Synced, &a.CreatedAt, &a.UpdatedAt,
		&a.ActionTypeName, &a.StateName, &a.Username,
	); err != nil {
		return nil, err
	}
	return &a, nil
}
