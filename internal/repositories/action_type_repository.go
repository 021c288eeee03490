package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/lawrenceChege/order-management/internal/models"
)

type ActionTypeRepository interface {
	GetByName(ctx context.Context, name string) (*models.ActionType, error)
	// GetOrCreate lazily provisions one row per distinct operation name.
	GetOrCreate(ctx context.Context, name string, stateID uuid.UUID) (*models.ActionType, error)
	List(ctx context.Context) ([]*models.ActionType, error)
}

type actionTypeRepo struct {
	db DB
}

func NewActionTypeRepository(db DB) ActionTypeRepository {
	return &actionTypeRepo{db: db}
}

const baseSelectActionType = `SELECT id, name, state_id, created_at, updated_at FROM action_types`

func (r *actionTypeRepo) GetByName(ctx context.Context, name string) (*models.ActionType, error) {
	row := r.db.QueryRow(ctx, baseSelectActionType+" WHERE name=$1", name)
	return scanActionType(row)
}

func (r *actionTypeRepo) GetOrCreate(ctx context.Context, name string, stateID uuid.UUID) (*models.ActionType, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO action_types (id, name, state_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, state_id, created_at, updated_at
	`, uuid.New(), name, stateID)
	return scanActionType(row)
}

func (r *actionTypeRepo) List(ctx context.Context) ([]*models.ActionType, error) {
	rows, err := r.db.Query(ctx, baseSelectActionType+" ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []*models.ActionType
	for rows.Next() {
		at, err := scanActionType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, at)
	}
	return types, rows.Err()
}

func scanActionType(row pgx.Row) (*models.ActionType, error) {
	var at models.ActionType
	if err := row.Scan(&at.ID, &at.Name, &at.StateID, &at.CreatedAt, &at.UpdatedAt); err != nil {
		return nil, err
	}
	return &at, nil
}
