package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/lawrenceChege/order-management/internal/models"
)

type StateRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.State, error)
	GetByName(ctx context.Context, name string) (*models.State, error)
	// GetOrCreate provisions a canonical state idempotently; concurrent
	// callers converge on the same row via the name unique constraint.
	GetOrCreate(ctx context.Context, name, description string) (*models.State, error)
	List(ctx context.Context) ([]*models.State, error)
}

type stateRepo struct {
	db DB
}

func NewStateRepository(db DB) StateRepository {
	return &stateRepo{db: db}
}

const baseSelectState = `SELECT id, name, COALESCE(description,''), created_at, updated_at FROM states`

func (r *stateRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.State, error) {
	row := r.db.QueryRow(ctx, baseSelectState+" WHERE id=$1", id)
	return scanState(row)
}

func (r *stateRepo) GetByName(ctx context.Context, name string) (*models.State, error) {
	row := r.db.QueryRow(ctx, baseSelectState+" WHERE name=$1", name)
	return scanState(row)
}

func (r *stateRepo) GetOrCreate(ctx context.Context, name, description string) (*models.State, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO states (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, COALESCE(description,''), created_at, updated_at
	`, uuid.New(), name, description)
	return scanState(row)
}

func (r *stateRepo) List(ctx context.Context) ([]*models.State, error) {
	rows, err := r.db.Query(ctx, baseSelectState+" ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var states []*models.State
	for rows.Next() {
		s, err := scanState(rows)
		if err != nil {
			return nil, err
		}
		states = append(states, s)
	}
	return states, rows.Err()
}

func scanState(row pgx.Row) (*models.State, error) {
	var s models.State
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
