package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/lawrenceChege/order-management/internal/models"
)

type RoleRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Role, error)
	GetOrCreate(ctx context.Context, name, description string, stateID uuid.UUID) (*models.Role, error)
	List(ctx context.Context) ([]*models.Role, error)
}

type roleRepo struct {
	db DB
}

func NewRoleRepository(db DB) RoleRepository {
	return &roleRepo{db: db}
}

const baseSelectRole = `SELECT id, name, COALESCE(description,''), state_id, created_at, updated_at FROM roles`

func (r *roleRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	row := r.db.QueryRow(ctx, baseSelectRole+" WHERE id=$1", id)
	return scanRole(row)
}

func (r *roleRepo) GetOrCreate(ctx context.Context, name, description string, stateID uuid.UUID) (*models.Role, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO roles (id, name, description, state_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, COALESCE(description,''), state_id, created_at, updated_at
	`, uuid.New(), name, description, stateID)
	return scanRole(row)
}

func (r *roleRepo) List(ctx context.Context) ([]*models.Role, error) {
	rows, err := r.db.Query(ctx, baseSelectRole+" ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func scanRole(row pgx.Row) (*models.Role, error) {
	var role models.Role
	if err := row.Scan(&role.ID, &role.Name, &role.Description, &role.StateID, &role.CreatedAt, &role.UpdatedAt); err != nil {
		return nil, err
	}
	return &role, nil
}
