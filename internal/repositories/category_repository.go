package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/lawrenceChege/order-management/internal/models"
)

type CategoryRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetOrCreate(ctx context.Context, name, description string, stateID uuid.UUID) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
}

type CurrencyRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Currency, error)
	GetOrCreate(ctx context.Context, name, code string, stateID uuid.UUID) (*models.Currency, error)
	List(ctx context.Context) ([]*models.Currency, error)
}

type categoryRepo struct {
	db DB
}

func NewCategoryRepository(db DB) CategoryRepository {
	return &categoryRepo{db: db}
}

const baseSelectCategory = `SELECT id, name, COALESCE(description,''), state_id, created_at, updated_at FROM categories`

func (r *categoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row := r.db.QueryRow(ctx, baseSelectCategory+" WHERE id=$1", id)
	return scanCategory(row)
}

func (r *categoryRepo) GetOrCreate(ctx context.Context, name, description string, stateID uuid.UUID) (*models.Category, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO categories (id, name, description, state_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, COALESCE(description,''), state_id, created_at, updated_at
	`, uuid.New(), name, description, stateID)
	return scanCategory(row)
}

func (r *categoryRepo) List(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.db.Query(ctx, baseSelectCategory+" ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func scanCategory(row pgx.Row) (*models.Category, error) {
	var c models.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.StateID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

type currencyRepo struct {
	db DB
}

func NewCurrencyRepository(db DB) CurrencyRepository {
	return &currencyRepo{db: db}
}

const baseSelectCurrency = `SELECT id, name, code, COALESCE(description,''), state_id, created_at, updated_at FROM currencies`

func (r *currencyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Currency, error) {
	row := r.db.QueryRow(ctx, baseSelectCurrency+" WHERE id=$1", id)
	return scanCurrency(row)
}

func (r *currencyRepo) GetOrCreate(ctx context.Context, name, code string, stateID uuid.UUID) (*models.Currency, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO currencies (id, name, code, state_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, code, COALESCE(description,''), state_id, created_at, updated_at
	`, uuid.New(), name, code, stateID)
	return scanCurrency(row)
}

func (r *currencyRepo) List(ctx context.Context) ([]*models.Currency, error) {
	rows, err := r.db.Query(ctx, baseSelectCurrency+" ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var currencies []*models.Currency
	for rows.Next() {
		c, err := scanCurrency(rows)
		if err != nil {
			return nil, err
		}
		currencies = append(currencies, c)
	}
	return currencies, rows.Err()
}

func scanCurrency(row pgx.Row) (*models.Currency, error) {
	var c models.Currency
	if err := row.Scan(&c.ID, &c.Name, &c.Code, &c.Description, &c.StateID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
