package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/lawrenceChege/order-management/internal/models"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *models.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	GetByUsername(ctx context.Context, username string) (*models.Customer, error)
	List(ctx context.Context) ([]*models.Customer, error)
	Update(ctx context.Context, c *models.Customer) error
}

type customerRepo struct {
	db DB
}

func NewCustomerRepository(db DB) CustomerRepository {
	return &customerRepo{db: db}
}

const baseSelectCustomer = `
	SELECT id, username, email, password_hash, code, COALESCE(phone_number,''),
	       state_id, created_at, updated_at
	FROM customers`

func (r *customerRepo) Create(ctx context.Context, c *models.Customer) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO customers (
			id, username, email, password_hash, code, phone_number, state_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,NOW(),NOW())
	`, c.ID, c.Username, c.Email, c.PasswordHash, c.Code, c.PhoneNumber, c.StateID)
	return err
}

func (r *customerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	row := r.db.QueryRow(ctx, baseSelectCustomer+" WHERE id=$1", id)
	return scanCustomer(row)
}

func (r *customerRepo) GetByUsername(ctx context.Context, username string) (*models.Customer, error) {
	row := r.db.QueryRow(ctx, baseSelectCustomer+" WHERE username=$1", username)
	return scanCustomer(row)
}

func (r *customerRepo) List(ctx context.Context) ([]*models.Customer, error) {
	rows, err := r.db.Query(ctx, baseSelectCustomer+" ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *customerRepo) Update(ctx context.Context, c *models.Customer) error {
	_, err := r.db.Exec(ctx, `
		UPDATE customers
		SET email=$2, password_hash=$3, phone_number=$4, state_id=$5, updated_at=NOW()
		WHERE id=$1
	`, c.ID, c.Email, c.PasswordHash, c.PhoneNumber, c.StateID)
	return err
}

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var c models.Customer
	if err := row.Scan(
		&c.ID, &c.Username, &c.Email, &c.PasswordHash, &c.Code, &c.PhoneNumber,
		&c.StateID, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
