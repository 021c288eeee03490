package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/lawrenceChege/order-management/internal/models"
	"github.com/lawrenceChege/order-management/internal/utils"
)

type ProductRepository interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context) ([]*models.Product, error)
	Update(ctx context.Context, p *models.Product) error

	// AdjustQuantity atomically decrements stock, failing with
	// utils.ErrInsufficientStock when the product would go negative.
	AdjustQuantity(ctx context.Context, id uuid.UUID, delta int64) error
}

type productRepo struct {
	db DB
}

func NewProductRepository(db DB) ProductRepository {
	return &productRepo{db: db}
}

const baseSelectProduct = `
	SELECT id, name, COALESCE(description,''), category_id, currency_id,
	       price_minor, quantity, state_id, created_at, updated_at
	FROM products`

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (
			id, name, description, category_id, currency_id, price_minor,
			quantity, state_id, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW(),NOW())
	`, p.ID, p.Name, p.Description, p.CategoryID, p.CurrencyID, p.PriceMinor, p.Quantity, p.StateID)
	return err
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	row := r.db.QueryRow(ctx, baseSelectProduct+" WHERE id=$1", id)
	return scanProduct(row)
}

func (r *productRepo) List(ctx context.Context) ([]*models.Product, error) {
	rows, err := r.db.Query(ctx, baseSelectProduct+" ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepo) Update(ctx context.Context, p *models.Product) error {
	_, err := r.db.Exec(ctx, `
		UPDATE products
		SET name=$2, description=$3, category_id=$4, currency_id=$5,
		    price_minor=$6, quantity=$7, state_id=$8, updated_at=NOW()
		WHERE id=$1
	`, p.ID, p.Name, p.Description, p.CategoryID, p.CurrencyID, p.PriceMinor, p.Quantity, p.StateID)
	return err
}

func (r *productRepo) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE products SET quantity = quantity + $2, updated_at=NOW()
		WHERE id=$1 AND quantity + $2 >= 0
	`, id, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrInsufficientStock
	}
	return nil
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	if err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.CurrencyID,
		&p.PriceMinor, &p.Quantity, &p.StateID, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
