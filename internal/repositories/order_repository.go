package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/lawrenceChege/order-management/internal/models"
)

type OrderRepository interface {
	// CreateWithItems inserts the order and its items in one transaction.
	CreateWithItems(ctx context.Context, o *models.Order, items []*models.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.Order, error)
	List(ctx context.Context) ([]*models.Order, error)
	ListItems(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error)
	UpdateState(ctx context.Context, id, stateID uuid.UUID) error
}

type orderRepo struct {
	db DB
}

func NewOrderRepository(db DB) OrderRepository {
	return &orderRepo{db: db}
}

const baseSelectOrder = `SELECT id, customer_id, total_minor, state_id, created_at, updated_at FROM orders`

func (r *orderRepo) CreateWithItems(ctx context.Context, o *models.Order, items []*models.OrderItem) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, customer_id, total_minor, state_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,NOW(),NOW())
	`, o.ID, o.CustomerID, o.TotalMinor, o.StateID)
	if err != nil {
		return err
	}
	for _, item := range items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, unit_price_minor, created_at)
			VALUES ($1,$2,$3,$4,$5,NOW())
		`, item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitPriceMinor)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	row := r.db.QueryRow(ctx, baseSelectOrder+" WHERE id=$1", id)
	return scanOrder(row)
}

func (r *orderRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.Order, error) {
	rows, err := r.db.Query(ctx, baseSelectOrder+" WHERE customer_id=$1 ORDER BY created_at DESC", customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *orderRepo) List(ctx context.Context) ([]*models.Order, error) {
	rows, err := r.db.Query(ctx, baseSelectOrder+" ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *orderRepo) ListItems(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price_minor, created_at
		FROM order_items WHERE order_id=$1 ORDER BY created_at
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.OrderItem
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPriceMinor, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

func (r *orderRepo) UpdateState(ctx context.Context, id, stateID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE orders SET state_id=$2, updated_at=NOW() WHERE id=$1`, id, stateID)
	return err
}

func collectOrders(rows pgx.Rows) ([]*models.Order, error) {
	var orders []*models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	if err := row.Scan(&o.ID, &o.CustomerID, &o.TotalMinor, &o.StateID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}
