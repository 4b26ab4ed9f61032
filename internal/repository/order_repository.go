package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shop-service/internal/domain"
)

// OrderRepository encapsulates order persistence.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository instantiates repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

// Create inserts the order and its line items in one transaction.
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const orderQuery = `
        INSERT INTO orders (user_id, status, payment_ref, total_cents)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, orderQuery,
		order.UserID,
		order.Status,
		order.PaymentRef,
		order.TotalCents,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return err
	}

	const itemQuery = `
        INSERT INTO order_items (order_id, product_id, name, price_cents, quantity)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`
	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		if err := tx.QueryRow(ctx, itemQuery,
			item.OrderID,
			item.ProductID,
			item.Name,
			item.PriceCents,
			item.Quantity,
		).Scan(&item.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	const query = `
        UPDATE orders SET status=$1, updated_at=NOW()
        WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}
	return r.GetByID(ctx, id)
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const query = `
        SELECT id, user_id, status, payment_ref, total_cents, created_at, updated_at
        FROM orders WHERE id=$1`
	var order domain.Order
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&order.PaymentRef,
		&order.TotalCents,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const query = `
        SELECT id, user_id, status, payment_ref, total_cents, created_at, updated_at
        FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *orderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	const query = `
        SELECT id, user_id, status, payment_ref, total_cents, created_at, updated_at
        FROM orders ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.Status,
			&order.PaymentRef,
			&order.TotalCents,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if err := r.loadItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *orderRepository) loadItems(ctx context.Context, order *domain.Order) error {
	const query = `
        SELECT id, order_id, product_id, name, price_cents, quantity
        FROM order_items WHERE order_id=$1`
	rows, err := r.pool.Query(ctx, query, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Name,
			&item.PriceCents,
			&item.Quantity,
		); err != nil {
			return err
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}
