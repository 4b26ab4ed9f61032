package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shop-service/internal/domain"
)

// ProductFilter captures catalog listing parameters.
type ProductFilter struct {
	CategoryID    *string
	PriceMinCents *int64
	PriceMaxCents *int64
	SearchTerm    *string
	Limit         int
	Offset        int
}

// ProductRepository encapsulates product persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	ListWithFilter(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	ListRelated(ctx context.Context, categoryID, excludeID string, limit int) ([]domain.Product, error)
	Count(ctx context.Context) (int64, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository instantiates repository.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

const productColumns = "id, name, slug, description, price_cents, quantity, category_id, shipping, created_at, updated_at"

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (name, slug, description, price_cents, quantity, category_id, shipping)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		product.Name,
		product.Slug,
		product.Description,
		product.PriceCents,
		product.Quantity,
		product.CategoryID,
		product.Shipping,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE products SET name=$1, slug=$2, description=$3, price_cents=$4, quantity=$5,
            category_id=$6, shipping=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		product.Name,
		product.Slug,
		product.Description,
		product.PriceCents,
		product.Quantity,
		product.CategoryID,
		product.Shipping,
		product.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id=$1`, productColumns)
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE slug=$1`, productColumns)
	return r.scanOne(r.pool.QueryRow(ctx, query, slug))
}

func (r *productRepository) ListWithFilter(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CategoryID != nil {
		conditions = append(conditions, "category_id="+arg(*filter.CategoryID))
	}
	if filter.PriceMinCents != nil {
		conditions = append(conditions, "price_cents>="+arg(*filter.PriceMinCents))
	}
	if filter.PriceMaxCents != nil {
		conditions = append(conditions, "price_cents<="+arg(*filter.PriceMaxCents))
	}
	if filter.SearchTerm != nil && *filter.SearchTerm != "" {
		ph := arg("%" + *filter.SearchTerm + "%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE %s OR description ILIKE %s)", ph, ph))
	}

	query := fmt.Sprintf(`SELECT %s FROM products`, productColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + arg(filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *productRepository) ListRelated(ctx context.Context, categoryID, excludeID string, limit int) ([]domain.Product, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM products
        WHERE category_id=$1 AND id<>$2
        ORDER BY created_at DESC LIMIT $3`, productColumns)
	rows, err := r.pool.Query(ctx, query, categoryID, excludeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *productRepository) scanOne(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.PriceCents,
		&p.Quantity,
		&p.CategoryID,
		&p.Shipping,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) scanMany(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Slug,
			&p.Description,
			&p.PriceCents,
			&p.Quantity,
			&p.CategoryID,
			&p.Shipping,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
