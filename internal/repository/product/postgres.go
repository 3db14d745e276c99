package product

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khsakib1010-art/b2b-store/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, style_number, name, COALESCE(description, ''), colors, sizes, price_cents, created_at`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *postgresRepo) ListVisibleTo(ctx context.Context, customerID string) ([]domain.Product, error) {
	// A product with no visibility rows is visible to everyone; rows form a
	// per-product whitelist.
	q := `
SELECT ` + productColumns + `
FROM products p
WHERE NOT EXISTS (SELECT 1 FROM product_visibility v WHERE v.product_id = p.id)
   OR EXISTS (SELECT 1 FROM product_visibility v WHERE v.product_id = p.id AND v.customer_id = $1)
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		r.logger.Printf("product repo: list visible customer_id=%s error=%v", customerID, err)
		return nil, err
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&p.ID, &p.StyleNumber, &p.Name, &p.Description, &p.Colors, &p.Sizes, &p.PriceCents, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (style_number, name, description, colors, sizes, price_cents)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
ON CONFLICT (style_number) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    colors = EXCLUDED.colors,
    sizes = EXCLUDED.sizes,
    price_cents = EXCLUDED.price_cents
RETURNING id::text, created_at
`
	res := product
	err := r.pool.QueryRow(ctx, q,
		product.StyleNumber,
		product.Name,
		product.Description,
		product.Colors,
		product.Sizes,
		product.PriceCents,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert style=%s error=%v", product.StyleNumber, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted style=%s id=%s", res.StyleNumber, res.ID)
	return &res, nil
}

func (r *postgresRepo) SetVisibility(ctx context.Context, productID string, customerIDs []string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM product_visibility WHERE product_id = $1`, productID); err != nil {
		return err
	}
	for _, customerID := range customerIDs {
		if _, err := tx.Exec(ctx, `
INSERT INTO product_visibility (product_id, customer_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING
`, productID, customerID); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.Printf("product repo: visibility product_id=%s customers=%d", productID, len(customerIDs))
	return nil
}

func (r *postgresRepo) collect(rows pgx.Rows) ([]domain.Product, error) {
	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.StyleNumber, &p.Name, &p.Description, &p.Colors, &p.Sizes, &p.PriceCents, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: rows error=%v", err)
		return nil, err
	}
	return result, nil
}
