package order

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/google/uuid"
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

const orderColumns = `id::text, customer_id::text, customer_name, customer_email, po_number, status, total_items, created_at`

func (r *postgresRepo) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var order domain.Order
	err = tx.QueryRow(ctx, `
INSERT INTO orders (customer_id, customer_name, customer_email, po_number, status)
VALUES ($1, $2, $3, $4, 'pending')
RETURNING `+orderColumns+`
`, in.CustomerID, in.CustomerName, in.CustomerEmail, in.PONumber).Scan(
		&order.ID, &order.CustomerID, &order.CustomerName, &order.CustomerEmail,
		&order.PONumber, &order.Status, &order.TotalItems, &order.CreatedAt,
	)
	if err != nil {
		r.logger.Printf("order repo: insert customer_id=%s error=%v", in.CustomerID, err)
		return nil, err
	}

	for pos, item := range in.Items {
		item.ID = uuid.NewString()
		item.OrderID = order.ID
		if _, err := tx.Exec(ctx, `
INSERT INTO order_items (id, order_id, product_id, product_name, style_number, color, size, quantity, position)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, item.ID, item.OrderID, item.ProductID, item.ProductName, item.StyleNumber, item.Color, item.Size, item.Quantity, pos); err != nil {
			r.logger.Printf("order repo: insert item order_id=%s error=%v", order.ID, err)
			return nil, err
		}
		order.Items = append(order.Items, item)
	}

	// total_items is derived from the rows just written, never trusted from
	// the caller.
	if err := tx.QueryRow(ctx, `
UPDATE orders
SET total_items = COALESCE((
	SELECT SUM(quantity)
	FROM order_items
	WHERE order_id = $1
), 0)
WHERE id = $1
RETURNING total_items
`, order.ID).Scan(&order.TotalItems); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created id=%s po=%s total_items=%d", order.ID, order.PONumber, order.TotalItems)
	return &order, nil
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	q := `
SELECT ` + orderColumns + `
FROM orders
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()
	return r.collectWithItems(ctx, rows)
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	q := `
SELECT ` + orderColumns + `
FROM orders
WHERE customer_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		r.logger.Printf("order repo: list customer_id=%s error=%v", customerID, err)
		return nil, err
	}
	defer rows.Close()
	return r.collectWithItems(ctx, rows)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	q := `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1
`
	var order domain.Order
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&order.ID, &order.CustomerID, &order.CustomerName, &order.CustomerEmail,
		&order.PONumber, &order.Status, &order.TotalItems, &order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%s error=%v", id, err)
		return nil, err
	}
	items, err := r.itemsFor(ctx, []string{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	return &order, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	q := `
UPDATE orders
SET status = $1
WHERE id = $2
RETURNING ` + orderColumns + `
`
	var order domain.Order
	err := r.pool.QueryRow(ctx, q, string(status), id).Scan(
		&order.ID, &order.CustomerID, &order.CustomerName, &order.CustomerEmail,
		&order.PONumber, &order.Status, &order.TotalItems, &order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: update status id=%s error=%v", id, err)
		return nil, err
	}
	items, err := r.itemsFor(ctx, []string{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	r.logger.Printf("order repo: status id=%s -> %s", order.ID, order.Status)
	return &order, nil
}

func (r *postgresRepo) collectWithItems(ctx context.Context, rows pgx.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	var ids []string
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID, &o.CustomerID, &o.CustomerName, &o.CustomerEmail,
			&o.PONumber, &o.Status, &o.TotalItems, &o.CreatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

func (r *postgresRepo) itemsFor(ctx context.Context, orderIDs []string) (map[string][]domain.OrderItem, error) {
	const q = `
SELECT id::text, order_id::text, product_id::text, product_name, style_number, color, size, quantity
FROM order_items
WHERE order_id = ANY($1)
ORDER BY order_id, position ASC
`
	rows, err := r.pool.Query(ctx, q, orderIDs)
	if err != nil {
		r.logger.Printf("order repo: items error=%v", err)
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.StyleNumber, &item.Color, &item.Size, &item.Quantity,
		); err != nil {
			return nil, err
		}
		result[item.OrderID] = append(result[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
