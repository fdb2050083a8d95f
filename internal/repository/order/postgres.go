package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `id, customer_name, customer_email, address, total_cents, donation_cents, charity_name, created_at`

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

func (r *postgresRepo) Create(ctx context.Context, order domain.Order) (*domain.Order, error) {
	if len(order.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const insertOrder = `
INSERT INTO orders (customer_name, customer_email, address, total_cents, donation_cents, charity_name)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + orderColumns
	created, err := scanOrder(tx.QueryRow(ctx, insertOrder,
		order.CustomerName,
		order.CustomerEmail,
		order.Address,
		order.TotalCents,
		order.DonationCents,
		order.CharityName,
	))
	if err != nil {
		r.logger.Printf("order repo: insert order email=%s error=%v", order.CustomerEmail, err)
		return nil, err
	}

	const insertItem = `
INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price_cents)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`
	created.Items = make([]domain.OrderItem, 0, len(order.Items))
	for _, it := range order.Items {
		it.OrderID = created.ID
		if err := tx.QueryRow(ctx, insertItem, it.OrderID, it.ProductID, it.ProductName, it.Quantity, it.UnitPriceCents).Scan(&it.ID); err != nil {
			r.logger.Printf("order repo: insert item order=%d product=%q error=%v", created.ID, it.ProductName, err)
			return nil, fmt.Errorf("insert order item: %w", err)
		}
		created.Items = append(created.Items, it)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Printf("order repo: commit order=%d error=%v", created.ID, err)
		return nil, err
	}
	r.logger.Printf("order repo: created order=%d items=%d total_cents=%d", created.ID, len(created.Items), created.TotalCents)
	return created, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1
`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%d error=%v", id, err)
		return nil, err
	}

	const itemsQ = `
SELECT id, order_id, product_id, product_name, quantity, unit_price_cents
FROM order_items
WHERE order_id = $1
ORDER BY id
`
	rows, err := r.pool.Query(ctx, itemsQ, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPriceCents); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return o, nil
}

// ListByEmail returns order headers newest first, without items.
func (r *postgresRepo) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE lower(customer_email) = lower($1)
ORDER BY created_at DESC, id DESC
`
	rows, err := r.pool.Query(ctx, q, email)
	if err != nil {
		r.logger.Printf("order repo: list email=%s error=%v", email, err)
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &o.Address, &o.TotalCents, &o.DonationCents, &o.CharityName, &o.CreatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}
