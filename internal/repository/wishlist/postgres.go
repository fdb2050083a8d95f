package wishlist

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
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

func (r *postgresRepo) Add(ctx context.Context, userID, productID int64) (bool, error) {
	const q = `
INSERT INTO wishlist_items (user_id, product_id)
VALUES ($1, $2)
ON CONFLICT ON CONSTRAINT wishlist_items_user_product_key DO NOTHING
`
	cmd, err := r.pool.Exec(ctx, q, userID, productID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return false, domain.ErrNotFound
		}
		r.logger.Printf("wishlist repo: add user=%d product=%d error=%v", userID, productID, err)
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *postgresRepo) Remove(ctx context.Context, userID, productID int64) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		r.logger.Printf("wishlist repo: remove user=%d product=%d error=%v", userID, productID, err)
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *postgresRepo) ListProducts(ctx context.Context, userID int64) ([]domain.Product, error) {
	const q = `
SELECT p.id, p.key, p.name, p.description, p.price_cents, p.category, p.stock, p.image_url, p.created_at
FROM wishlist_items w
JOIN products p ON p.id = w.product_id
WHERE w.user_id = $1
ORDER BY w.created_at DESC, w.id DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		r.logger.Printf("wishlist repo: list user=%d error=%v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Key, &p.Name, &p.Description, &p.PriceCents, &p.Category, &p.Stock, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *postgresRepo) ProductIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT product_id FROM wishlist_items WHERE user_id = $1 ORDER BY product_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *postgresRepo) Contains(ctx context.Context, userID, productID int64) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM wishlist_items WHERE user_id = $1 AND product_id = $2)`, userID, productID).Scan(&ok)
	return ok, err
}

func (r *postgresRepo) Clear(ctx context.Context, userID int64) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM wishlist_items WHERE user_id = $1`, userID)
	if err != nil {
		r.logger.Printf("wishlist repo: clear user=%d error=%v", userID, err)
		return 0, err
	}
	r.logger.Printf("wishlist repo: cleared user=%d removed=%d", userID, cmd.RowsAffected())
	return cmd.RowsAffected(), nil
}
