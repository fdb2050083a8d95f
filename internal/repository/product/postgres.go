package product

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `id, key, name, description, price_cents, category, stock, image_url, created_at`

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

func (r *postgresRepo) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
  AND ($2 = '' OR category = $2)
ORDER BY created_at DESC, id DESC
`
	query := strings.TrimSpace(filter.Query)
	category := strings.TrimSpace(filter.Category)
	rows, err := r.pool.Query(ctx, q, query, category)
	if err != nil {
		r.logger.Printf("product repo: list q=%q category=%q error=%v", query, category, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	r.logger.Printf("product repo: list q=%q category=%q count=%d", query, category, len(result))
	return result, nil
}

func (r *postgresRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%d not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%d error=%v", id, err)
		return nil, err
	}
	return p, nil
}

// GetByIDs returns the products that still exist, keyed by id. Missing ids are absent.
func (r *postgresRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Product, error) {
	out := make(map[int64]domain.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = ANY($1)
`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		r.logger.Printf("product repo: get many count=%d error=%v", len(ids), err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out[p.ID] = *p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (key, name, description, price_cents, category, stock, image_url)
VALUES ($1, $2, $3, $4, COALESCE(NULLIF($5, ''), 'General'), $6, COALESCE(NULLIF($7, ''), $8))
ON CONFLICT (key) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    category = EXCLUDED.category,
    stock = EXCLUDED.stock,
    image_url = EXCLUDED.image_url
RETURNING ` + productColumns
	res, err := scanProduct(r.pool.QueryRow(ctx, q,
		product.Key,
		product.Name,
		product.Description,
		product.PriceCents,
		product.Category,
		product.Stock,
		product.ImageURL,
		domain.DefaultProductImage,
	))
	if err != nil {
		r.logger.Printf("product repo: upsert key=%s error=%v", product.Key, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted key=%s id=%d", res.Key, res.ID)
	return res, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%d error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("product repo: deleted id=%d", id)
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(&p.ID, &p.Key, &p.Name, &p.Description, &p.PriceCents, &p.Category, &p.Stock, &p.ImageURL, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
