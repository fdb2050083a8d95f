package charity

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
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

func (r *postgresRepo) ListActive(ctx context.Context) ([]domain.Charity, error) {
	const q = `
SELECT id, name, description, website, active, created_at
FROM charities
WHERE active
ORDER BY name
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("charity repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var out []domain.Charity
	for rows.Next() {
		var c domain.Charity
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Website, &c.Active, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Charity, error) {
	const q = `
SELECT id, name, description, website, active, created_at
FROM charities
WHERE id = $1
`
	var c domain.Charity
	err := r.pool.QueryRow(ctx, q, id).Scan(&c.ID, &c.Name, &c.Description, &c.Website, &c.Active, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("charity repo: get id=%d error=%v", id, err)
		return nil, err
	}
	return &c, nil
}
