package sharedwishlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
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

func (r *postgresRepo) Create(ctx context.Context, shared domain.SharedWishlist) (*domain.SharedWishlist, error) {
	payload, err := json.Marshal(shared.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("encode wishlist snapshot: %w", err)
	}
	const q = `
INSERT INTO shared_wishlists (token, user_id, wishlist_data, expires_at)
VALUES ($1, $2, $3, $4)
RETURNING created_at
`
	if err := r.pool.QueryRow(ctx, q, shared.Token, shared.UserID, payload, shared.ExpiresAt).Scan(&shared.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("shared wishlist repo: create user=%d error=%v", shared.UserID, err)
		return nil, err
	}
	return &shared, nil
}

func (r *postgresRepo) Get(ctx context.Context, token string) (*domain.SharedWishlist, error) {
	const q = `
SELECT token, user_id, wishlist_data, created_at, expires_at
FROM shared_wishlists
WHERE token = $1
LIMIT 1
`
	var out domain.SharedWishlist
	var payload []byte
	if err := r.pool.QueryRow(ctx, q, token).Scan(&out.Token, &out.UserID, &payload, &out.CreatedAt, &out.ExpiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(payload, &out.Snapshot); err != nil {
		r.logger.Printf("shared wishlist repo: decode token=%s error=%v", token, err)
		return nil, fmt.Errorf("decode wishlist snapshot: %w", err)
	}
	return &out, nil
}
