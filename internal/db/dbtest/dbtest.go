// Package dbtest connects integration tests to the database named by TEST_DB_DSN.
package dbtest

import (
	"context"
	"os"
	"testing"

	"storefront/internal/migrate"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool opens a migrated pool against TEST_DB_DSN and truncates every table.
// The test is skipped when TEST_DB_DSN is unset.
func Pool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	Reset(ctx, t, pool)
	return pool
}

func Reset(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE shared_wishlists, wishlist_items, order_items, orders, charities, products, users RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

// InsertUser creates a plain account and returns its id.
func InsertUser(ctx context.Context, t *testing.T, pool *pgxpool.Pool, name, email string) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(ctx, `
		INSERT INTO users (name, username, email, password_hash, address, contact_number)
		VALUES ($1, $2, $2, 'x', '', '')
		RETURNING id
	`, name, email).Scan(&id)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return id
}

// InsertProduct creates a product and returns its id.
func InsertProduct(ctx context.Context, t *testing.T, pool *pgxpool.Pool, key, name string, priceCents int64) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(ctx, `
		INSERT INTO products (key, name, description, price_cents)
		VALUES ($1, $2, 'desc', $3)
		RETURNING id
	`, key, name, priceCents).Scan(&id)
	if err != nil {
		t.Fatalf("insert product: %v", err)
	}
	return id
}
