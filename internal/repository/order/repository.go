package order

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// Create stores the order and its items atomically and returns the order with ids set.
	Create(ctx context.Context, order domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Order, error)
}
