package wishlist

import (
	"context"

	"storefront/internal/domain"
)

// Repository stores per-user wishlist entries. A product appears at most once per user.
type Repository interface {
	// Add reports whether a new entry was created.
	Add(ctx context.Context, userID, productID int64) (bool, error)
	// Remove reports whether an entry was deleted.
	Remove(ctx context.Context, userID, productID int64) (bool, error)
	ListProducts(ctx context.Context, userID int64) ([]domain.Product, error)
	ProductIDs(ctx context.Context, userID int64) ([]int64, error)
	Contains(ctx context.Context, userID, productID int64) (bool, error)
	Clear(ctx context.Context, userID int64) (int64, error)
}
