package sharedwishlist

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// Create returns domain.ErrAlreadyExists when the token is taken.
	Create(ctx context.Context, shared domain.SharedWishlist) (*domain.SharedWishlist, error)
	Get(ctx context.Context, token string) (*domain.SharedWishlist, error)
}
