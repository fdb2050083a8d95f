package charity

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	ListActive(ctx context.Context) ([]domain.Charity, error)
	GetByID(ctx context.Context, id int64) (*domain.Charity, error)
}
