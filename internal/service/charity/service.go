package charity

import (
	"context"

	"storefront/internal/domain"
)

type charityRepo interface {
	ListActive(ctx context.Context) ([]domain.Charity, error)
	GetByID(ctx context.Context, id int64) (*domain.Charity, error)
}

// Service exposes the charities offered at checkout.
type Service struct {
	repo charityRepo
}

func New(repo charityRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListActive(ctx context.Context) ([]domain.Charity, error) {
	return s.repo.ListActive(ctx)
}

// ResolveActive returns the charity only when it exists and is active.
func (s *Service) ResolveActive(ctx context.Context, id int64) (*domain.Charity, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.Active {
		return nil, domain.ErrNotFound
	}
	return c, nil
}
