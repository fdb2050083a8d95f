package catalog

import (
	"context"
	"strings"

	"storefront/internal/domain"
)

type productRepo interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Product, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo productRepo
}

func New(repo productRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	filter.Category = strings.TrimSpace(filter.Category)
	return s.repo.List(ctx, filter)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// GetMany returns the products that still exist, keyed by id.
func (s *Service) GetMany(ctx context.Context, ids []int64) (map[int64]domain.Product, error) {
	return s.repo.GetByIDs(ctx, ids)
}

// Upsert creates or replaces a product identified by its key.
func (s *Service) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	p.Key = strings.TrimSpace(p.Key)
	p.Name = strings.TrimSpace(p.Name)
	if p.Key == "" || p.Name == "" {
		return nil, domain.NewValidationError("product key and name are required")
	}
	if p.PriceCents < 0 {
		return nil, domain.NewValidationError("product price must not be negative")
	}
	if p.Stock < 0 {
		p.Stock = 0
	}
	return s.repo.Upsert(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
