package product

import (
	"context"

	"dermayooth-storefront/internal/domain"
	productrepo "dermayooth-storefront/internal/repository/product"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// List returns active products matching filter.
func (s *Service) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.repo.ListActive(ctx, filter)
}

// Get returns an active product. Inactive and draft products are reported as
// not found so they never leak onto the storefront.
func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Active() {
		return nil, domain.ErrNotFound
	}
	return p, nil
}
