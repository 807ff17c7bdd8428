package category

import (
	"context"

	"dermayooth-storefront/internal/domain"
	"dermayooth-storefront/internal/repository/category"
)

type Service struct {
	repo category.Repository
}

func New(repo category.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListActive(ctx)
}
