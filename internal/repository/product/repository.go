package product

import (
	"context"

	"dermayooth-storefront/internal/domain"
)

type Repository interface {
	// ListActive returns active products ordered featured first, then by
	// display order, then newest first.
	ListActive(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	// GetByID returns a product regardless of status.
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// DefaultListLimit caps catalog listings when no limit is requested.
const DefaultListLimit = 50
