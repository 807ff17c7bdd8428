package category

import (
	"context"

	"dermayooth-storefront/internal/domain"
)

// Repository lists the categories shoppers can filter the catalog by.
type Repository interface {
	ListActive(ctx context.Context) ([]domain.Category, error)
}
