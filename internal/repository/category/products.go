package category

import (
	"context"
	"sort"

	"dermayooth-storefront/internal/domain"
)

type productLister interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
}

type derivedRepo struct {
	products productLister
}

// FromProducts groups a product listing by category. It serves deployments
// where the catalog lives behind a remote API and there is no products table.
func FromProducts(products productLister) Repository {
	return &derivedRepo{products: products}
}

func (r *derivedRepo) ListActive(ctx context.Context) ([]domain.Category, error) {
	list, err := r.products.List(ctx, domain.ProductFilter{})
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, p := range list {
		if p.Category == "" || !p.Active() {
			continue
		}
		counts[p.Category]++
	}

	result := make([]domain.Category, 0, len(counts))
	for name, n := range counts {
		result = append(result, domain.Category{Name: name, Slug: Slug(name), ProductCount: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}
