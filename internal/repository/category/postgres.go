package category

import (
	"context"
	"regexp"
	"strings"

	"dermayooth-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type postgresRepo struct {
	db querier
}

func NewPostgres(db querier) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) ListActive(ctx context.Context) ([]domain.Category, error) {
	const q = `
SELECT category, COUNT(*)
FROM products
WHERE status = 'active' AND category <> ''
GROUP BY category
ORDER BY category ASC
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.Name, &c.ProductCount); err != nil {
			return nil, err
		}
		c.Slug = Slug(c.Name)
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// Slug makes a URL-friendly form of a category name, e.g. "Face Care" -> "face-care".
func Slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugRegexp.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
