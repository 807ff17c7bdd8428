package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"dermayooth-storefront/internal/domain"
	"dermayooth-storefront/internal/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// dbtx is the subset of pgxpool.Pool the repository uses.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresRepo struct {
	db     dbtx
	logger *zap.Logger
}

func NewPostgres(db dbtx, logger *zap.Logger) Repository {
	return &postgresRepo{db: db, logger: logging.OrNop(logger)}
}

const productColumns = `id, name, short_description, long_description, price, category, status,
       benefits, ingredients, directions, specifications, images, featured, sort_order,
       created_at, updated_at`

func (r *postgresRepo) ListActive(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	var (
		where = []string{"status = 'active'"}
		args  []any
	)
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		where = append(where, fmt.Sprintf("featured = $%d", len(args)))
	}
	limit := filter.Limit
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}
	args = append(args, limit)

	q := `
SELECT ` + productColumns + `
FROM products
WHERE ` + strings.Join(where, " AND ") + `
ORDER BY featured DESC, sort_order ASC, created_at DESC
LIMIT ` + fmt.Sprintf("$%d", len(args))

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error("product repo: list", zap.String("category", filter.Category), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("product repo: list rows", zap.Error(err))
		return nil, err
	}
	r.logger.Debug("product repo: list", zap.String("category", filter.Category), zap.Int("count", len(result)))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	p, err := scanProduct(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("product repo: get not found", zap.String("id", id))
			return nil, domain.ErrNotFound
		}
		r.logger.Error("product repo: get", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, name, short_description, long_description, price, category, status,
                      benefits, ingredients, directions, specifications, images, featured, sort_order)
VALUES (COALESCE(NULLIF($1, ''), gen_random_uuid()::text), $2, $3, $4, $5, $6, $7, $8::jsonb, $9, $10, $11::jsonb, $12::jsonb, $13, $14)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    short_description = EXCLUDED.short_description,
    long_description = EXCLUDED.long_description,
    price = EXCLUDED.price,
    category = EXCLUDED.category,
    status = EXCLUDED.status,
    benefits = EXCLUDED.benefits,
    ingredients = EXCLUDED.ingredients,
    directions = EXCLUDED.directions,
    specifications = EXCLUDED.specifications,
    images = EXCLUDED.images,
    featured = EXCLUDED.featured,
    sort_order = EXCLUDED.sort_order,
    updated_at = now()
RETURNING id, created_at, updated_at
`
	status := product.Status
	if status == "" {
		status = domain.ProductStatusActive
	}
	res := product
	res.Status = status
	res.Benefits = nonNil(product.Benefits)
	res.Images = nonNil(product.Images)

	benefitsJSON, err := json.Marshal(res.Benefits)
	if err != nil {
		return nil, fmt.Errorf("marshal benefits: %w", err)
	}
	specsJSON, err := json.Marshal(res.Specifications)
	if err != nil {
		return nil, fmt.Errorf("marshal specifications: %w", err)
	}
	imagesJSON, err := json.Marshal(res.Images)
	if err != nil {
		return nil, fmt.Errorf("marshal images: %w", err)
	}

	err = r.db.QueryRow(ctx, q,
		product.ID,
		product.Name,
		product.ShortDescription,
		product.LongDescription,
		product.Price,
		product.Category,
		status,
		benefitsJSON,
		product.Ingredients,
		product.Directions,
		specsJSON,
		imagesJSON,
		product.Featured,
		product.Order,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		r.logger.Error("product repo: upsert", zap.String("id", product.ID), zap.String("name", product.Name), zap.Error(err))
		return nil, err
	}
	r.logger.Info("product repo: upserted", zap.String("id", res.ID), zap.String("name", res.Name))
	return &res, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p                       domain.Product
		benefits, specs, images []byte
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.ShortDescription,
		&p.LongDescription,
		&p.Price,
		&p.Category,
		&p.Status,
		&benefits,
		&p.Ingredients,
		&p.Directions,
		&specs,
		&images,
		&p.Featured,
		&p.Order,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return domain.Product{}, err
	}
	if err := unmarshalColumn(benefits, &p.Benefits); err != nil {
		return domain.Product{}, fmt.Errorf("product %s benefits: %w", p.ID, err)
	}
	if err := unmarshalColumn(specs, &p.Specifications); err != nil {
		return domain.Product{}, fmt.Errorf("product %s specifications: %w", p.ID, err)
	}
	if err := unmarshalColumn(images, &p.Images); err != nil {
		return domain.Product{}, fmt.Errorf("product %s images: %w", p.ID, err)
	}
	p.Benefits = nonNil(p.Benefits)
	p.Images = nonNil(p.Images)
	return p, nil
}

func unmarshalColumn(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
