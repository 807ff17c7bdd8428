package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// dbtx is the subset of pgxpool.Pool the storage uses.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresStorage struct {
	db dbtx
}

func NewPostgres(db dbtx) Storage {
	return &postgresStorage{db: db}
}

func (r *postgresStorage) Get(ctx context.Context, key string) (string, bool, error) {
	const q = `
SELECT value
FROM cart_storage
WHERE key = $1
`
	var value string
	if err := r.db.QueryRow(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select cart: %w", err)
	}
	return value, true, nil
}

func (r *postgresStorage) Set(ctx context.Context, key, value string) error {
	const q = `
INSERT INTO cart_storage (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET
    value = EXCLUDED.value,
    updated_at = now()
`
	if _, err := r.db.Exec(ctx, q, key, value); err != nil {
		return fmt.Errorf("upsert cart: %w", err)
	}
	return nil
}
