package cart

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"dermayooth-storefront/internal/migrate"
	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "dermayoothCart", SessionKey("dermayoothCart", ""))
	assert.Equal(t, "dermayoothCart:abc", SessionKey("dermayoothCart", "abc"))
}

func TestMemory_GetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, found, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, m.Set(ctx, "k", "[]"))
	v, found, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "[]", v)
}

// ---------------------------------------------------------------------------
// Redis
// ---------------------------------------------------------------------------

func setupTestRedis(t *testing.T, ttl time.Duration) (Storage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedis(client, ttl), mr
}

func TestRedis_GetMissing(t *testing.T) {
	s, _ := setupTestRedis(t, 0)

	v, found, err := s.Get(context.Background(), "dermayoothCart:nobody")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, v)
}

func TestRedis_SetThenGet(t *testing.T) {
	s, mr := setupTestRedis(t, 0)
	ctx := context.Background()
	raw := `[{"id":"p1","name":"Serum","price":"₹1,499","image":"","quantity":2}]`

	require.NoError(t, s.Set(ctx, "dermayoothCart:abc", raw))

	stored, err := mr.Get("dermayoothCart:abc")
	require.NoError(t, err)
	assert.Equal(t, raw, stored)
	assert.Zero(t, mr.TTL("dermayoothCart:abc"), "zero ttl keeps the cart without expiry")

	v, found, err := s.Get(ctx, "dermayoothCart:abc")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, raw, v)
}

func TestRedis_TTLExpires(t *testing.T) {
	s, mr := setupTestRedis(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "[]"))
	assert.Equal(t, time.Hour, mr.TTL("k"))

	mr.FastForward(2 * time.Hour)
	_, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedis_ConnectionError(t *testing.T) {
	s, mr := setupTestRedis(t, 0)
	mr.Close()

	_, _, err := s.Get(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis get cart")

	err = s.Set(context.Background(), "k", "[]")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis set cart")
}

// ---------------------------------------------------------------------------
// Postgres (mocked)
// ---------------------------------------------------------------------------

func newPostgresTestFixture(t *testing.T) (Storage, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewPostgres(mock), mock
}

func TestPostgres_Get_Found(t *testing.T) {
	s, mock := newPostgresTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT value").
		WithArgs("dermayoothCart:abc").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow("[]"))

	v, found, err := s.Get(context.Background(), "dermayoothCart:abc")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "[]", v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Get_NotFound(t *testing.T) {
	s, mock := newPostgresTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT value").
		WithArgs("k").
		WillReturnError(pgx.ErrNoRows)

	_, found, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Get_Error(t *testing.T) {
	s, mock := newPostgresTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT value").
		WithArgs("k").
		WillReturnError(errors.New("connection reset"))

	_, _, err := s.Get(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "select cart")
}

func TestPostgres_Set(t *testing.T) {
	s, mock := newPostgresTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO cart_storage").
		WithArgs("k", "[]").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.Set(context.Background(), "k", "[]"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Set_Error(t *testing.T) {
	s, mock := newPostgresTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO cart_storage").
		WithArgs("k", "[]").
		WillReturnError(errors.New("disk full"))

	err := s.Set(context.Background(), "k", "[]")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert cart")
}

// ---------------------------------------------------------------------------
// Postgres (integration, needs TEST_DB_DSN)
// ---------------------------------------------------------------------------

func TestPostgres_Integration_Upsert(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE cart_storage`); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	s := NewPostgres(pool)
	if err := s.Set(ctx, "dermayoothCart:it", `[{"id":"p1","quantity":1}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "dermayoothCart:it", `[]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, found, err := s.Get(ctx, "dermayoothCart:it")
	if err != nil || !found || v != "[]" {
		t.Fatalf("unexpected get value=%q found=%v err=%v", v, found, err)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}
