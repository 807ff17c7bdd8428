package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisStorage struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedis stores each cart as a string value. A zero ttl keeps carts until
// they are overwritten.
func NewRedis(client redis.Cmdable, ttl time.Duration) Storage {
	return &redisStorage{client: client, ttl: ttl}
}

func (r *redisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get cart: %w", err)
	}
	return v, true, nil
}

func (r *redisStorage) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}
	return nil
}
