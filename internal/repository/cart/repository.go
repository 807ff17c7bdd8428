package cart

import (
	"context"
)

// Storage is a durable string key-value store holding serialised carts.
// Get reports found=false when nothing is stored under key.
type Storage interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// SessionKey scopes the shared cart key to one browser session.
func SessionKey(base, sessionID string) string {
	if sessionID == "" {
		return base
	}
	return base + ":" + sessionID
}
