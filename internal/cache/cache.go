// Package cache provides the fast key-value layer in front of the persistent
// store. The contract is deliberately thin: TTL expiry is the only freshness
// guarantee, and a stale or missing entry only costs one extra fetch
// downstream, never a wrong answer.
package cache

import (
	"context"
	"time"
)

// Store is the fast cache contract. Get reports absence with found=false and
// a nil error; errors are reserved for backend failures.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
