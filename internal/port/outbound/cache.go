package outbound

import (
	"context"
	"time"
)

// RateLimiterPort defines rate limiting operations.
type RateLimiterPort interface {
	// Allow checks if a request is allowed within rate limits.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	// GetRemaining returns the remaining requests in the current window.
	GetRemaining(ctx context.Context, key string, limit int, window time.Duration) (int, error)
}

// IdempotencyStorePort keeps replayable responses keyed by idempotency key.
type IdempotencyStorePort interface {
	// Get returns the stored response, or nil if there is none.
	Get(ctx context.Context, key string) ([]byte, error)

	// Save stores a response for ttl.
	Save(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Lock claims key for an in-flight request. It returns false if another request holds it.
	Lock(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Unlock releases an in-flight claim.
	Unlock(ctx context.Context, key string) error
}
