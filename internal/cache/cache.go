package cache

import (
	"context"
	"time"
)

// Cache fronts the interview-details read path. Writes to a session (question
// edits, confirmation, turns) delete the session's key.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Locker serializes turn submissions per interview session. TryAcquire
// returns false when another submission currently holds the lock.
type Locker interface {
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
