package ports

import (
	"context"
	"time"
)

// EphemeralStateStore is a key/value store with per-entry TTL, used for
// attempt counters and one-time codes. Values are opaque to the store;
// workflows serialize their own record shapes.
//
// Set overwrites any existing value under the key and resets its TTL, so a
// new record logically supersedes the previous one. Read-then-write sequences
// built on top of this port are not atomic; the login workflow accepts the
// resulting under-counting under concurrency.
type EphemeralStateStore interface {
	// Get returns the value under key, reporting absence via ok=false.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
