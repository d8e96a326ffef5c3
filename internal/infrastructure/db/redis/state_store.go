package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StateStore implements the ephemeral key/value store with per-entry TTL on
// top of Redis. Keys are namespaced by the callers (auth:activation_code:…,
// auth:login_attempts:…, auth:recovery_code:…); values are opaque bytes.
type StateStore struct {
	client *redis.Client
}

// NewStateStore creates a StateStore wrapping the given Redis client.
func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{client: client}
}

// Get returns the value stored under key. An expired or never-written key is
// reported as absent, not as an error.
func (s *StateStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("state get %q: %w", key, err)
	}
	return value, true, nil
}

// Set writes value under key, overwriting any existing entry and resetting
// its TTL.
func (s *StateStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("state set %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *StateStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("state delete %q: %w", key, err)
	}
	return nil
}
