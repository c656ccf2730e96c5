package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultSessionTTL = 24 * time.Hour

// SessionKV persists session key/value pairs in Redis.
// Key format: session:<key>
//
// Entries expire after the TTL so an abandoned session eventually clears
// itself, matching the lifetime of the signed token.
type SessionKV struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionKV creates a SessionKV wrapping the given Redis client.
// If ttl <= 0, defaultSessionTTL is used.
func NewSessionKV(client *redis.Client, ttl time.Duration) *SessionKV {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionKV{client: client, ttl: ttl}
}

// Get returns the stored value, or "" when the key is absent.
func (s *SessionKV) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session get: %w", err)
	}
	return v, nil
}

func (s *SessionKV) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.key(key), value, s.ttl).Err()
}

func (s *SessionKV) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.key(k)
	}
	return s.client.Del(ctx, prefixed...).Err()
}

func (s *SessionKV) key(k string) string {
	return "session:" + k
}
