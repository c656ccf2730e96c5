package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPingTimeout = 5 * time.Second

// Config captures the settings of the Redis instance backing session
// persistence.
type Config struct {
	Addr        string
	Password    string
	DB          int
	SessionTTL  time.Duration
	PingTimeout time.Duration
}

// ConnectSessions establishes the Redis connection the session store
// persists through and wraps it as a SessionKV. The raw client is returned
// alongside so the readiness probe can ping the same connection.
func ConnectSessions(ctx context.Context, cfg Config) (*SessionKV, *redis.Client, error) {
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewSessionKV(client, cfg.SessionTTL), client, nil
}
