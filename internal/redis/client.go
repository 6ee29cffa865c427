package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"taskhub-service/internal/config"
)

// Key prefixes
const (
	LoginFailuresPrefix = "login:failures:"
)

// Login throttle tuning: after MaxLoginFailures failed attempts within
// FailureWindow, further logins for the same email+IP are rejected until the
// window lapses.
const (
	MaxLoginFailures = 5
	FailureWindow    = 15 * time.Minute
)

// Client wraps the Redis client with application-specific methods
type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(cfg config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping checks the connection to Redis
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// RegisterLoginFailure increments the failure counter for a login key and
// returns the new count. The TTL is set on the first failure so the counter
// expires FailureWindow after the first miss, not the last.
func (c *Client) RegisterLoginFailure(ctx context.Context, key string) (int64, error) {
	redisKey := LoginFailuresPrefix + key

	count, err := c.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to register login failure: %w", err)
	}
	if count == 1 {
		if err := c.rdb.Expire(ctx, redisKey, FailureWindow).Err(); err != nil {
			return count, fmt.Errorf("failed to set failure window: %w", err)
		}
	}

	return count, nil
}

// IsLoginThrottled reports whether a login key has accumulated too many
// recent failures.
func (c *Client) IsLoginThrottled(ctx context.Context, key string) (bool, error) {
	count, err := c.rdb.Get(ctx, LoginFailuresPrefix+key).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read login failures: %w", err)
	}
	return count >= MaxLoginFailures, nil
}

// ResetLoginFailures clears the failure counter after a successful login
func (c *Client) ResetLoginFailures(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, LoginFailuresPrefix+key).Err()
}
