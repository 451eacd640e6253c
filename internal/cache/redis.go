package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis for JSON value caching. A nil *Client is a disabled
// cache: every method is a safe no-op, so callers never branch on it.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to redis and returns nil (cache disabled) if the server is
// unreachable; the app must keep working without it.
func New(addr, password string, ttl time.Duration) *Client {
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable at %s, caching disabled: %v", addr, err)
		return nil
	}

	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Client{rdb: rdb, ttl: ttl}
}

// Set stores a JSON-marshalable value under key with the configured TTL.
func (c *Client) Set(ctx context.Context, key string, value interface{}) error {
	if c == nil {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

// Get loads key into dest. The bool reports whether the key was present.
func (c *Client) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if c == nil {
		return false, nil
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, fmt.Errorf("unmarshal cache value: %w", err)
	}
	return true, nil
}

// Delete removes a key.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil {
		return nil
	}
	return c.rdb.Del(ctx, key).Err()
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
