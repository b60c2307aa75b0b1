// Package cache stores rendered QR images in Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-qrform/internal/config"
	"github.com/goliatone/go-qrform/pkg/encoder"
)

// client is the subset of *redis.Client the cache needs.
type client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// RedisCache implements encoder.Cache on a Redis client.
type RedisCache struct {
	client client
	prefix string
	ttl    time.Duration
}

var _ encoder.Cache = (*RedisCache)(nil)

// New connects to the configured Redis instance and verifies it answers.
func New(ctx context.Context, cfg config.RedisConfig) (*RedisCache, error) {
	if cfg.Addr == "" {
		return nil, errors.New("cache: redis address is required")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     50,
		MinIdleConns: 10,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: connect to redis: %w", err)
	}
	return newWithClient(rdb, cfg.TTL), nil
}

func newWithClient(c client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: c, prefix: "qrform:", ttl: ttl}
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// HealthCheck pings Redis.
func (c *RedisCache) HealthCheck(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	return nil
}

// Get returns the image stored under key or encoder.ErrCacheMiss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, encoder.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache: get: %w", err)
	}
	return val, nil
}

// Set stores data under key with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte) error {
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set: %w", err)
	}
	return nil
}
