// Package cache is a thin key/value layer over Redis with service-scoped keys.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores string values. Get returns "" with a nil error for a missing key.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	GenerateKey(operation, key string) string
}

var _ Cache = (*RedisCache)(nil)

// RedisCache is the go-redis implementation of Cache.
type RedisCache struct {
	client      *redis.Client
	serviceName string
}

// NewRedisCache does not dial; the first command opens the connection.
func NewRedisCache(addr, serviceName string) *RedisCache {
	return &RedisCache{
		client:      redis.NewClient(&redis.Options{Addr: addr}),
		serviceName: serviceName,
	}
}

func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}
	return nil
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("cache: get %s: %w", key, err)
	}
	return val, nil
}

// GenerateKey builds "<service>:<operation>:<key>".
func (r *RedisCache) GenerateKey(operation, key string) string {
	return fmt.Sprintf("%s:%s:%s", r.serviceName, operation, key)
}

// Ping checks the connection, used at startup.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
