package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a string key-value store with expiry. A miss is reported as an empty value.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	GenerateKey(ref string) string
}

// RedisCache implements Cache on top of a Redis server.
type RedisCache struct {
	client    *redis.Client
	namespace string
}

// NewRedisCache connects lazily to the Redis server at addr.
func NewRedisCache(addr, namespace string) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: addr}),
		namespace: namespace,
	}
}

func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *RedisCache) GenerateKey(ref string) string {
	return fmt.Sprintf("%s:catalog:%s", r.namespace, ref)
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
