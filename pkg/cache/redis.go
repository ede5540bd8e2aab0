package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"flight-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores JSON documents under namespaced keys with a fixed TTL.
type RedisCache struct {
	client    redis.UniversalClient
	namespace string
	ttl       time.Duration
}

func NewRedisCache(cfg utils.RedisConfig, namespace string, ttl time.Duration) *RedisCache {
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	return NewRedisCacheWithClient(client, namespace, ttl)
}

func NewRedisCacheWithClient(client redis.UniversalClient, namespace string, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, namespace: namespace, ttl: ttl}
}

// GetJSON decodes the value stored at key into dst. It reports false when
// the key is absent.
func (c *RedisCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) SetJSON(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return c.client.Set(ctx, c.key(key), payload, c.ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.key(key)).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) key(k string) string {
	return "cache:" + c.namespace + ":" + k
}
