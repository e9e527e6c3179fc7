package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type missError struct{}

func (missError) Error() string   { return "cache miss" }
func (missError) CacheMiss() bool { return true }

// ErrCacheMiss is returned by Get when the key does not exist.
var ErrCacheMiss error = missError{}

// Connect opens a client and pings it. When Redis cannot be reached it
// returns (nil, err) and callers run without a cache.
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Str("component", "REDIS").Err(err).Msg("could not connect to Redis, running without move cache")
		client.Close()
		return nil, err
	}

	log.Info().Str("component", "REDIS").Str("addr", addr).Msg("connected")
	return client, nil
}

// RedisCache wraps redis.Client behind the small key/value interface the
// services depend on. Every key is stored under a namespace prefix.
type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

func (r *RedisCache) key(k string) string {
	return r.prefix + k
}

// Set stores a key-value pair with expiration
func (r *RedisCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return r.client.Set(ctx, r.key(key), value, expiration).Err()
}

// Get retrieves a value by key
func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return val, err
}

// Del deletes keys
func (r *RedisCache) Del(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = r.key(k)
	}
	return r.client.Del(ctx, prefixed...).Err()
}
