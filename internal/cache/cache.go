// Package cache provides the read-through store for the test catalog. Redis
// backs it in production; a no-op implementation keeps the service runnable
// without a cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Loikaaa/neplia-sub001/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var ErrCacheMiss = errors.New("cache: miss")

type Store interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

// NewRedisClient connects using the configured URL. Callers should fall back
// to NewNoop when the URL is empty.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return client, nil
}

type redisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal %s: %w", key, err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *redisStore) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

func (s *redisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

type noopStore struct{}

// NewNoop returns a store that misses on every read. Used when no Redis URL
// is configured.
func NewNoop() Store { return noopStore{} }

func (noopStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (noopStore) Get(ctx context.Context, key string, dest interface{}) error {
	return ErrCacheMiss
}

func (noopStore) Delete(ctx context.Context, keys ...string) error {
	return nil
}

// NewStore wires the configured backend, logging which one is active.
func NewStore(cfg *config.Config) Store {
	if cfg.Redis.URL == "" {
		log.Warn().Msg("REDIS_URL not set, test catalog cache disabled")
		return NewNoop()
	}
	client, err := NewRedisClient(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Redis unavailable, test catalog cache disabled")
		return NewNoop()
	}
	return NewRedisStore(client)
}
