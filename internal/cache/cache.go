package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"vidtube/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache is the read-model cache used in front of advisory aggregations such
// as channel stats. Values are JSON-encoded; a miss is not an error.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Health(ctx context.Context) error
	Close() error
}

// ===============================
// REDIS CACHE
// ===============================

type redisCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(cfg *config.RedisConfig, logger *zap.Logger) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	logger.Info("Redis cache connected", zap.String("addr", cfg.Addr))
	return &redisCache{client: client, logger: logger}, nil
}

func (r *redisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		// A corrupt entry is treated as a miss so callers fall through to
		// the source of truth.
		r.logger.Warn("Discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		_ = r.client.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

func (r *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *redisCache) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisCache) Close() error {
	return r.client.Close()
}

// ===============================
// MEMORY CACHE
// ===============================

type memoryItem struct {
	data      []byte
	expiresAt time.Time
}

type memoryCache struct {
	mu    sync.RWMutex
	items map[string]memoryItem
}

// NewMemoryCache returns an in-process cache used when Redis is unavailable
// and in tests.
func NewMemoryCache() Cache {
	return &memoryCache{items: make(map[string]memoryItem)}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	m.mu.RLock()
	item, ok := m.items[key]
	m.mu.RUnlock()
	if !ok || time.Now().After(item.expiresAt) {
		return false, nil
	}
	if err := json.Unmarshal(item.data, dest); err != nil {
		return false, nil
	}
	return true, nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.items[key] = memoryItem{data: data, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

func (m *memoryCache) Health(ctx context.Context) error { return nil }

func (m *memoryCache) Close() error { return nil }
