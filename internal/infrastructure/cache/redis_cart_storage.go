package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/respawnadega/storefront/internal/domain/cart"
	"github.com/respawnadega/storefront/internal/domain/shared"
	"github.com/respawnadega/storefront/internal/infrastructure/config"
)

const defaultKeyPrefix = "adega"

// RedisCartStorage implements cart.Storage on Redis strings. Every write
// refreshes the record TTL so idle carts expire on their own.
type RedisCartStorage struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

var _ cart.Storage = (*RedisCartStorage)(nil)

// NewRedisCartStorage connects to Redis and verifies the connection
func NewRedisCartStorage(cfg config.RedisConfig, ttl time.Duration) (*RedisCartStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisCartStorageWithClient(client, cfg.KeyPrefix, ttl), nil
}

// NewRedisCartStorageWithClient creates a storage on an existing client.
// A zero ttl keeps records forever.
func NewRedisCartStorageWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisCartStorage {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisCartStorage{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Read returns the raw record, or shared.ErrNotFound
func (s *RedisCartStorage) Read(ctx context.Context, sessionID, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(sessionID, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read cart record: %w", err)
	}
	return data, nil
}

// Write stores the record with the configured TTL
func (s *RedisCartStorage) Write(ctx context.Context, sessionID, key string, data []byte) error {
	if err := s.client.Set(ctx, s.key(sessionID, key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cart record: %w", err)
	}
	return nil
}

// Delete removes the record
func (s *RedisCartStorage) Delete(ctx context.Context, sessionID, key string) error {
	if err := s.client.Del(ctx, s.key(sessionID, key)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart record: %w", err)
	}
	return nil
}

// Ping checks the Redis connection
func (s *RedisCartStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *RedisCartStorage) Close() error {
	return s.client.Close()
}

// key returns <prefix>:cart:<session>:<record key>
func (s *RedisCartStorage) key(sessionID, key string) string {
	return s.keyPrefix + ":cart:" + sessionID + ":" + key
}
