package cache

import (
	"fmt"
	"time"

	"github.com/respawnadega/storefront/internal/domain/cart"
	"github.com/respawnadega/storefront/internal/infrastructure/config"
	"go.uber.org/zap"
)

// CartStorageFactory creates key-value cart storages
type CartStorageFactory struct {
	redisConfig           config.RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// CartStorageFactoryOption configures the factory
type CartStorageFactoryOption func(*CartStorageFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) CartStorageFactoryOption {
	return func(f *CartStorageFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory storage
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) CartStorageFactoryOption {
	return func(f *CartStorageFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewCartStorageFactory creates a new factory
func NewCartStorageFactory(cfg config.RedisConfig, ttl time.Duration, opts ...CartStorageFactoryOption) *CartStorageFactory {
	f := &CartStorageFactory{
		redisConfig:           cfg,
		ttl:                   ttl,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateRedisStorage creates a Redis-backed cart storage
func (f *CartStorageFactory) CreateRedisStorage() (*RedisCartStorage, error) {
	storage, err := NewRedisCartStorage(f.redisConfig, f.ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis cart storage: %w", err)
	}
	return storage, nil
}

// CreateInMemoryStorage creates an in-memory cart storage
func (f *CartStorageFactory) CreateInMemoryStorage() *InMemoryCartStorage {
	return NewInMemoryCartStorage()
}

// CreateStorage tries Redis first and falls back to in-memory storage when
// Redis is unreachable and fallback is allowed
func (f *CartStorageFactory) CreateStorage() (cart.Storage, error) {
	storage, err := f.CreateRedisStorage()
	if err == nil {
		f.logger.Info("Using Redis cart storage", zap.String("addr", f.redisConfig.Addr()))
		return storage, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for cart storage but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory cart storage. "+
		"Carts will not survive a restart.",
		zap.Error(err),
	)
	return f.CreateInMemoryStorage(), nil
}
