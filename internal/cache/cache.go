// Package cache provides a Redis-backed read-through cache for the service
// catalog. Every operation degrades to a miss when Redis is unavailable.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/makeup-studio/internal/models"
)

const (
	DefaultServiceListTTL = 5 * time.Minute

	KeyServiceList = "makeup-studio:cache:services"
)

type Config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ServiceListTTL time.Duration

	// If true, stop using Redis after the first failed operation.
	DisableOnError bool
}

func DefaultConfig() Config {
	return Config{
		RedisAddr:      "localhost:6379",
		ServiceListTTL: DefaultServiceListTTL,
		DisableOnError: true,
	}
}

type Cache struct {
	client *redis.Client
	logger zerolog.Logger
	config Config

	mu       sync.RWMutex
	disabled bool
}

// New connects to Redis. An unreachable server yields a disabled cache, not
// an error.
func New(cfg Config, logger zerolog.Logger) *Cache {
	logger = logger.With().Str("component", "cache").Logger()

	if cfg.ServiceListTTL <= 0 {
		cfg.ServiceListTTL = DefaultServiceListTTL
	}
	if cfg.RedisAddr == "" {
		logger.Info().Msg("redis not configured, running without caching")
		return Disabled(logger)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Msg("redis cache unavailable, running without caching")
		_ = client.Close()
		return Disabled(logger)
	}

	logger.Info().Str("addr", cfg.RedisAddr).Msg("redis cache initialized")

	return &Cache{
		client: client,
		logger: logger,
		config: cfg,
	}
}

func Disabled(logger zerolog.Logger) *Cache {
	return &Cache{
		logger:   logger,
		config:   Config{ServiceListTTL: DefaultServiceListTTL},
		disabled: true,
	}
}

func (c *Cache) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func (c *Cache) IsAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.disabled && c.client != nil
}

func (c *Cache) handleError(err error, operation string) {
	if err == nil || errors.Is(err, redis.Nil) {
		return
	}

	c.logger.Debug().Err(err).Str("operation", operation).Msg("cache operation failed")

	if c.config.DisableOnError {
		c.mu.Lock()
		c.disabled = true
		c.mu.Unlock()
		c.logger.Warn().Msg("disabling cache due to redis error")
	}
}

// ----------------------------------------------------------------
// Service list
// ----------------------------------------------------------------

func (c *Cache) GetServiceList(ctx context.Context) ([]models.Service, bool) {
	if !c.IsAvailable() {
		return nil, false
	}

	data, err := c.client.Get(ctx, KeyServiceList).Bytes()
	if err != nil {
		c.handleError(err, "get")
		return nil, false
	}

	var services []models.Service
	if err := json.Unmarshal(data, &services); err != nil {
		c.logger.Debug().Err(err).Msg("failed to unmarshal cached service list")
		return nil, false
	}
	return services, true
}

func (c *Cache) SetServiceList(ctx context.Context, services []models.Service) error {
	if !c.IsAvailable() {
		return nil
	}

	data, err := json.Marshal(services)
	if err != nil {
		return fmt.Errorf("marshal service list: %w", err)
	}

	if err := c.client.Set(ctx, KeyServiceList, data, c.config.ServiceListTTL).Err(); err != nil {
		c.handleError(err, "set")
		return err
	}
	return nil
}

func (c *Cache) InvalidateServiceList(ctx context.Context) error {
	if !c.IsAvailable() {
		return nil
	}

	if err := c.client.Del(ctx, KeyServiceList).Err(); err != nil {
		c.handleError(err, "delete")
		return err
	}
	return nil
}
