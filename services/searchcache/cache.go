package searchcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"travelhub/apperr"
	"travelhub/obs"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Cache keeps search result sets in Redis under a generated key so that a
// later filter call can re-slice them without another supplier round-trip.
type Cache[T any] struct {
	client   *redis.Client
	vertical string
	ttl      time.Duration
	metrics  *obs.Metrics
	logger   *zap.Logger
}

func New[T any](client *redis.Client, vertical string, ttl time.Duration, metrics *obs.Metrics, logger *zap.Logger) *Cache[T] {
	return &Cache[T]{
		client:   client,
		vertical: vertical,
		ttl:      ttl,
		metrics:  metrics,
		logger:   logger,
	}
}

func (c *Cache[T]) redisKey(key string) string {
	return fmt.Sprintf("search:%s:%s", c.vertical, key)
}

// Store persists items and returns the fresh key identifying them.
func (c *Cache[T]) Store(ctx context.Context, items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s search results: %w", c.vertical, err)
	}

	key := uuid.New().String()
	if err := c.client.Set(ctx, c.redisKey(key), data, c.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store %s search results: %w", c.vertical, err)
	}

	c.logger.Debug("Stored search results",
		zap.String("vertical", c.vertical),
		zap.String("searchId", key),
		zap.Int("count", len(items)))
	return key, nil
}

// Retrieve returns the items stored under key. An unknown, expired or
// malformed key is a CacheMiss; a stored empty set is returned as such.
func (c *Cache[T]) Retrieve(ctx context.Context, key string) ([]T, error) {
	if _, err := uuid.Parse(key); err != nil {
		c.metrics.IncCacheLookup(c.vertical, "miss")
		return nil, apperr.CacheMiss(key)
	}

	data, err := c.client.Get(ctx, c.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.metrics.IncCacheLookup(c.vertical, "miss")
		return nil, apperr.CacheMiss(key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s search results: %w", c.vertical, err)
	}

	items := []T{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s search results: %w", c.vertical, err)
	}
	c.metrics.IncCacheLookup(c.vertical, "hit")
	return items, nil
}
