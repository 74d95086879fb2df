package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/polkiloo/dealership/internal/domain/model"
)

const itemKeyPrefix = "catalog:item:"

// RedisCatalogCache keeps catalog items as JSON values with a TTL.
type RedisCatalogCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisCatalogCache wraps client.
func NewRedisCatalogCache(client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *RedisCatalogCache {
	return &RedisCatalogCache{client: client, ttl: ttl, logger: logger}
}

func itemKey(id string) string {
	return itemKeyPrefix + id
}

// Get returns the cached item or nil on a miss.
func (c *RedisCatalogCache) Get(ctx context.Context, id string) (*model.CatalogItem, error) {
	data, err := c.client.Get(ctx, itemKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var item model.CatalogItem
	if err := json.Unmarshal(data, &item); err != nil {
		c.logger.Warn("drop malformed catalog cache entry", slog.String("item", id), slog.String("error", err.Error()))
		return nil, nil
	}
	return &item, nil
}

// Set stores item for the configured TTL.
func (c *RedisCatalogCache) Set(ctx context.Context, item model.CatalogItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, itemKey(item.ID), data, c.ttl).Err()
}

// Invalidate removes ids from the cache.
func (c *RedisCatalogCache) Invalidate(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, itemKey(id))
	}
	return c.client.Del(ctx, keys...).Err()
}

// NopCache never stores anything. Used when no Redis address is configured.
type NopCache struct{}

func (NopCache) Get(context.Context, string) (*model.CatalogItem, error) { return nil, nil }

func (NopCache) Set(context.Context, model.CatalogItem) error { return nil }

func (NopCache) Invalidate(context.Context, ...string) error { return nil }
