package cache

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/dealership/internal/config"
	"github.com/polkiloo/dealership/internal/usecase"
)

type cacheParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

var newRedisClient = func(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

func newCatalogCache(p cacheParams) usecase.CatalogCache {
	if p.Config.RedisAddress == "" {
		p.Logger.Info("catalog cache disabled")
		return NopCache{}
	}

	client := newRedisClient(p.Config.RedisAddress)
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				p.Logger.Warn("redis unreachable, catalog reads fall back to storage",
					slog.String("address", p.Config.RedisAddress),
					slog.String("error", err.Error()),
				)
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return NewRedisCatalogCache(client, p.Config.CatalogCacheTTL, p.Logger)
}

// Module provides the catalog cache.
var Module = fx.Provide(newCatalogCache)
