package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/dealership/internal/adapter/cache"
	"github.com/polkiloo/dealership/internal/adapter/events"
	"github.com/polkiloo/dealership/internal/app"
	"github.com/polkiloo/dealership/internal/clock"
	"github.com/polkiloo/dealership/internal/config"
	"github.com/polkiloo/dealership/internal/logger"
	"github.com/polkiloo/dealership/internal/metrics"
	"github.com/polkiloo/dealership/internal/pkg/auth"
	"github.com/polkiloo/dealership/internal/server/http/router"
	"github.com/polkiloo/dealership/internal/storage/postgres"
	"github.com/polkiloo/dealership/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		clock.Module,
		metrics.Module,
		auth.Module,
		postgres.Module,
		fx.Provide(func(s *postgres.Storage) app.HealthChecker { return s }),
		cache.Module,
		events.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
