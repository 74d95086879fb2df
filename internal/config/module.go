package config

import (
	"log/slog"

	"go.uber.org/fx"
)

// Module exposes configuration loader for fx graphs and reports the
// effective dealership policy once the logger is available.
var Module = fx.Options(
	fx.Provide(Load),
	fx.Invoke(logEffective),
)

func logEffective(cfg *Config, logger *slog.Logger) {
	logger.Info("configuration loaded",
		slog.String("addr", cfg.RunAddress),
		slog.Duration("reservation_delay", cfg.ReservationDelay),
		slog.String("deposit_amount", cfg.DepositAmount.String()),
		slog.Duration("sweep_interval", cfg.SweepInterval),
		slog.Bool("catalog_cache", cfg.RedisAddress != ""),
		slog.Bool("kafka", len(cfg.KafkaBrokers) > 0),
	)
}
