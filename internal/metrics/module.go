package metrics

import (
	"go.uber.org/fx"

	"github.com/polkiloo/dealership/internal/usecase"
)

func asUsecaseMetrics(m *Metrics) usecase.Metrics {
	return m
}

// Module provides the metrics registry.
var Module = fx.Provide(New, asUsecaseMetrics)
