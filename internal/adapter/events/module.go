package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/dealership/internal/config"
	"github.com/polkiloo/dealership/internal/usecase"
)

type publisherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newPublisher(p publisherParams) usecase.EventPublisher {
	if len(p.Config.KafkaBrokers) == 0 {
		p.Logger.Info("kafka disabled, lifecycle events are logged only")
		return NewLogPublisher(p.Logger)
	}

	publisher := NewKafkaPublisher(newKafkaWriter(p.Config.KafkaBrokers, p.Config.KafkaOrdersTopic), p.Logger)
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}

type consumerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
	Handler   PaymentHandler
}

var newPaymentReader = func(cfg *config.Config) messageReader {
	return newKafkaReader(cfg.KafkaBrokers, cfg.KafkaPaymentsTopic, cfg.KafkaGroupID)
}

func registerPaymentConsumer(p consumerParams) {
	if len(p.Config.KafkaBrokers) == 0 {
		return
	}

	consumer := NewPaymentConsumer(newPaymentReader(p.Config), p.Handler, p.Logger)
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			consumer.Start(context.Background())
			return nil
		},
		OnStop: consumer.Stop,
	})
}

// Module provides the event publisher and runs the payment consumer.
var Module = fx.Options(
	fx.Provide(newPublisher),
	fx.Invoke(registerPaymentConsumer),
)
