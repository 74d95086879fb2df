package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/polkiloo/dealership/internal/domain/model"
)

// EventPublisher delivers lifecycle events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...model.Event) error
}

// Metrics records business counters.
type Metrics interface {
	ObserveEvent(eventType model.EventType)
}

// Notifier fans committed state changes out to the publisher and metrics.
// Publishing failures never undo a committed change, they are only logged.
type Notifier struct {
	events  EventPublisher
	metrics Metrics
	logger  *slog.Logger
}

// NewNotifier constructs Notifier.
func NewNotifier(events EventPublisher, metrics Metrics, logger *slog.Logger) *Notifier {
	return &Notifier{events: events, metrics: metrics, logger: logger}
}

// Emit records and publishes events.
func (n *Notifier) Emit(ctx context.Context, events ...model.Event) {
	if len(events) == 0 {
		return
	}
	for _, event := range events {
		n.metrics.ObserveEvent(event.Type)
	}
	if err := n.events.Publish(ctx, events...); err != nil {
		n.logger.Error("publish events failed",
			slog.Int("count", len(events)),
			slog.String("type", string(events[0].Type)),
			slog.String("error", err.Error()),
		)
	}
}

func newID() string {
	return uuid.NewString()
}
