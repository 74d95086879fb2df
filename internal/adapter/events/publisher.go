package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/polkiloo/dealership/internal/domain/model"
)

const writeTimeout = 10 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// envelope is the wire form of a lifecycle event.
type envelope struct {
	ID string `json:"id"`
	model.Event
}

// KafkaPublisher writes lifecycle events keyed by aggregate id so that
// events of one order or reservation keep their order within a partition.
type KafkaPublisher struct {
	writer messageWriter
	logger *slog.Logger
}

func newKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           writeTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// NewKafkaPublisher constructs KafkaPublisher on top of writer.
func NewKafkaPublisher(writer messageWriter, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, logger: logger}
}

// Publish writes events in a single batch.
func (p *KafkaPublisher) Publish(ctx context.Context, events ...model.Event) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		value, err := json.Marshal(envelope{ID: uuid.NewString(), Event: event})
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(event.AggregateID),
			Value: value,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(event.Type)},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return err
	}
	p.logger.Debug("events published", slog.Int("count", len(msgs)))
	return nil
}

// Close flushes and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher only logs events. Used when no brokers are configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher constructs LogPublisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, events ...model.Event) error {
	for _, event := range events {
		p.logger.Info("lifecycle event",
			slog.String("type", string(event.Type)),
			slog.String("aggregate", event.AggregateID),
			slog.String("status", event.Status),
		)
	}
	return nil
}
