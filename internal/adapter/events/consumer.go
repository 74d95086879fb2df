package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	domainErrors "github.com/polkiloo/dealership/internal/domain/errors"
	"github.com/polkiloo/dealership/internal/domain/model"
)

// PaymentHandler settles orders reported as paid.
type PaymentHandler interface {
	MarkOrderPaid(ctx context.Context, orderID string) (*model.Order, error)
}

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

func newKafkaReader(brokers []string, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})
}

// PaymentConsumer marks orders paid from payment provider notifications.
type PaymentConsumer struct {
	reader  messageReader
	handler PaymentHandler
	logger  *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPaymentConsumer constructs PaymentConsumer.
func NewPaymentConsumer(reader messageReader, handler PaymentHandler, logger *slog.Logger) *PaymentConsumer {
	return &PaymentConsumer{reader: reader, handler: handler, logger: logger}
}

// Start launches the read loop in the background.
func (c *PaymentConsumer) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.run(runCtx, c.done)
}

// Stop cancels the read loop, closes the reader and waits for the loop to exit.
func (c *PaymentConsumer) Stop(ctx context.Context) error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel = nil
	c.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	err := c.reader.Close()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return err
}

func (c *PaymentConsumer) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return
			}
			c.logger.Error("read payment message failed", slog.String("error", err.Error()))
			continue
		}
		c.handle(ctx, msg)
	}
}

func (c *PaymentConsumer) handle(ctx context.Context, msg kafka.Message) {
	var event model.PaymentEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Error("decode payment message failed",
			slog.Int64("offset", msg.Offset),
			slog.String("error", err.Error()),
		)
		return
	}
	if event.Type != model.PaymentCompleted {
		c.logger.Debug("ignore payment event", slog.String("type", string(event.Type)))
		return
	}

	if _, err := c.handler.MarkOrderPaid(ctx, event.OrderID); err != nil {
		level := slog.LevelError
		if errors.Is(err, domainErrors.ErrNotFound) || errors.Is(err, domainErrors.ErrInvalidState) {
			level = slog.LevelWarn
		}
		c.logger.Log(ctx, level, "mark order paid failed",
			slog.String("order", event.OrderID),
			slog.String("payment", event.PaymentID),
			slog.String("error", err.Error()),
		)
		return
	}
	c.logger.Info("order paid", slog.String("order", event.OrderID), slog.String("payment", event.PaymentID))
}
