package model

import "time"

// PaymentEventType names a notification from the payment provider.
type PaymentEventType string

const (
	PaymentCompleted PaymentEventType = "payment.completed"
	PaymentFailed    PaymentEventType = "payment.failed"
)

// PaymentEvent is delivered by the payment provider through the webhook or
// the payments topic.
type PaymentEvent struct {
	ID        string           `json:"id"`
	Type      PaymentEventType `json:"type"`
	PaymentID string           `json:"payment_id"`
	OrderID   string           `json:"order_id"`
	Timestamp time.Time        `json:"timestamp"`
}
