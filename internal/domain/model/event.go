package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType names a lifecycle event published to the broker.
type EventType string

const (
	EventOrderCreated         EventType = "order.created"
	EventOrderConfirmed       EventType = "order.confirmed"
	EventOrderCancelled       EventType = "order.cancelled"
	EventOrderPaid            EventType = "order.paid"
	EventOrderDelivered       EventType = "order.delivered"
	EventReservationCreated   EventType = "reservation.created"
	EventReservationCancelled EventType = "reservation.cancelled"
	EventReservationExpired   EventType = "reservation.expired"
	EventReservationConverted EventType = "reservation.converted"
)

// Event describes a state change of an order or reservation.
type Event struct {
	Type        EventType       `json:"type"`
	AggregateID string          `json:"aggregate_id"`
	UserID      int64           `json:"user_id"`
	Status      string          `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// OrderEvent builds an event for order.
func OrderEvent(t EventType, order *Order, at time.Time) Event {
	return Event{
		Type:        t,
		AggregateID: order.ID,
		UserID:      order.UserID,
		Status:      string(order.Status),
		Amount:      order.Deposit,
		OccurredAt:  at,
	}
}

// ReservationEvent builds an event for reservation.
func ReservationEvent(t EventType, r *Reservation, at time.Time) Event {
	return Event{
		Type:        t,
		AggregateID: r.ID,
		UserID:      r.UserID,
		Status:      string(r.Status),
		Amount:      r.Price,
		OccurredAt:  at,
	}
}
