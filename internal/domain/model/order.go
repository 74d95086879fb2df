package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes the purchase lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Cancellable reports whether payment has not settled yet.
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed
}

// OrderKind separates vehicle deposit orders from accessory orders.
type OrderKind string

const (
	OrderKindVehicle     OrderKind = "vehicle"
	OrderKindAccessories OrderKind = "accessories"
)

// OrderLine is a priced item of an order.
type OrderLine struct {
	ItemID    string
	Kind      ItemKind
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal returns quantity multiplied by unit price.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is a purchase placed by a buyer.
type Order struct {
	ID            string
	UserID        int64
	Kind          OrderKind
	Status        OrderStatus
	Lines         []OrderLine
	Total         decimal.Decimal
	Deposit       decimal.Decimal
	ReservationID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// UsedVehicleIDs lists used vehicles carried by the order.
func (o Order) UsedVehicleIDs() []string {
	var ids []string
	for _, line := range o.Lines {
		if line.Kind == ItemKindUsed {
			ids = append(ids, line.ItemID)
		}
	}
	return ids
}
