package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineResponse is a priced order line.
type OrderLineResponse struct {
	ItemID    string          `json:"item_id"`
	Kind      string          `json:"kind"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderResponse describes order details.
type OrderResponse struct {
	ID            string              `json:"id"`
	Kind          string              `json:"kind"`
	Status        string              `json:"status"`
	Lines         []OrderLineResponse `json:"lines"`
	Total         decimal.Decimal     `json:"total"`
	Deposit       decimal.Decimal     `json:"deposit"`
	ReservationID string              `json:"reservation_id,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}
