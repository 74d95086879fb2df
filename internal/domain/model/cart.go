package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is an item selected by a user with the price captured when it was added.
type CartLine struct {
	ItemID    string
	Kind      ItemKind
	Quantity  int
	UnitPrice decimal.Decimal
	AddedAt   time.Time
}

// Subtotal returns quantity multiplied by the snapshotted unit price.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the per-user selection in insertion order.
type Cart struct {
	UserID int64
	Lines  []CartLine
}

// Total sums line subtotals.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Line returns the line holding itemID.
func (c Cart) Line(itemID string) (CartLine, bool) {
	for _, line := range c.Lines {
		if line.ItemID == itemID {
			return line, true
		}
	}
	return CartLine{}, false
}
