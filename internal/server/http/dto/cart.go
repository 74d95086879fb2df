package dto

import "github.com/shopspring/decimal"

// AddLineRequest adds an item to the caller's cart.
type AddLineRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// CartLineResponse is a cart line with its snapshotted price.
type CartLineResponse struct {
	ItemID    string          `json:"item_id"`
	Kind      string          `json:"kind"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CartResponse is the caller's cart.
type CartResponse struct {
	Lines []CartLineResponse `json:"lines"`
	Total decimal.Decimal    `json:"total"`
}
