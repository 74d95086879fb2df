package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogItemResponse describes a purchasable item.
type CatalogItemResponse struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Available bool            `json:"available"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// PublishItemRequest creates or replaces a catalog item. Available defaults to true.
type PublishItemRequest struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Available *bool           `json:"available,omitempty"`
}

// UpdateItemRequest changes price and/or availability.
type UpdateItemRequest struct {
	Price     *decimal.Decimal `json:"price,omitempty"`
	Available *bool            `json:"available,omitempty"`
}
