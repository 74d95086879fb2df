package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemKind distinguishes the catalog collections.
type ItemKind string

const (
	ItemKindNewConfig ItemKind = "vehicle_new_config"
	ItemKindUsed      ItemKind = "vehicle_used"
	ItemKindAccessory ItemKind = "accessory"
)

// Valid reports whether k is one of the known kinds.
func (k ItemKind) Valid() bool {
	switch k {
	case ItemKindNewConfig, ItemKindUsed, ItemKindAccessory:
		return true
	}
	return false
}

// IsVehicle reports whether the item is a vehicle (new configuration or used).
func (k ItemKind) IsVehicle() bool {
	return k == ItemKindNewConfig || k == ItemKindUsed
}

// MaxQuantity is the largest quantity a single cart or order line may carry.
func (k ItemKind) MaxQuantity() int {
	if k.IsVehicle() {
		return 1
	}
	return MaxAccessoryQuantity
}

// MaxAccessoryQuantity caps accessory lines.
const MaxAccessoryQuantity = 1000

// CatalogItem is a priced, purchasable vehicle, configuration or accessory.
type CatalogItem struct {
	ID        string          `json:"id"`
	Kind      ItemKind        `json:"kind"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Available bool            `json:"available"`
	UpdatedAt time.Time       `json:"updated_at"`
}
