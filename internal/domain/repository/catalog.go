package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/dealership/internal/domain/model"
)

// CatalogRepository describes persistence operations for catalog items.
type CatalogRepository interface {
	Get(ctx context.Context, id string) (*model.CatalogItem, error)
	List(ctx context.Context, kind model.ItemKind) ([]model.CatalogItem, error)
	Upsert(ctx context.Context, item model.CatalogItem) error
	UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error
	// SetAvailability writes the flag only if it currently differs. The boolean
	// reports whether the row changed, which makes it usable as a compare-and-set.
	SetAvailability(ctx context.Context, id string, available bool) (bool, error)
}
