package repository

import (
	"context"

	"github.com/polkiloo/dealership/internal/domain/model"
)

// CartRepository describes persistence operations for user carts.
type CartRepository interface {
	Get(ctx context.Context, userID int64) (*model.Cart, error)
	// AddLine inserts the line or adds its quantity to an existing one as long as
	// the merged quantity stays within maxQuantity. It returns the resulting
	// quantity and false when the cap would be exceeded.
	AddLine(ctx context.Context, userID int64, line model.CartLine, maxQuantity int) (int, bool, error)
	RemoveLine(ctx context.Context, userID int64, itemID string) error
	// Clear removes every line of the cart and returns how many were deleted.
	Clear(ctx context.Context, userID int64) (int, error)
}
