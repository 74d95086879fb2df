package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/dealership/internal/clock"
	domainErrors "github.com/polkiloo/dealership/internal/domain/errors"
	"github.com/polkiloo/dealership/internal/domain/model"
	"github.com/polkiloo/dealership/internal/domain/repository"
)

// CartUseCase aggregates a user's selection and turns it into orders.
type CartUseCase struct {
	tx       repository.Transactor
	carts    repository.CartRepository
	catalog  *CatalogUseCase
	orders   *OrderUseCase
	clock    clock.Clock
	notifier *Notifier
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(
	tx repository.Transactor,
	carts repository.CartRepository,
	catalog *CatalogUseCase,
	orders *OrderUseCase,
	clk clock.Clock,
	notifier *Notifier,
) *CartUseCase {
	return &CartUseCase{tx: tx, carts: carts, catalog: catalog, orders: orders, clock: clk, notifier: notifier}
}

// Get returns the cart of userID. A user without lines gets an empty cart.
func (u *CartUseCase) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	return u.carts.Get(ctx, userID)
}

// AddLine adds quantity units of itemID to the cart, merging with an existing
// line. Vehicles are limited to one unit, accessories to 1000 per line.
func (u *CartUseCase) AddLine(ctx context.Context, userID int64, itemID string, quantity int) (*model.Cart, error) {
	itemID = strings.TrimSpace(itemID)
	if quantity < 1 {
		return nil, domainErrors.ErrInvalidQuantity
	}

	item, err := u.catalog.Resolve(ctx, itemID, "")
	if err != nil {
		return nil, err
	}
	limit := item.Kind.MaxQuantity()
	if quantity > limit {
		return nil, domainErrors.ErrInvalidQuantity
	}

	_, ok, err := u.carts.AddLine(ctx, userID, model.CartLine{
		ItemID:    item.ID,
		Kind:      item.Kind,
		Quantity:  quantity,
		UnitPrice: item.Price,
		AddedAt:   u.clock.Now(),
	}, limit)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domainErrors.ErrInvalidQuantity
	}

	return u.carts.Get(ctx, userID)
}

// RemoveLine drops itemID from the cart. Removing a missing line is a no-op.
func (u *CartUseCase) RemoveLine(ctx context.Context, userID int64, itemID string) (*model.Cart, error) {
	if err := u.carts.RemoveLine(ctx, userID, strings.TrimSpace(itemID)); err != nil {
		return nil, err
	}
	return u.carts.Get(ctx, userID)
}

// Clear empties the cart.
func (u *CartUseCase) Clear(ctx context.Context, userID int64) error {
	_, err := u.carts.Clear(ctx, userID)
	return err
}

// Total sums the snapshotted prices of cart lines.
func (u *CartUseCase) Total(cart model.Cart) decimal.Decimal {
	return cart.Total()
}

// Checkout converts the cart into orders: one deposit order per vehicle line
// and a single full price order for all accessories. Used vehicles are taken
// off sale. Either every order is placed and the cart emptied, or nothing changes.
func (u *CartUseCase) Checkout(ctx context.Context, userID int64) ([]model.Order, error) {
	var (
		placed  []model.Order
		claimed []string
	)

	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		placed, claimed = nil, nil

		cart, err := u.carts.Get(ctx, userID)
		if err != nil {
			return err
		}
		if len(cart.Lines) == 0 {
			return domainErrors.ErrEmptyCart
		}

		var accessories []model.OrderLine
		for _, line := range cart.Lines {
			if _, err := u.catalog.resolveFresh(ctx, line.ItemID, line.Kind); err != nil {
				return err
			}

			orderLine := model.OrderLine{
				ItemID:    line.ItemID,
				Kind:      line.Kind,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
			}
			if !line.Kind.IsVehicle() {
				accessories = append(accessories, orderLine)
				continue
			}

			if line.Kind == model.ItemKindUsed {
				ok, err := u.catalog.claim(ctx, line.ItemID)
				if err != nil {
					return err
				}
				if !ok {
					return domainErrors.ErrUnavailable
				}
				claimed = append(claimed, line.ItemID)
			}

			order, err := u.orders.build(userID, []model.OrderLine{orderLine}, true, "")
			if err != nil {
				return err
			}
			if err := u.orders.orders.Create(ctx, *order); err != nil {
				return err
			}
			placed = append(placed, *order)
		}

		if len(accessories) > 0 {
			order, err := u.orders.build(userID, accessories, false, "")
			if err != nil {
				return err
			}
			if err := u.orders.orders.Create(ctx, *order); err != nil {
				return err
			}
			placed = append(placed, *order)
		}

		cleared, err := u.carts.Clear(ctx, userID)
		if err != nil {
			return err
		}
		switch {
		case cleared == 0:
			// Another checkout consumed the cart first.
			return domainErrors.ErrEmptyCart
		case cleared != len(cart.Lines):
			return fmt.Errorf("cart changed during checkout: %w", domainErrors.ErrInvalidState)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.catalog.invalidate(ctx, claimed...)
	events := make([]model.Event, 0, len(placed))
	for i := range placed {
		events = append(events, model.OrderEvent(model.EventOrderCreated, &placed[i], placed[i].CreatedAt))
	}
	u.notifier.Emit(ctx, events...)
	return placed, nil
}
