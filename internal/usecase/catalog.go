package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/dealership/internal/clock"
	domainErrors "github.com/polkiloo/dealership/internal/domain/errors"
	"github.com/polkiloo/dealership/internal/domain/model"
	"github.com/polkiloo/dealership/internal/domain/repository"
)

// CatalogCache keeps recently resolved items. Get returns nil without an
// error on a miss.
type CatalogCache interface {
	Get(ctx context.Context, id string) (*model.CatalogItem, error)
	Set(ctx context.Context, item model.CatalogItem) error
	Invalidate(ctx context.Context, ids ...string) error
}

// CatalogUseCase resolves and maintains purchasable items.
type CatalogUseCase struct {
	items  repository.CatalogRepository
	cache  CatalogCache
	policy Policy
	clock  clock.Clock
	logger *slog.Logger
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(items repository.CatalogRepository, cache CatalogCache, policy Policy, clk clock.Clock, logger *slog.Logger) *CatalogUseCase {
	return &CatalogUseCase{items: items, cache: cache, policy: policy, clock: clk, logger: logger}
}

// Resolve returns the item behind id when it is purchasable. A non empty kind
// restricts the lookup to that collection.
func (u *CatalogUseCase) Resolve(ctx context.Context, id string, kind model.ItemKind) (*model.CatalogItem, error) {
	item, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return checkResolvable(item, kind)
}

// resolveFresh bypasses the cache. Used inside transactions.
func (u *CatalogUseCase) resolveFresh(ctx context.Context, id string, kind model.ItemKind) (*model.CatalogItem, error) {
	item, err := u.items.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return checkResolvable(item, kind)
}

func checkResolvable(item *model.CatalogItem, kind model.ItemKind) (*model.CatalogItem, error) {
	if kind != "" && item.Kind != kind {
		return nil, domainErrors.ErrNotFound
	}
	if !item.Available {
		return nil, domainErrors.ErrUnavailable
	}
	return item, nil
}

// Get returns an item regardless of availability. Used vehicles change
// availability on every reservation and are always read from storage.
func (u *CatalogUseCase) Get(ctx context.Context, id string) (*model.CatalogItem, error) {
	if cached, err := u.cache.Get(ctx, id); err != nil {
		u.logger.Warn("catalog cache read failed", slog.String("item", id), slog.String("error", err.Error()))
	} else if cached != nil {
		return cached, nil
	}

	item, err := u.items.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Kind == model.ItemKindUsed {
		return item, nil
	}
	if err := u.cache.Set(ctx, *item); err != nil {
		u.logger.Warn("catalog cache write failed", slog.String("item", id), slog.String("error", err.Error()))
	}
	return item, nil
}

// List returns items of kind, or every item when kind is empty.
func (u *CatalogUseCase) List(ctx context.Context, kind model.ItemKind) ([]model.CatalogItem, error) {
	if kind != "" && !kind.Valid() {
		return nil, domainErrors.ErrInvalidKind
	}
	return u.items.List(ctx, kind)
}

// Publish creates or replaces a catalog item.
func (u *CatalogUseCase) Publish(ctx context.Context, actor model.Actor, item model.CatalogItem) (*model.CatalogItem, error) {
	if err := authorizeStaff(u.policy, actor, ActionManageCatalog); err != nil {
		return nil, err
	}

	item.ID = strings.TrimSpace(item.ID)
	item.Name = strings.TrimSpace(item.Name)
	if !item.Kind.Valid() {
		return nil, domainErrors.ErrInvalidKind
	}
	if item.ID == "" || item.Name == "" || !item.Price.IsPositive() {
		return nil, domainErrors.ErrInvalidItem
	}
	item.UpdatedAt = u.clock.Now()

	if err := u.items.Upsert(ctx, item); err != nil {
		return nil, err
	}
	u.invalidate(ctx, item.ID)
	return &item, nil
}

// Update changes price and/or availability of an existing item. Existing
// cart, reservation and order snapshots keep their captured price.
func (u *CatalogUseCase) Update(ctx context.Context, actor model.Actor, id string, price *decimal.Decimal, available *bool) (*model.CatalogItem, error) {
	if err := authorizeStaff(u.policy, actor, ActionManageCatalog); err != nil {
		return nil, err
	}
	if price != nil && !price.IsPositive() {
		return nil, domainErrors.ErrInvalidItem
	}

	if price != nil {
		if err := u.items.UpdatePrice(ctx, id, *price); err != nil {
			return nil, err
		}
	}
	if available != nil {
		if _, err := u.items.SetAvailability(ctx, id, *available); err != nil {
			return nil, err
		}
	}
	u.invalidate(ctx, id)

	return u.items.Get(ctx, id)
}

// claim marks an available item unavailable. It reports false when another
// caller already holds it.
func (u *CatalogUseCase) claim(ctx context.Context, id string) (bool, error) {
	return u.items.SetAvailability(ctx, id, false)
}

// release makes an item purchasable again. Releasing an available item is a no-op.
func (u *CatalogUseCase) release(ctx context.Context, id string) error {
	_, err := u.items.SetAvailability(ctx, id, true)
	return err
}

func (u *CatalogUseCase) invalidate(ctx context.Context, ids ...string) {
	if len(ids) == 0 {
		return
	}
	if err := u.cache.Invalidate(ctx, ids...); err != nil {
		u.logger.Warn("catalog cache invalidation failed", slog.Any("items", ids), slog.String("error", err.Error()))
	}
}
