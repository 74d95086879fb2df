package app

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/polkiloo/dealership/internal/config"
	"github.com/polkiloo/dealership/internal/domain/model"
	"github.com/polkiloo/dealership/internal/usecase"
)

// HealthChecker reports whether backing storage is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// DealershipFacade is the single entry point used by transports and workers.
type DealershipFacade struct {
	auth         *usecase.AuthUseCase
	catalog      *usecase.CatalogUseCase
	carts        *usecase.CartUseCase
	reservations *usecase.ReservationUseCase
	orders       *usecase.OrderUseCase
	health       HealthChecker
	sweepBatch   int
}

type facadeParams struct {
	fx.In

	Auth         *usecase.AuthUseCase
	Catalog      *usecase.CatalogUseCase
	Carts        *usecase.CartUseCase
	Reservations *usecase.ReservationUseCase
	Orders       *usecase.OrderUseCase
	Health       HealthChecker
	Config       *config.Config
}

// NewDealershipFacade assembles the facade from use cases.
func NewDealershipFacade(p facadeParams) *DealershipFacade {
	return &DealershipFacade{
		auth:         p.Auth,
		catalog:      p.Catalog,
		carts:        p.Carts,
		reservations: p.Reservations,
		orders:       p.Orders,
		health:       p.Health,
		sweepBatch:   p.Config.SweepBatchSize,
	}
}

func (f *DealershipFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *DealershipFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *DealershipFacade) ParseToken(token string) (model.Actor, error) {
	return f.auth.ParseToken(token)
}

func (f *DealershipFacade) CreateUser(ctx context.Context, actor model.Actor, login, password string, role model.Role) (*model.User, error) {
	return f.auth.CreateUser(ctx, actor, login, password, role)
}

func (f *DealershipFacade) CatalogItems(ctx context.Context, kind model.ItemKind) ([]model.CatalogItem, error) {
	return f.catalog.List(ctx, kind)
}

func (f *DealershipFacade) CatalogItem(ctx context.Context, id string) (*model.CatalogItem, error) {
	return f.catalog.Get(ctx, id)
}

func (f *DealershipFacade) PublishItem(ctx context.Context, actor model.Actor, item model.CatalogItem) (*model.CatalogItem, error) {
	return f.catalog.Publish(ctx, actor, item)
}

func (f *DealershipFacade) UpdateItem(ctx context.Context, actor model.Actor, id string, price *decimal.Decimal, available *bool) (*model.CatalogItem, error) {
	return f.catalog.Update(ctx, actor, id, price, available)
}

func (f *DealershipFacade) Cart(ctx context.Context, userID int64) (*model.Cart, error) {
	return f.carts.Get(ctx, userID)
}

func (f *DealershipFacade) AddCartLine(ctx context.Context, userID int64, itemID string, quantity int) (*model.Cart, error) {
	return f.carts.AddLine(ctx, userID, itemID, quantity)
}

func (f *DealershipFacade) RemoveCartLine(ctx context.Context, userID int64, itemID string) (*model.Cart, error) {
	return f.carts.RemoveLine(ctx, userID, itemID)
}

func (f *DealershipFacade) ClearCart(ctx context.Context, userID int64) error {
	return f.carts.Clear(ctx, userID)
}

func (f *DealershipFacade) Checkout(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.carts.Checkout(ctx, userID)
}

func (f *DealershipFacade) Reserve(ctx context.Context, userID int64, vehicleID string) (*model.Reservation, error) {
	return f.reservations.Reserve(ctx, userID, vehicleID)
}

func (f *DealershipFacade) Reservations(ctx context.Context, userID int64) ([]model.Reservation, error) {
	return f.reservations.ListByUser(ctx, userID)
}

func (f *DealershipFacade) Reservation(ctx context.Context, actor model.Actor, id string) (*model.Reservation, error) {
	return f.reservations.Get(ctx, actor, id)
}

func (f *DealershipFacade) CancelReservation(ctx context.Context, actor model.Actor, id string) (*model.Reservation, error) {
	return f.reservations.Cancel(ctx, actor, id)
}

func (f *DealershipFacade) ConvertReservation(ctx context.Context, actor model.Actor, id string) (*model.Order, error) {
	return f.reservations.ConvertToOrder(ctx, actor, id)
}

// SweepReservations expires one batch of overdue holds on behalf of staff.
func (f *DealershipFacade) SweepReservations(ctx context.Context, actor model.Actor) (int, error) {
	return f.reservations.SweepAs(ctx, actor, f.sweepBatch)
}

func (f *DealershipFacade) ExpiredReservations(ctx context.Context, limit int) ([]model.Reservation, error) {
	return f.reservations.Expired(ctx, limit)
}

func (f *DealershipFacade) ExpireReservation(ctx context.Context, id string) (*model.Reservation, error) {
	return f.reservations.Expire(ctx, id)
}

func (f *DealershipFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *DealershipFacade) Order(ctx context.Context, actor model.Actor, id string) (*model.Order, error) {
	return f.orders.Get(ctx, actor, id)
}

func (f *DealershipFacade) CancelOrder(ctx context.Context, actor model.Actor, id string) (*model.Order, error) {
	return f.orders.Cancel(ctx, actor, id)
}

func (f *DealershipFacade) AllOrders(ctx context.Context, actor model.Actor, status model.OrderStatus) ([]model.Order, error) {
	return f.orders.ListAll(ctx, actor, status)
}

func (f *DealershipFacade) ConfirmOrder(ctx context.Context, actor model.Actor, id string) (*model.Order, error) {
	return f.orders.Confirm(ctx, actor, id)
}

func (f *DealershipFacade) DeliverOrder(ctx context.Context, actor model.Actor, id string) (*model.Order, error) {
	return f.orders.MarkDelivered(ctx, actor, id)
}

// MarkOrderPaid settles an order from a payment notification.
func (f *DealershipFacade) MarkOrderPaid(ctx context.Context, orderID string) (*model.Order, error) {
	return f.orders.MarkPaid(ctx, orderID)
}

func (f *DealershipFacade) HealthCheck(ctx context.Context) error {
	if f.health == nil {
		return nil
	}
	return f.health.HealthCheck(ctx)
}
