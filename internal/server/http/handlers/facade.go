package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/dealership/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (model.Actor, error)
}

// CatalogFacade exposes catalog browsing.
type CatalogFacade interface {
	CatalogItems(ctx context.Context, kind model.ItemKind) ([]model.CatalogItem, error)
	CatalogItem(ctx context.Context, id string) (*model.CatalogItem, error)
}

// CartFacade manages the caller's cart.
type CartFacade interface {
	Cart(ctx context.Context, userID int64) (*model.Cart, error)
	AddCartLine(ctx context.Context, userID int64, itemID string, quantity int) (*model.Cart, error)
	RemoveCartLine(ctx context.Context, userID int64, itemID string) (*model.Cart, error)
	ClearCart(ctx context.Context, userID int64) error
	Checkout(ctx context.Context, userID int64) ([]model.Order, error)
}

// ReservationFacade manages holds on used vehicles.
type ReservationFacade interface {
	Reserve(ctx context.Context, userID int64, vehicleID string) (*model.Reservation, error)
	Reservations(ctx context.Context, userID int64) ([]model.Reservation, error)
	Reservation(ctx context.Context, actor model.Actor, id string) (*model.Reservation, error)
	CancelReservation(ctx context.Context, actor model.Actor, id string) (*model.Reservation, error)
	ConvertReservation(ctx context.Context, actor model.Actor, id string) (*model.Order, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	Order(ctx context.Context, actor model.Actor, id string) (*model.Order, error)
	CancelOrder(ctx context.Context, actor model.Actor, id string) (*model.Order, error)
}

// AdminFacade groups staff workflows.
type AdminFacade interface {
	CreateUser(ctx context.Context, actor model.Actor, login, password string, role model.Role) (*model.User, error)
	PublishItem(ctx context.Context, actor model.Actor, item model.CatalogItem) (*model.CatalogItem, error)
	UpdateItem(ctx context.Context, actor model.Actor, id string, price *decimal.Decimal, available *bool) (*model.CatalogItem, error)
	AllOrders(ctx context.Context, actor model.Actor, status model.OrderStatus) ([]model.Order, error)
	ConfirmOrder(ctx context.Context, actor model.Actor, id string) (*model.Order, error)
	DeliverOrder(ctx context.Context, actor model.Actor, id string) (*model.Order, error)
	SweepReservations(ctx context.Context, actor model.Actor) (int, error)
}

// PaymentFacade settles orders from payment notifications.
type PaymentFacade interface {
	MarkOrderPaid(ctx context.Context, orderID string) (*model.Order, error)
}

// HealthFacade reports dependency health.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// DealershipFacade aggregates the full set of operations used across handlers.
type DealershipFacade interface {
	AuthFacade
	CatalogFacade
	CartFacade
	ReservationFacade
	OrderFacade
	AdminFacade
	PaymentFacade
	HealthFacade
}
