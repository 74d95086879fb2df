package test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/dealership/internal/domain/model"
)

// AuthFacadeStub implements authentication facade with optional overrides.
type AuthFacadeStub struct {
	RegisterFn     func(ctx context.Context, login, password string) (string, error)
	AuthenticateFn func(ctx context.Context, login, password string) (string, error)
	ParseFn        func(token string) (model.Actor, error)
}

func (s AuthFacadeStub) Register(ctx context.Context, login, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password)
	}
	return "token", nil
}

func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token", nil
}

// ParseToken defaults to a client with id 1.
func (s AuthFacadeStub) ParseToken(token string) (model.Actor, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return model.Actor{UserID: 1, Role: model.RoleClient}, nil
}

// CatalogFacadeStub serves catalog reads.
type CatalogFacadeStub struct {
	ItemsFn func(ctx context.Context, kind model.ItemKind) ([]model.CatalogItem, error)
	ItemFn  func(ctx context.Context, id string) (*model.CatalogItem, error)
}

func (s CatalogFacadeStub) CatalogItems(ctx context.Context, kind model.ItemKind) ([]model.CatalogItem, error) {
	if s.ItemsFn != nil {
		return s.ItemsFn(ctx, kind)
	}
	return nil, nil
}

func (s CatalogFacadeStub) CatalogItem(ctx context.Context, id string) (*model.CatalogItem, error) {
	if s.ItemFn != nil {
		return s.ItemFn(ctx, id)
	}
	return &model.CatalogItem{ID: id, Kind: model.ItemKindAccessory, Available: true}, nil
}

// CartFacadeStub returns empty carts unless overridden.
type CartFacadeStub struct {
	CartFn     func(ctx context.Context, userID int64) (*model.Cart, error)
	AddFn      func(ctx context.Context, userID int64, itemID string, quantity int) (*model.Cart, error)
	RemoveFn   func(ctx context.Context, userID int64, itemID string) (*model.Cart, error)
	ClearFn    func(ctx context.Context, userID int64) error
	CheckoutFn func(ctx context.Context, userID int64) ([]model.Order, error)
}

func (s CartFacadeStub) Cart(ctx context.Context, userID int64) (*model.Cart, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, userID)
	}
	return &model.Cart{UserID: userID}, nil
}

func (s CartFacadeStub) AddCartLine(ctx context.Context, userID int64, itemID string, quantity int) (*model.Cart, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, userID, itemID, quantity)
	}
	return &model.Cart{UserID: userID}, nil
}

func (s CartFacadeStub) RemoveCartLine(ctx context.Context, userID int64, itemID string) (*model.Cart, error) {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, userID, itemID)
	}
	return &model.Cart{UserID: userID}, nil
}

func (s CartFacadeStub) ClearCart(ctx context.Context, userID int64) error {
	if s.ClearFn != nil {
		return s.ClearFn(ctx, userID)
	}
	return nil
}

func (s CartFacadeStub) Checkout(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, userID)
	}
	return nil, nil
}

// ReservationFacadeStub serves reservation operations.
type ReservationFacadeStub struct {
	ReserveFn func(ctx context.Context, userID int64, vehicleID string) (*model.Reservation, error)
	ListFn    func(ctx context.Context, userID int64) ([]model.Reservation, error)
	GetFn     func(ctx context.Context, actor model.Actor, id string) (*model.Reservation, error)
	CancelFn  func(ctx context.Context, actor model.Actor, id string) (*model.Reservation, error)
	ConvertFn func(ctx context.Context, actor model.Actor, id string) (*model.Order, error)
}

func (s ReservationFacadeStub) Reserve(ctx context.Context, userID int64, vehicleID string) (*model.Reservation, error) {
	if s.ReserveFn != nil {
		return s.ReserveFn(ctx, userID, vehicleID)
	}
	return &model.Reservation{ID: "r-1", VehicleID: vehicleID, UserID: userID, Status: model.ReservationStatusActive}, nil
}

func (s ReservationFacadeStub) Reservations(ctx context.Context, userID int64) ([]model.Reservation, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	return nil, nil
}

func (s ReservationFacadeStub) Reservation(ctx context.Context, actor model.Actor, id string) (*model.Reservation, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, actor, id)
	}
	return &model.Reservation{ID: id, UserID: actor.UserID, Status: model.ReservationStatusActive}, nil
}

func (s ReservationFacadeStub) CancelReservation(ctx context.Context, actor model.Actor, id string) (*model.Reservation, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, actor, id)
	}
	return &model.Reservation{ID: id, UserID: actor.UserID, Status: model.ReservationStatusCancelled}, nil
}

func (s ReservationFacadeStub) ConvertReservation(ctx context.Context, actor model.Actor, id string) (*model.Order, error) {
	if s.ConvertFn != nil {
		return s.ConvertFn(ctx, actor, id)
	}
	return &model.Order{ID: "o-1", UserID: actor.UserID, ReservationID: id, Status: model.OrderStatusPending}, nil
}

// OrderFacadeStub serves buyer order operations.
type OrderFacadeStub struct {
	OrdersFn func(ctx context.Context, userID int64) ([]model.Order, error)
	OrderFn  func(ctx context.Context, actor model.Actor, id string) (*model.Order, error)
	CancelFn func(ctx context.Context, actor model.Actor, id string) (*model.Order, error)
}

func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return nil, nil
}

func (s OrderFacadeStub) Order(ctx context.Context, actor model.Actor, id string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, actor, id)
	}
	return &model.Order{ID: id, UserID: actor.UserID, Status: model.OrderStatusPending}, nil
}

func (s OrderFacadeStub) CancelOrder(ctx context.Context, actor model.Actor, id string) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, actor, id)
	}
	return &model.Order{ID: id, UserID: actor.UserID, Status: model.OrderStatusCancelled}, nil
}

// AdminFacadeStub serves staff workflows.
type AdminFacadeStub struct {
	CreateUserFn func(ctx context.Context, actor model.Actor, login, password string, role model.Role) (*model.User, error)
	PublishFn    func(ctx context.Context, actor model.Actor, item model.CatalogItem) (*model.CatalogItem, error)
	UpdateFn     func(ctx context.Context, actor model.Actor, id string, price *decimal.Decimal, available *bool) (*model.CatalogItem, error)
	AllOrdersFn  func(ctx context.Context, actor model.Actor, status model.OrderStatus) ([]model.Order, error)
	ConfirmFn    func(ctx context.Context, actor model.Actor, id string) (*model.Order, error)
	DeliverFn    func(ctx context.Context, actor model.Actor, id string) (*model.Order, error)
	SweepFn      func(ctx context.Context, actor model.Actor) (int, error)
}

func (s AdminFacadeStub) CreateUser(ctx context.Context, actor model.Actor, login, password string, role model.Role) (*model.User, error) {
	if s.CreateUserFn != nil {
		return s.CreateUserFn(ctx, actor, login, password, role)
	}
	return &model.User{ID: 2, Login: login, Role: role}, nil
}

func (s AdminFacadeStub) PublishItem(ctx context.Context, actor model.Actor, item model.CatalogItem) (*model.CatalogItem, error) {
	if s.PublishFn != nil {
		return s.PublishFn(ctx, actor, item)
	}
	return &item, nil
}

func (s AdminFacadeStub) UpdateItem(ctx context.Context, actor model.Actor, id string, price *decimal.Decimal, available *bool) (*model.CatalogItem, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, actor, id, price, available)
	}
	return &model.CatalogItem{ID: id}, nil
}

func (s AdminFacadeStub) AllOrders(ctx context.Context, actor model.Actor, status model.OrderStatus) ([]model.Order, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx, actor, status)
	}
	return nil, nil
}

func (s AdminFacadeStub) ConfirmOrder(ctx context.Context, actor model.Actor, id string) (*model.Order, error) {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, actor, id)
	}
	return &model.Order{ID: id, Status: model.OrderStatusConfirmed}, nil
}

func (s AdminFacadeStub) DeliverOrder(ctx context.Context, actor model.Actor, id string) (*model.Order, error) {
	if s.DeliverFn != nil {
		return s.DeliverFn(ctx, actor, id)
	}
	return &model.Order{ID: id, Status: model.OrderStatusDelivered}, nil
}

func (s AdminFacadeStub) SweepReservations(ctx context.Context, actor model.Actor) (int, error) {
	if s.SweepFn != nil {
		return s.SweepFn(ctx, actor)
	}
	return 0, nil
}

// PaymentFacadeStub settles orders.
type PaymentFacadeStub struct {
	MarkPaidFn func(ctx context.Context, orderID string) (*model.Order, error)
}

func (s PaymentFacadeStub) MarkOrderPaid(ctx context.Context, orderID string) (*model.Order, error) {
	if s.MarkPaidFn != nil {
		return s.MarkPaidFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusPaid}, nil
}

// HealthFacadeStub reports Err.
type HealthFacadeStub struct {
	Err error
}

func (s HealthFacadeStub) HealthCheck(context.Context) error {
	return s.Err
}

// DealershipFacadeStub composes all facade stubs.
type DealershipFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	CartFacadeStub
	ReservationFacadeStub
	OrderFacadeStub
	AdminFacadeStub
	PaymentFacadeStub
	HealthFacadeStub
}
