package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/dealership/internal/clock"
	"github.com/polkiloo/dealership/internal/config"
	domainErrors "github.com/polkiloo/dealership/internal/domain/errors"
	"github.com/polkiloo/dealership/internal/domain/model"
	testhelpers "github.com/polkiloo/dealership/internal/test"
	"github.com/polkiloo/dealership/internal/usecase"
)

var manager = model.Actor{UserID: 100, Role: model.RoleResponsable}

type healthStub struct{ err error }

func (h healthStub) HealthCheck(context.Context) error { return h.err }

func newFacade(t *testing.T) (*DealershipFacade, *testhelpers.MemoryStore, *clock.Manual) {
	t.Helper()

	store := testhelpers.NewMemoryStore()
	clk := clock.NewManual(time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	settings := usecase.Settings{ReservationDelay: 48 * time.Hour, DepositAmount: decimal.NewFromInt(500)}
	policy := usecase.NewRolePolicy()
	notifier := usecase.NewNotifier(&testhelpers.EventRecorder{}, &testhelpers.MetricsRecorder{}, logger)

	catalog := usecase.NewCatalogUseCase(store.Catalog(), &testhelpers.CatalogCacheStub{}, policy, clk, logger)
	orders := usecase.NewOrderUseCase(store, store.Orders(), store.Reservations(), catalog, policy, settings, clk, notifier)
	carts := usecase.NewCartUseCase(store, store.Carts(), catalog, orders, clk, notifier)
	reservations := usecase.NewReservationUseCase(store, store.Reservations(), catalog, orders, policy, settings, clk, notifier, logger)
	auth := usecase.NewAuthUseCase(store.Users(), testhelpers.HasherStub{}, testhelpers.StrategyStub{}, policy)

	facade := NewDealershipFacade(facadeParams{
		Auth:         auth,
		Catalog:      catalog,
		Carts:        carts,
		Reservations: reservations,
		Orders:       orders,
		Health:       healthStub{},
		Config:       &config.Config{SweepBatchSize: 10},
	})
	return facade, store, clk
}

func TestDealershipFacadeAuth(t *testing.T) {
	facade, _, _ := newFacade(t)
	ctx := context.Background()

	token, err := facade.Register(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token-1-client" {
		t.Fatalf("unexpected token %q", token)
	}

	if token, err = facade.Authenticate(ctx, "alice", "secret"); err != nil || token != "token-1-client" {
		t.Fatalf("unexpected authenticate result %q err=%v", token, err)
	}

	actor, err := facade.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if actor.UserID != 1 || actor.Role != model.RoleClient {
		t.Fatalf("unexpected actor %+v", actor)
	}

	staff, err := facade.CreateUser(ctx, manager, "claire", "secret", model.RoleConseillere)
	if err != nil {
		t.Fatalf("create user returned error: %v", err)
	}
	if staff.Role != model.RoleConseillere {
		t.Fatalf("unexpected role %q", staff.Role)
	}
	if _, err := facade.CreateUser(ctx, actor, "eve", "secret", model.RoleResponsable); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestDealershipFacadeReservationFlow(t *testing.T) {
	facade, store, _ := newFacade(t)
	ctx := context.Background()
	buyer := model.Actor{UserID: 7, Role: model.RoleClient}

	if _, err := facade.PublishItem(ctx, manager, model.CatalogItem{
		ID: "VF1RFB00X12345678", Kind: model.ItemKindUsed, Name: "Clio", Price: decimal.NewFromInt(12000), Available: true,
	}); err != nil {
		t.Fatalf("publish returned error: %v", err)
	}

	items, err := facade.CatalogItems(ctx, model.ItemKindUsed)
	if err != nil || len(items) != 1 {
		t.Fatalf("expected one used vehicle, got %v err=%v", items, err)
	}

	res, err := facade.Reserve(ctx, buyer.UserID, "VF1RFB00X12345678")
	if err != nil {
		t.Fatalf("reserve returned error: %v", err)
	}
	if item, _ := store.Item("VF1RFB00X12345678"); item.Available {
		t.Fatal("expected vehicle to be held")
	}

	listed, err := facade.Reservations(ctx, buyer.UserID)
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected one reservation, got %v err=%v", listed, err)
	}
	if got, err := facade.Reservation(ctx, buyer, res.ID); err != nil || got.ID != res.ID {
		t.Fatalf("unexpected reservation %v err=%v", got, err)
	}

	order, err := facade.ConvertReservation(ctx, buyer, res.ID)
	if err != nil {
		t.Fatalf("convert returned error: %v", err)
	}
	if !order.Deposit.Equal(decimal.NewFromInt(500)) || order.Status != model.OrderStatusPending {
		t.Fatalf("unexpected order %+v", order)
	}

	paid, err := facade.MarkOrderPaid(ctx, order.ID)
	if err != nil || paid.Status != model.OrderStatusPaid {
		t.Fatalf("unexpected mark paid result %v err=%v", paid, err)
	}
	if _, err := facade.CancelOrder(ctx, buyer, order.ID); !errors.Is(err, domainErrors.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	delivered, err := facade.DeliverOrder(ctx, manager, order.ID)
	if err != nil || delivered.Status != model.OrderStatusDelivered {
		t.Fatalf("unexpected deliver result %v err=%v", delivered, err)
	}
}

func TestDealershipFacadeCartCheckout(t *testing.T) {
	facade, store, _ := newFacade(t)
	ctx := context.Background()
	buyer := model.Actor{UserID: 3, Role: model.RoleClient}

	store.PutItem(model.CatalogItem{ID: "mats", Kind: model.ItemKindAccessory, Name: "Mats", Price: decimal.NewFromInt(40), Available: true})
	store.PutItem(model.CatalogItem{ID: "megane-e", Kind: model.ItemKindNewConfig, Name: "Megane E-Tech", Price: decimal.NewFromInt(38000), Available: true})

	if _, err := facade.AddCartLine(ctx, buyer.UserID, "mats", 3); err != nil {
		t.Fatalf("add accessory returned error: %v", err)
	}
	if _, err := facade.AddCartLine(ctx, buyer.UserID, "megane-e", 1); err != nil {
		t.Fatalf("add vehicle returned error: %v", err)
	}
	cart, err := facade.Cart(ctx, buyer.UserID)
	if err != nil || len(cart.Lines) != 2 {
		t.Fatalf("expected two lines, got %v err=%v", cart, err)
	}

	orders, err := facade.Checkout(ctx, buyer.UserID)
	if err != nil {
		t.Fatalf("checkout returned error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected two orders, got %d", len(orders))
	}

	listed, err := facade.Orders(ctx, buyer.UserID)
	if err != nil || len(listed) != 2 {
		t.Fatalf("expected two orders listed, got %v err=%v", listed, err)
	}
	if _, err := facade.Order(ctx, model.Actor{UserID: 4, Role: model.RoleClient}, orders[0].ID); !errors.Is(err, domainErrors.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	cancelled, err := facade.CancelOrder(ctx, buyer, orders[0].ID)
	if err != nil || cancelled.Status != model.OrderStatusCancelled {
		t.Fatalf("unexpected cancel result %v err=%v", cancelled, err)
	}

	pending, err := facade.AllOrders(ctx, manager, model.OrderStatusPending)
	if err != nil || len(pending) != 1 {
		t.Fatalf("expected one pending order, got %v err=%v", pending, err)
	}
	confirmed, err := facade.ConfirmOrder(ctx, manager, pending[0].ID)
	if err != nil || confirmed.Status != model.OrderStatusConfirmed {
		t.Fatalf("unexpected confirm result %v err=%v", confirmed, err)
	}

	if _, err := facade.Checkout(ctx, buyer.UserID); !errors.Is(err, domainErrors.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestDealershipFacadeCartEditing(t *testing.T) {
	facade, store, _ := newFacade(t)
	ctx := context.Background()
	store.PutItem(model.CatalogItem{ID: "mats", Kind: model.ItemKindAccessory, Name: "Mats", Price: decimal.NewFromInt(40), Available: true})

	if _, err := facade.AddCartLine(ctx, 5, "mats", 2); err != nil {
		t.Fatalf("add line returned error: %v", err)
	}
	cart, err := facade.RemoveCartLine(ctx, 5, "mats")
	if err != nil || len(cart.Lines) != 0 {
		t.Fatalf("expected empty cart, got %v err=%v", cart, err)
	}
	if _, err := facade.AddCartLine(ctx, 5, "mats", 2); err != nil {
		t.Fatalf("add line returned error: %v", err)
	}
	if err := facade.ClearCart(ctx, 5); err != nil {
		t.Fatalf("clear returned error: %v", err)
	}
	if cart, _ = facade.Cart(ctx, 5); len(cart.Lines) != 0 {
		t.Fatalf("expected cleared cart, got %v", cart.Lines)
	}
}

func TestDealershipFacadeSweep(t *testing.T) {
	facade, store, clk := newFacade(t)
	ctx := context.Background()
	store.PutItem(model.CatalogItem{ID: "VIN1", Kind: model.ItemKindUsed, Name: "Zoe", Price: decimal.NewFromInt(9000), Available: true})

	res, err := facade.Reserve(ctx, 9, "VIN1")
	if err != nil {
		t.Fatalf("reserve returned error: %v", err)
	}
	clk.Advance(49 * time.Hour)

	expired, err := facade.ExpiredReservations(ctx, 10)
	if err != nil || len(expired) != 1 {
		t.Fatalf("expected one overdue reservation, got %v err=%v", expired, err)
	}

	if _, err := facade.SweepReservations(ctx, model.Actor{UserID: 9, Role: model.RoleClient}); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	n, err := facade.SweepReservations(ctx, manager)
	if err != nil || n != 1 {
		t.Fatalf("expected one swept reservation, got %d err=%v", n, err)
	}

	got, err := facade.ExpireReservation(ctx, res.ID)
	if err != nil || got.Status != model.ReservationStatusExpired {
		t.Fatalf("expected idempotent expire, got %v err=%v", got, err)
	}
	if item, _ := store.Item("VIN1"); !item.Available {
		t.Fatal("expected vehicle released after expiry")
	}
}

func TestDealershipFacadeCancelReservation(t *testing.T) {
	facade, store, _ := newFacade(t)
	ctx := context.Background()
	buyer := model.Actor{UserID: 2, Role: model.RoleClient}
	vin := testhelpers.RandomVIN()
	store.PutItem(model.CatalogItem{ID: vin, Kind: model.ItemKindUsed, Name: "Captur", Price: decimal.NewFromInt(15000), Available: true})

	res, err := facade.Reserve(ctx, buyer.UserID, vin)
	if err != nil {
		t.Fatalf("reserve returned error: %v", err)
	}
	cancelled, err := facade.CancelReservation(ctx, buyer, res.ID)
	if err != nil || cancelled.Status != model.ReservationStatusCancelled {
		t.Fatalf("unexpected cancel result %v err=%v", cancelled, err)
	}
	if _, err := facade.CancelReservation(ctx, buyer, res.ID); !errors.Is(err, domainErrors.ErrAlreadyTerminal) {
		t.Fatalf("expected ErrAlreadyTerminal, got %v", err)
	}
}

func TestDealershipFacadeCatalogUpdate(t *testing.T) {
	facade, store, _ := newFacade(t)
	ctx := context.Background()
	store.PutItem(model.CatalogItem{ID: "mats", Kind: model.ItemKindAccessory, Name: "Mats", Price: decimal.NewFromInt(40), Available: true})

	price := decimal.NewFromInt(45)
	off := false
	item, err := facade.UpdateItem(ctx, manager, "mats", &price, &off)
	if err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	if !item.Price.Equal(price) || item.Available {
		t.Fatalf("unexpected item %+v", item)
	}
	if got, err := facade.CatalogItem(ctx, "mats"); err != nil || !got.Price.Equal(price) {
		t.Fatalf("unexpected catalog item %v err=%v", got, err)
	}
}

func TestDealershipFacadeHealthCheck(t *testing.T) {
	facade, _, _ := newFacade(t)
	if err := facade.HealthCheck(context.Background()); err != nil {
		t.Fatalf("expected healthy, got %v", err)
	}

	boom := errors.New("db down")
	facade.health = healthStub{err: boom}
	if err := facade.HealthCheck(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected db error, got %v", err)
	}

	facade.health = nil
	if err := facade.HealthCheck(context.Background()); err != nil {
		t.Fatalf("expected nil without checker, got %v", err)
	}
}
