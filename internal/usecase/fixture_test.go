package usecase

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/dealership/internal/clock"
	"github.com/polkiloo/dealership/internal/domain/model"
	testhelpers "github.com/polkiloo/dealership/internal/test"
)

var t0 = time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)

var (
	buyer   = model.Actor{UserID: 1, Role: model.RoleClient}
	other   = model.Actor{UserID: 2, Role: model.RoleClient}
	advisor = model.Actor{UserID: 10, Role: model.RoleConseillere}
	manager = model.Actor{UserID: 11, Role: model.RoleResponsable}
)

type fixture struct {
	store        *testhelpers.MemoryStore
	clock        *clock.Manual
	events       *testhelpers.EventRecorder
	metrics      *testhelpers.MetricsRecorder
	cache        *testhelpers.CatalogCacheStub
	settings     Settings
	catalog      *CatalogUseCase
	orders       *OrderUseCase
	carts        *CartUseCase
	reservations *ReservationUseCase
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store:   testhelpers.NewMemoryStore(),
		clock:   clock.NewManual(t0),
		events:  &testhelpers.EventRecorder{},
		metrics: &testhelpers.MetricsRecorder{},
		cache:   &testhelpers.CatalogCacheStub{},
		settings: Settings{
			ReservationDelay: 48 * time.Hour,
			DepositAmount:    decimal.NewFromInt(500),
		},
	}
	logger := discardLogger()
	policy := NewRolePolicy()
	notifier := NewNotifier(f.events, f.metrics, logger)

	f.catalog = NewCatalogUseCase(f.store.Catalog(), f.cache, policy, f.clock, logger)
	f.orders = NewOrderUseCase(f.store, f.store.Orders(), f.store.Reservations(), f.catalog, policy, f.settings, f.clock, notifier)
	f.carts = NewCartUseCase(f.store, f.store.Carts(), f.catalog, f.orders, f.clock, notifier)
	f.reservations = NewReservationUseCase(f.store, f.store.Reservations(), f.catalog, f.orders, policy, f.settings, f.clock, notifier, logger)
	return f
}

func (f *fixture) seed(items ...model.CatalogItem) {
	for _, item := range items {
		f.store.PutItem(item)
	}
}

func (f *fixture) available(t *testing.T, id string) bool {
	t.Helper()
	item, ok := f.store.Item(id)
	if !ok {
		t.Fatalf("item %s not seeded", id)
	}
	return item.Available
}

func usedVehicle(id string, price int64) model.CatalogItem {
	return model.CatalogItem{ID: id, Kind: model.ItemKindUsed, Name: "used " + id, Price: decimal.NewFromInt(price), Available: true}
}

func newConfig(id string, price int64) model.CatalogItem {
	return model.CatalogItem{ID: id, Kind: model.ItemKindNewConfig, Name: "config " + id, Price: decimal.NewFromInt(price), Available: true}
}

func accessory(id string, price int64) model.CatalogItem {
	return model.CatalogItem{ID: id, Kind: model.ItemKindAccessory, Name: "accessory " + id, Price: decimal.NewFromInt(price), Available: true}
}
