package test

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/dealership/internal/domain/errors"
	"github.com/polkiloo/dealership/internal/domain/model"
	"github.com/polkiloo/dealership/internal/domain/repository"
)

type txMarker struct{}

// MemoryStore is an in-memory repository.Factory. Transactions are serialized
// by a single mutex and rolled back by restoring a snapshot.
type MemoryStore struct {
	mu sync.Mutex

	users        map[int64]model.User
	nextUserID   int64
	items        map[string]model.CatalogItem
	carts        map[int64][]model.CartLine
	reservations map[string]model.Reservation
	orders       map[string]model.Order

	// OrderCreateErr, when set, is returned by the order repository Create for
	// the matching order. Used to exercise rollbacks.
	OrderCreateErr func(order model.Order) error
}

var _ repository.Factory = (*MemoryStore)(nil)

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[int64]model.User),
		items:        make(map[string]model.CatalogItem),
		carts:        make(map[int64][]model.CartLine),
		reservations: make(map[string]model.Reservation),
		orders:       make(map[string]model.Order),
	}
}

// WithinTransaction runs fn holding the store lock. Nested calls join the
// outer transaction.
func (s *MemoryStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txMarker{}) != nil {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txMarker{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *MemoryStore) lock(ctx context.Context) func() {
	if ctx.Value(txMarker{}) != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type storeSnapshot struct {
	users        map[int64]model.User
	nextUserID   int64
	items        map[string]model.CatalogItem
	carts        map[int64][]model.CartLine
	reservations map[string]model.Reservation
	orders       map[string]model.Order
}

func (s *MemoryStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		users:        make(map[int64]model.User, len(s.users)),
		nextUserID:   s.nextUserID,
		items:        make(map[string]model.CatalogItem, len(s.items)),
		carts:        make(map[int64][]model.CartLine, len(s.carts)),
		reservations: make(map[string]model.Reservation, len(s.reservations)),
		orders:       make(map[string]model.Order, len(s.orders)),
	}
	for k, v := range s.users {
		snap.users[k] = v
	}
	for k, v := range s.items {
		snap.items[k] = v
	}
	for k, v := range s.carts {
		snap.carts[k] = slices.Clone(v)
	}
	for k, v := range s.reservations {
		snap.reservations[k] = v
	}
	for k, v := range s.orders {
		v.Lines = slices.Clone(v.Lines)
		snap.orders[k] = v
	}
	return snap
}

func (s *MemoryStore) restore(snap storeSnapshot) {
	s.users = snap.users
	s.nextUserID = snap.nextUserID
	s.items = snap.items
	s.carts = snap.carts
	s.reservations = snap.reservations
	s.orders = snap.orders
}

// Users returns the user repository.
func (s *MemoryStore) Users() repository.UserRepository { return memoryUsers{s} }

// Catalog returns the catalog repository.
func (s *MemoryStore) Catalog() repository.CatalogRepository { return memoryCatalog{s} }

// Carts returns the cart repository.
func (s *MemoryStore) Carts() repository.CartRepository { return memoryCarts{s} }

// Reservations returns the reservation repository.
func (s *MemoryStore) Reservations() repository.ReservationRepository {
	return memoryReservations{s}
}

// Orders returns the order repository.
func (s *MemoryStore) Orders() repository.OrderRepository { return memoryOrders{s} }

// PutItem seeds a catalog item.
func (s *MemoryStore) PutItem(item model.CatalogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
}

// Item returns the stored catalog item.
func (s *MemoryStore) Item(id string) (model.CatalogItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	return item, ok
}

// OrderCount returns the number of stored orders.
func (s *MemoryStore) OrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// ActiveReservations counts active holds on vehicleID.
func (s *MemoryStore) ActiveReservations(vehicleID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, r := range s.reservations {
		if r.VehicleID == vehicleID && r.Status == model.ReservationStatusActive {
			count++
		}
	}
	return count
}

type memoryUsers struct{ s *MemoryStore }

func (r memoryUsers) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	defer r.s.lock(ctx)()
	for _, u := range r.s.users {
		if u.Login == login {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	r.s.nextUserID++
	user := model.User{ID: r.s.nextUserID, Login: login, PasswordHash: passwordHash, Role: role, CreatedAt: time.Now().UTC()}
	r.s.users[user.ID] = user
	return &user, nil
}

func (r memoryUsers) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	defer r.s.lock(ctx)()
	for _, u := range r.s.users {
		if u.Login == login {
			return &u, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r memoryUsers) GetByID(ctx context.Context, id int64) (*model.User, error) {
	defer r.s.lock(ctx)()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, domainErrors.ErrNotFound
}

type memoryCatalog struct{ s *MemoryStore }

func (r memoryCatalog) Get(ctx context.Context, id string) (*model.CatalogItem, error) {
	defer r.s.lock(ctx)()
	if item, ok := r.s.items[id]; ok {
		return &item, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (r memoryCatalog) List(ctx context.Context, kind model.ItemKind) ([]model.CatalogItem, error) {
	defer r.s.lock(ctx)()
	var items []model.CatalogItem
	for _, item := range r.s.items {
		if kind == "" || item.Kind == kind {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r memoryCatalog) Upsert(ctx context.Context, item model.CatalogItem) error {
	defer r.s.lock(ctx)()
	r.s.items[item.ID] = item
	return nil
}

func (r memoryCatalog) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error {
	defer r.s.lock(ctx)()
	item, ok := r.s.items[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	item.Price = price
	r.s.items[id] = item
	return nil
}

func (r memoryCatalog) SetAvailability(ctx context.Context, id string, available bool) (bool, error) {
	defer r.s.lock(ctx)()
	item, ok := r.s.items[id]
	if !ok || item.Available == available {
		return false, nil
	}
	item.Available = available
	r.s.items[id] = item
	return true, nil
}

type memoryCarts struct{ s *MemoryStore }

func (r memoryCarts) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	defer r.s.lock(ctx)()
	return &model.Cart{UserID: userID, Lines: slices.Clone(r.s.carts[userID])}, nil
}

func (r memoryCarts) AddLine(ctx context.Context, userID int64, line model.CartLine, maxQuantity int) (int, bool, error) {
	defer r.s.lock(ctx)()
	lines := r.s.carts[userID]
	for i := range lines {
		if lines[i].ItemID != line.ItemID {
			continue
		}
		merged := lines[i].Quantity + line.Quantity
		if merged > maxQuantity {
			return lines[i].Quantity, false, nil
		}
		lines[i].Quantity = merged
		return merged, true, nil
	}
	if line.Quantity > maxQuantity {
		return 0, false, nil
	}
	r.s.carts[userID] = append(lines, line)
	return line.Quantity, true, nil
}

func (r memoryCarts) RemoveLine(ctx context.Context, userID int64, itemID string) error {
	defer r.s.lock(ctx)()
	r.s.carts[userID] = slices.DeleteFunc(r.s.carts[userID], func(l model.CartLine) bool {
		return l.ItemID == itemID
	})
	return nil
}

func (r memoryCarts) Clear(ctx context.Context, userID int64) (int, error) {
	defer r.s.lock(ctx)()
	n := len(r.s.carts[userID])
	delete(r.s.carts, userID)
	return n, nil
}

type memoryReservations struct{ s *MemoryStore }

func (r memoryReservations) Create(ctx context.Context, res model.Reservation) error {
	defer r.s.lock(ctx)()
	for _, existing := range r.s.reservations {
		if existing.VehicleID == res.VehicleID && existing.Status == model.ReservationStatusActive {
			return domainErrors.ErrAlreadyReserved
		}
	}
	r.s.reservations[res.ID] = res
	return nil
}

func (r memoryReservations) Get(ctx context.Context, id string) (*model.Reservation, error) {
	defer r.s.lock(ctx)()
	if res, ok := r.s.reservations[id]; ok {
		return &res, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (r memoryReservations) GetActiveByVehicle(ctx context.Context, vehicleID string) (*model.Reservation, error) {
	defer r.s.lock(ctx)()
	for _, res := range r.s.reservations {
		if res.VehicleID == vehicleID && res.Status == model.ReservationStatusActive {
			return &res, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r memoryReservations) ListByUser(ctx context.Context, userID int64) ([]model.Reservation, error) {
	defer r.s.lock(ctx)()
	var list []model.Reservation
	for _, res := range r.s.reservations {
		if res.UserID == userID {
			list = append(list, res)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r memoryReservations) ListExpired(ctx context.Context, now time.Time, limit int) ([]model.Reservation, error) {
	defer r.s.lock(ctx)()
	var list []model.Reservation
	for _, res := range r.s.reservations {
		if res.Status == model.ReservationStatusActive && res.IsExpired(now) {
			list = append(list, res)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ExpiresAt.Before(list[j].ExpiresAt) })
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r memoryReservations) UpdateStatus(ctx context.Context, id string, from []model.ReservationStatus, to model.ReservationStatus, at time.Time) (bool, error) {
	defer r.s.lock(ctx)()
	res, ok := r.s.reservations[id]
	if !ok || !slices.Contains(from, res.Status) {
		return false, nil
	}
	res.Status = to
	res.UpdatedAt = at
	r.s.reservations[id] = res
	return true, nil
}

type memoryOrders struct{ s *MemoryStore }

func (r memoryOrders) Create(ctx context.Context, order model.Order) error {
	defer r.s.lock(ctx)()
	if r.s.OrderCreateErr != nil {
		if err := r.s.OrderCreateErr(order); err != nil {
			return err
		}
	}
	if _, exists := r.s.orders[order.ID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	order.Lines = slices.Clone(order.Lines)
	r.s.orders[order.ID] = order
	return nil
}

func (r memoryOrders) Get(ctx context.Context, id string) (*model.Order, error) {
	defer r.s.lock(ctx)()
	if order, ok := r.s.orders[id]; ok {
		order.Lines = slices.Clone(order.Lines)
		return &order, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (r memoryOrders) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	defer r.s.lock(ctx)()
	return r.s.filterOrders(func(o model.Order) bool { return o.UserID == userID }), nil
}

func (r memoryOrders) ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	defer r.s.lock(ctx)()
	return r.s.filterOrders(func(o model.Order) bool { return status == "" || o.Status == status }), nil
}

func (s *MemoryStore) filterOrders(keep func(model.Order) bool) []model.Order {
	var list []model.Order
	for _, order := range s.orders {
		if keep(order) {
			order.Lines = slices.Clone(order.Lines)
			list = append(list, order)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list
}

func (r memoryOrders) UpdateStatus(ctx context.Context, id string, from []model.OrderStatus, to model.OrderStatus, at time.Time) (bool, error) {
	defer r.s.lock(ctx)()
	order, ok := r.s.orders[id]
	if !ok || !slices.Contains(from, order.Status) {
		return false, nil
	}
	order.Status = to
	order.UpdatedAt = at
	r.s.orders[id] = order
	return true, nil
}
