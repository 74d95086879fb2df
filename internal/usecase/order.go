package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/dealership/internal/clock"
	domainErrors "github.com/polkiloo/dealership/internal/domain/errors"
	"github.com/polkiloo/dealership/internal/domain/model"
	"github.com/polkiloo/dealership/internal/domain/repository"
)

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	tx           repository.Transactor
	orders       repository.OrderRepository
	reservations repository.ReservationRepository
	catalog      *CatalogUseCase
	policy       Policy
	settings     Settings
	clock        clock.Clock
	notifier     *Notifier
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	tx repository.Transactor,
	orders repository.OrderRepository,
	reservations repository.ReservationRepository,
	catalog *CatalogUseCase,
	policy Policy,
	settings Settings,
	clk clock.Clock,
	notifier *Notifier,
) *OrderUseCase {
	return &OrderUseCase{
		tx:           tx,
		orders:       orders,
		reservations: reservations,
		catalog:      catalog,
		policy:       policy,
		settings:     settings,
		clock:        clk,
		notifier:     notifier,
	}
}

// Create places a pending order for buyerID. With depositOnly the order
// amount due is the configured deposit instead of the full total.
func (u *OrderUseCase) Create(ctx context.Context, buyerID int64, lines []model.OrderLine, depositOnly bool) (*model.Order, error) {
	order, err := u.build(buyerID, lines, depositOnly, "")
	if err != nil {
		return nil, err
	}
	if err := u.orders.Create(ctx, *order); err != nil {
		return nil, err
	}
	u.notifier.Emit(ctx, model.OrderEvent(model.EventOrderCreated, order, order.CreatedAt))
	return order, nil
}

// build validates lines and assembles a pending order without persisting it.
func (u *OrderUseCase) build(buyerID int64, lines []model.OrderLine, depositOnly bool, reservationID string) (*model.Order, error) {
	if len(lines) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}

	kind := model.OrderKindAccessories
	total := decimal.Zero
	copied := make([]model.OrderLine, 0, len(lines))
	for _, line := range lines {
		if !line.Kind.Valid() {
			return nil, domainErrors.ErrInvalidKind
		}
		if line.Quantity < 1 || line.Quantity > line.Kind.MaxQuantity() {
			return nil, domainErrors.ErrInvalidQuantity
		}
		if line.Kind.IsVehicle() {
			kind = model.OrderKindVehicle
		}
		total = total.Add(line.Subtotal())
		copied = append(copied, line)
	}

	deposit := total
	if depositOnly {
		deposit = u.settings.DepositAmount
	}

	now := u.clock.Now()
	return &model.Order{
		ID:            newID(),
		UserID:        buyerID,
		Kind:          kind,
		Status:        model.OrderStatusPending,
		Lines:         copied,
		Total:         total,
		Deposit:       deposit,
		ReservationID: reservationID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Get returns an order visible to actor.
func (u *OrderUseCase) Get(ctx context.Context, actor model.Actor, id string) (*model.Order, error) {
	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(u.policy, actor, ActionViewOrder, order.UserID); err != nil {
		return nil, err
	}
	return order, nil
}

// ListByUser returns orders of userID, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// ListAll returns orders in status, or every order when status is empty.
func (u *OrderUseCase) ListAll(ctx context.Context, actor model.Actor, status model.OrderStatus) ([]model.Order, error) {
	if err := authorizeStaff(u.policy, actor, ActionManageOrders); err != nil {
		return nil, err
	}
	return u.orders.ListByStatus(ctx, status)
}

// Cancel cancels a pending or confirmed order. The reservation it came from
// is cancelled as well and held vehicles become available again.
func (u *OrderUseCase) Cancel(ctx context.Context, actor model.Actor, id string) (*model.Order, error) {
	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(u.policy, actor, ActionCancelOrder, order.UserID); err != nil {
		return nil, err
	}
	if !order.Status.Cancellable() {
		return nil, domainErrors.ErrInvalidState
	}

	now := u.clock.Now()
	var reservation *model.Reservation
	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		applied, err := u.orders.UpdateStatus(ctx, order.ID,
			[]model.OrderStatus{model.OrderStatusPending, model.OrderStatusConfirmed},
			model.OrderStatusCancelled, now)
		if err != nil {
			return err
		}
		if !applied {
			return domainErrors.ErrInvalidState
		}

		if order.ReservationID != "" {
			reservation, err = u.cancelReservation(ctx, order.ReservationID, now)
			if err != nil {
				return err
			}
		}
		for _, vehicleID := range order.UsedVehicleIDs() {
			if err := u.catalog.release(ctx, vehicleID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = model.OrderStatusCancelled
	order.UpdatedAt = now
	u.catalog.invalidate(ctx, order.UsedVehicleIDs()...)

	events := []model.Event{model.OrderEvent(model.EventOrderCancelled, order, now)}
	if reservation != nil {
		events = append(events, model.ReservationEvent(model.EventReservationCancelled, reservation, now))
	}
	u.notifier.Emit(ctx, events...)
	return order, nil
}

// cancelReservation moves the linked reservation to cancelled. It returns nil
// when the reservation already ended some other way.
func (u *OrderUseCase) cancelReservation(ctx context.Context, id string, now time.Time) (*model.Reservation, error) {
	applied, err := u.reservations.UpdateStatus(ctx, id,
		[]model.ReservationStatus{model.ReservationStatusActive, model.ReservationStatusConverted},
		model.ReservationStatusCancelled, now)
	if err != nil || !applied {
		return nil, err
	}
	reservation, err := u.reservations.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.catalog.release(ctx, reservation.VehicleID); err != nil {
		return nil, err
	}
	return reservation, nil
}

// MarkPaid settles an order. Paying an already paid order is a no-op.
func (u *OrderUseCase) MarkPaid(ctx context.Context, id string) (*model.Order, error) {
	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	switch order.Status {
	case model.OrderStatusPaid:
		return order, nil
	case model.OrderStatusPending, model.OrderStatusConfirmed:
	default:
		return nil, domainErrors.ErrInvalidState
	}

	now := u.clock.Now()
	applied, err := u.orders.UpdateStatus(ctx, id,
		[]model.OrderStatus{model.OrderStatusPending, model.OrderStatusConfirmed},
		model.OrderStatusPaid, now)
	if err != nil {
		return nil, err
	}
	if !applied {
		current, err := u.orders.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if current.Status == model.OrderStatusPaid {
			return current, nil
		}
		return nil, domainErrors.ErrInvalidState
	}

	order.Status = model.OrderStatusPaid
	order.UpdatedAt = now
	u.notifier.Emit(ctx, model.OrderEvent(model.EventOrderPaid, order, now))
	return order, nil
}

// Confirm acknowledges a pending order on behalf of the dealership.
func (u *OrderUseCase) Confirm(ctx context.Context, actor model.Actor, id string) (*model.Order, error) {
	return u.advance(ctx, actor, id, model.OrderStatusPending, model.OrderStatusConfirmed, model.EventOrderConfirmed)
}

// MarkDelivered records hand-over of a paid order.
func (u *OrderUseCase) MarkDelivered(ctx context.Context, actor model.Actor, id string) (*model.Order, error) {
	return u.advance(ctx, actor, id, model.OrderStatusPaid, model.OrderStatusDelivered, model.EventOrderDelivered)
}

func (u *OrderUseCase) advance(ctx context.Context, actor model.Actor, id string, from, to model.OrderStatus, event model.EventType) (*model.Order, error) {
	if err := authorizeStaff(u.policy, actor, ActionManageOrders); err != nil {
		return nil, err
	}
	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != from {
		return nil, domainErrors.ErrInvalidState
	}

	now := u.clock.Now()
	applied, err := u.orders.UpdateStatus(ctx, id, []model.OrderStatus{from}, to, now)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, domainErrors.ErrInvalidState
	}

	order.Status = to
	order.UpdatedAt = now
	u.notifier.Emit(ctx, model.OrderEvent(event, order, now))
	return order, nil
}
