package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/polkiloo/dealership/internal/clock"
	domainErrors "github.com/polkiloo/dealership/internal/domain/errors"
	"github.com/polkiloo/dealership/internal/domain/model"
	"github.com/polkiloo/dealership/internal/domain/repository"
)

// ReservationUseCase manages time-boxed holds on used vehicles.
type ReservationUseCase struct {
	tx           repository.Transactor
	reservations repository.ReservationRepository
	catalog      *CatalogUseCase
	orders       *OrderUseCase
	policy       Policy
	settings     Settings
	clock        clock.Clock
	notifier     *Notifier
	logger       *slog.Logger
}

// NewReservationUseCase constructs ReservationUseCase.
func NewReservationUseCase(
	tx repository.Transactor,
	reservations repository.ReservationRepository,
	catalog *CatalogUseCase,
	orders *OrderUseCase,
	policy Policy,
	settings Settings,
	clk clock.Clock,
	notifier *Notifier,
	logger *slog.Logger,
) *ReservationUseCase {
	return &ReservationUseCase{
		tx:           tx,
		reservations: reservations,
		catalog:      catalog,
		orders:       orders,
		policy:       policy,
		settings:     settings,
		clock:        clk,
		notifier:     notifier,
		logger:       logger,
	}
}

// Reserve places a hold on a used vehicle for the configured delay. The
// first caller wins; later callers get ErrAlreadyReserved until the hold ends.
func (u *ReservationUseCase) Reserve(ctx context.Context, userID int64, vehicleID string) (*model.Reservation, error) {
	now := u.clock.Now()
	var (
		created model.Reservation
		stale   *model.Reservation
	)

	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		item, err := u.catalog.items.Get(ctx, vehicleID)
		if err != nil {
			return err
		}
		if item.Kind != model.ItemKindUsed {
			return domainErrors.ErrInvalidKind
		}

		existing, err := u.reservations.GetActiveByVehicle(ctx, vehicleID)
		switch {
		case err == nil:
			if !existing.IsExpired(now) {
				return domainErrors.ErrAlreadyReserved
			}
			if err := u.expireLocked(ctx, existing, now); err != nil {
				return err
			}
			stale = existing
		case !errors.Is(err, domainErrors.ErrNotFound):
			return err
		}

		claimed, err := u.catalog.claim(ctx, vehicleID)
		if err != nil {
			return err
		}
		if !claimed {
			return u.unavailableReason(ctx, vehicleID)
		}

		created = model.Reservation{
			ID:        newID(),
			VehicleID: vehicleID,
			UserID:    userID,
			Price:     item.Price,
			Status:    model.ReservationStatusActive,
			CreatedAt: now,
			ExpiresAt: now.Add(u.settings.ReservationDelay),
			UpdatedAt: now,
		}
		return u.reservations.Create(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	u.catalog.invalidate(ctx, vehicleID)
	var events []model.Event
	if stale != nil {
		events = append(events, model.ReservationEvent(model.EventReservationExpired, stale, now))
	}
	events = append(events, model.ReservationEvent(model.EventReservationCreated, &created, now))
	u.notifier.Emit(ctx, events...)
	return &created, nil
}

// unavailableReason tells a reservation race loser apart from a vehicle that
// is simply not for sale.
func (u *ReservationUseCase) unavailableReason(ctx context.Context, vehicleID string) error {
	_, err := u.reservations.GetActiveByVehicle(ctx, vehicleID)
	switch {
	case err == nil:
		return domainErrors.ErrAlreadyReserved
	case errors.Is(err, domainErrors.ErrNotFound):
		return domainErrors.ErrUnavailable
	default:
		return err
	}
}

// Get returns a reservation visible to actor.
func (u *ReservationUseCase) Get(ctx context.Context, actor model.Actor, id string) (*model.Reservation, error) {
	r, err := u.reservations.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(u.policy, actor, ActionViewReservation, r.UserID); err != nil {
		return nil, err
	}
	return r, nil
}

// ListByUser returns reservations of userID, newest first.
func (u *ReservationUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Reservation, error) {
	return u.reservations.ListByUser(ctx, userID)
}

// Cancel releases an active hold owned by actor.
func (u *ReservationUseCase) Cancel(ctx context.Context, actor model.Actor, id string) (*model.Reservation, error) {
	r, err := u.reservations.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(u.policy, actor, ActionCancelReservation, r.UserID); err != nil {
		return nil, err
	}
	if r.Status.Terminal() {
		return nil, domainErrors.ErrAlreadyTerminal
	}

	now := u.clock.Now()
	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		applied, err := u.reservations.UpdateStatus(ctx, id,
			[]model.ReservationStatus{model.ReservationStatusActive},
			model.ReservationStatusCancelled, now)
		if err != nil {
			return err
		}
		if !applied {
			return domainErrors.ErrAlreadyTerminal
		}
		return u.catalog.release(ctx, r.VehicleID)
	})
	if err != nil {
		return nil, err
	}

	r.Status = model.ReservationStatusCancelled
	r.UpdatedAt = now
	u.catalog.invalidate(ctx, r.VehicleID)
	u.notifier.Emit(ctx, model.ReservationEvent(model.EventReservationCancelled, r, now))
	return r, nil
}

// Expire ends an active hold whose deadline has passed. Calling it on a hold
// that is not due or already ended returns the reservation unchanged.
func (u *ReservationUseCase) Expire(ctx context.Context, id string) (*model.Reservation, error) {
	r, err := u.reservations.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := u.clock.Now()
	if r.Status != model.ReservationStatusActive || !r.IsExpired(now) {
		return r, nil
	}

	expired := false
	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.expireLocked(ctx, r, now); err != nil {
			if errors.Is(err, domainErrors.ErrAlreadyTerminal) {
				return nil
			}
			return err
		}
		expired = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !expired {
		return u.reservations.Get(ctx, id)
	}

	u.catalog.invalidate(ctx, r.VehicleID)
	u.notifier.Emit(ctx, model.ReservationEvent(model.EventReservationExpired, r, now))
	return r, nil
}

// expireLocked moves r to expired and releases its vehicle. It must run
// inside a transaction.
func (u *ReservationUseCase) expireLocked(ctx context.Context, r *model.Reservation, now time.Time) error {
	applied, err := u.reservations.UpdateStatus(ctx, r.ID,
		[]model.ReservationStatus{model.ReservationStatusActive},
		model.ReservationStatusExpired, now)
	if err != nil {
		return err
	}
	if !applied {
		return domainErrors.ErrAlreadyTerminal
	}
	if err := u.catalog.release(ctx, r.VehicleID); err != nil {
		return err
	}
	r.Status = model.ReservationStatusExpired
	r.UpdatedAt = now
	return nil
}

// ConvertToOrder turns an active hold into a pending deposit order. The
// vehicle stays unavailable.
func (u *ReservationUseCase) ConvertToOrder(ctx context.Context, actor model.Actor, id string) (*model.Order, error) {
	r, err := u.reservations.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(u.policy, actor, ActionConvertReservation, r.UserID); err != nil {
		return nil, err
	}
	now := u.clock.Now()
	if r.Status != model.ReservationStatusActive || r.IsExpired(now) {
		return nil, domainErrors.ErrAlreadyTerminal
	}

	order, err := u.orders.build(r.UserID, []model.OrderLine{{
		ItemID:    r.VehicleID,
		Kind:      model.ItemKindUsed,
		Quantity:  1,
		UnitPrice: r.Price,
	}}, true, r.ID)
	if err != nil {
		return nil, err
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		applied, err := u.reservations.UpdateStatus(ctx, id,
			[]model.ReservationStatus{model.ReservationStatusActive},
			model.ReservationStatusConverted, now)
		if err != nil {
			return err
		}
		if !applied {
			return domainErrors.ErrAlreadyTerminal
		}
		return u.orders.orders.Create(ctx, *order)
	})
	if err != nil {
		return nil, err
	}

	r.Status = model.ReservationStatusConverted
	r.UpdatedAt = now
	u.notifier.Emit(ctx,
		model.ReservationEvent(model.EventReservationConverted, r, now),
		model.OrderEvent(model.EventOrderCreated, order, now),
	)
	return order, nil
}

// Expired lists active holds past their deadline.
func (u *ReservationUseCase) Expired(ctx context.Context, limit int) ([]model.Reservation, error) {
	return u.reservations.ListExpired(ctx, u.clock.Now(), limit)
}

// Sweep expires up to limit overdue holds and returns how many ended.
func (u *ReservationUseCase) Sweep(ctx context.Context, limit int) (int, error) {
	due, err := u.Expired(ctx, limit)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, r := range due {
		expired, err := u.Expire(ctx, r.ID)
		if err != nil {
			u.logger.Error("expire reservation failed", slog.String("reservation", r.ID), slog.String("error", err.Error()))
			continue
		}
		if expired.Status == model.ReservationStatusExpired {
			count++
		}
	}
	return count, nil
}

// SweepAs runs Sweep on behalf of staff.
func (u *ReservationUseCase) SweepAs(ctx context.Context, actor model.Actor, limit int) (int, error) {
	if err := authorizeStaff(u.policy, actor, ActionSweepReservations); err != nil {
		return 0, err
	}
	return u.Sweep(ctx, limit)
}
