package repository

import (
	"context"
	"time"

	"github.com/polkiloo/dealership/internal/domain/model"
)

// ReservationRepository describes persistence operations for vehicle holds.
type ReservationRepository interface {
	// Create stores an active reservation and fails with ErrAlreadyReserved when
	// the vehicle already has one.
	Create(ctx context.Context, r model.Reservation) error
	Get(ctx context.Context, id string) (*model.Reservation, error)
	GetActiveByVehicle(ctx context.Context, vehicleID string) (*model.Reservation, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Reservation, error)
	ListExpired(ctx context.Context, now time.Time, limit int) ([]model.Reservation, error)
	// UpdateStatus applies the transition only when the current status is one of from.
	UpdateStatus(ctx context.Context, id string, from []model.ReservationStatus, to model.ReservationStatus, at time.Time) (bool, error)
}
