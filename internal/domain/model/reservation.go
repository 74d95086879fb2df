package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReservationStatus describes a hold lifecycle.
type ReservationStatus string

const (
	ReservationStatusActive    ReservationStatus = "active"
	ReservationStatusExpired   ReservationStatus = "expired"
	ReservationStatusConverted ReservationStatus = "converted"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// Terminal reports whether no further transition is expected.
func (s ReservationStatus) Terminal() bool {
	return s != ReservationStatusActive
}

// Reservation is a time-boxed hold on a used vehicle.
type Reservation struct {
	ID        string
	VehicleID string
	UserID    int64
	Price     decimal.Decimal
	Status    ReservationStatus
	CreatedAt time.Time
	ExpiresAt time.Time
	UpdatedAt time.Time
}

// IsExpired reports whether the hold has run out at now.
func (r Reservation) IsExpired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}
