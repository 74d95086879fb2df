package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReserveRequest places a hold on a used vehicle.
type ReserveRequest struct {
	VehicleID string `json:"vehicle_id"`
}

// ReservationResponse describes a hold.
type ReservationResponse struct {
	ID        string          `json:"id"`
	VehicleID string          `json:"vehicle_id"`
	Price     decimal.Decimal `json:"price"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// SweepResponse reports how many holds were expired.
type SweepResponse struct {
	Expired int `json:"expired"`
}
