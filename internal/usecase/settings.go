package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/dealership/internal/config"
)

// Settings carries the business constants injected from configuration.
type Settings struct {
	ReservationDelay time.Duration
	DepositAmount    decimal.Decimal
}

// NewSettings extracts business settings from application configuration.
func NewSettings(cfg *config.Config) Settings {
	return Settings{
		ReservationDelay: cfg.ReservationDelay,
		DepositAmount:    cfg.DepositAmount,
	}
}
