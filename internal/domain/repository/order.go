package repository

import (
	"context"
	"time"

	"github.com/polkiloo/dealership/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order model.Order) error
	Get(ctx context.Context, id string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	// UpdateStatus applies the transition only when the current status is one of from.
	UpdateStatus(ctx context.Context, id string, from []model.OrderStatus, to model.OrderStatus, at time.Time) (bool, error)
}
