package test

import (
	"context"
	"sync"

	"github.com/polkiloo/dealership/internal/domain/model"
)

// SweeperFacadeStub serves queued batches of expired reservations and
// records expiry calls.
type SweeperFacadeStub struct {
	sync.Mutex
	Batches  [][]model.Reservation
	ListErr  error
	ExpireFn func(ctx context.Context, id string) (*model.Reservation, error)
	Expired  []string
}

// ExpiredReservations pops the next queued batch.
func (s *SweeperFacadeStub) ExpiredReservations(context.Context, int) ([]model.Reservation, error) {
	s.Lock()
	defer s.Unlock()
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	if len(s.Batches) == 0 {
		return nil, nil
	}
	batch := s.Batches[0]
	s.Batches = s.Batches[1:]
	return batch, nil
}

// ExpireReservation records id and delegates to ExpireFn when set.
func (s *SweeperFacadeStub) ExpireReservation(ctx context.Context, id string) (*model.Reservation, error) {
	s.Lock()
	s.Expired = append(s.Expired, id)
	fn := s.ExpireFn
	s.Unlock()
	if fn != nil {
		return fn(ctx, id)
	}
	return &model.Reservation{ID: id, Status: model.ReservationStatusExpired}, nil
}

// ExpiredCount returns how many expiries were requested.
func (s *SweeperFacadeStub) ExpiredCount() int {
	s.Lock()
	defer s.Unlock()
	return len(s.Expired)
}
