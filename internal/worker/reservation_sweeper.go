package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/dealership/internal/domain/model"
)

// ReservationFacade exposes the subset of application functionality required by the sweeper.
type ReservationFacade interface {
	ExpiredReservations(ctx context.Context, limit int) ([]model.Reservation, error)
	ExpireReservation(ctx context.Context, id string) (*model.Reservation, error)
}

// ReservationSweeper periodically expires overdue reservations with a pool of workers.
type ReservationSweeper struct {
	facade    ReservationFacade
	interval  time.Duration
	batchSize int
	workers   int
	logger    *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReservationSweeper constructs the sweeper worker pool.
func NewReservationSweeper(facade ReservationFacade, interval time.Duration, batchSize, workers int, logger *slog.Logger) *ReservationSweeper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &ReservationSweeper{
		facade:    facade,
		interval:  interval,
		batchSize: batchSize,
		workers:   workers,
		logger:    logger,
	}
}

// Start launches background sweeping. Starting a running sweeper is a no-op;
// a stopped sweeper can be started again.
func (s *ReservationSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	jobs := make(chan model.Reservation, s.batchSize*s.workers)

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx, jobs)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx, jobs)
}

// Stop waits for all workers to finish.
func (s *ReservationSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *ReservationSweeper) dispatch(ctx context.Context, jobs chan<- model.Reservation) {
	defer s.wg.Done()
	defer close(jobs)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fetchAndDispatch(ctx, jobs)
		}
	}
}

func (s *ReservationSweeper) fetchAndDispatch(ctx context.Context, jobs chan<- model.Reservation) {
	due, err := s.facade.ExpiredReservations(ctx, s.batchSize)
	if err != nil {
		s.logger.Error("fetch expired reservations failed", slog.String("error", err.Error()))
		return
	}
	for _, r := range due {
		select {
		case <-ctx.Done():
			return
		case jobs <- r:
		}
	}
}

func (s *ReservationSweeper) worker(ctx context.Context, jobs <-chan model.Reservation) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case r, ok := <-jobs:
			if !ok {
				return
			}
			s.expire(ctx, r)
		}
	}
}

func (s *ReservationSweeper) expire(ctx context.Context, r model.Reservation) {
	result, err := s.facade.ExpireReservation(ctx, r.ID)
	if err != nil {
		s.logger.Error("expire reservation failed", slog.String("reservation", r.ID), slog.String("error", err.Error()))
		return
	}
	if result.Status == model.ReservationStatusExpired {
		s.logger.Info("reservation expired",
			slog.String("reservation", r.ID),
			slog.String("vehicle", r.VehicleID),
		)
	}
}
