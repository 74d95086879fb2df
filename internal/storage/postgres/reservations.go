package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/dealership/internal/domain/errors"
	"github.com/polkiloo/dealership/internal/domain/model"
)

const reservationColumns = `id, vehicle_id, user_id, price, status, created_at, expires_at, updated_at`

func scanReservation(row pgx.Row) (*model.Reservation, error) {
	var r model.Reservation
	if err := row.Scan(&r.ID, &r.VehicleID, &r.UserID, &r.Price, &r.Status, &r.CreatedAt, &r.ExpiresAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *reservationRepository) Create(ctx context.Context, res model.Reservation) error {
	const query = `INSERT INTO reservations (` + reservationColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.storage.conn(ctx).Exec(ctx, query,
		res.ID, res.VehicleID, res.UserID, res.Price, string(res.Status), res.CreatedAt, res.ExpiresAt, res.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyReserved
		}
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

func (r *reservationRepository) Get(ctx context.Context, id string) (*model.Reservation, error) {
	const query = `SELECT ` + reservationColumns + ` FROM reservations WHERE id=$1`
	res, err := scanReservation(r.storage.conn(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	return res, nil
}

// GetActiveByVehicle locks the active reservation row when called inside a transaction.
func (r *reservationRepository) GetActiveByVehicle(ctx context.Context, vehicleID string) (*model.Reservation, error) {
	const query = `SELECT ` + reservationColumns + ` FROM reservations WHERE vehicle_id=$1 AND status='active' FOR UPDATE`
	res, err := scanReservation(r.storage.conn(ctx).QueryRow(ctx, query, vehicleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("get active reservation: %w", err)
	}
	return res, nil
}

func (r *reservationRepository) ListByUser(ctx context.Context, userID int64) ([]model.Reservation, error) {
	const query = `SELECT ` + reservationColumns + ` FROM reservations WHERE user_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *reservationRepository) ListExpired(ctx context.Context, now time.Time, limit int) ([]model.Reservation, error) {
	const query = `SELECT ` + reservationColumns + ` FROM reservations WHERE status='active' AND expires_at <= $1
                   ORDER BY expires_at LIMIT $2`
	return r.list(ctx, query, now, limit)
}

func (r *reservationRepository) list(ctx context.Context, query string, args ...any) ([]model.Reservation, error) {
	rows, err := r.storage.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id string, from []model.ReservationStatus, to model.ReservationStatus, at time.Time) (bool, error) {
	const query = `UPDATE reservations SET status=$2, updated_at=$3 WHERE id=$1 AND status = ANY($4)`
	expected := make([]string, len(from))
	for i, s := range from {
		expected[i] = string(s)
	}
	tag, err := r.storage.conn(ctx).Exec(ctx, query, id, string(to), at, expected)
	if err != nil {
		return false, fmt.Errorf("update reservation status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
