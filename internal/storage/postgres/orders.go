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

const orderColumns = `id, user_id, kind, status, total, deposit, reservation_id, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	if err := row.Scan(&o.ID, &o.UserID, &o.Kind, &o.Status, &o.Total, &o.Deposit, &o.ReservationID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create stores the order with its lines. Callers outside a transaction get one.
func (r *orderRepository) Create(ctx context.Context, order model.Order) error {
	return r.storage.WithinTransaction(ctx, func(ctx context.Context) error {
		conn := r.storage.conn(ctx)
		const insertOrder = `INSERT INTO orders (` + orderColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
		if _, err := conn.Exec(ctx, insertOrder,
			order.ID, order.UserID, string(order.Kind), string(order.Status), order.Total, order.Deposit,
			order.ReservationID, order.CreatedAt, order.UpdatedAt,
		); err != nil {
			if isUniqueViolation(err) {
				return domainErrors.ErrAlreadyExists
			}
			return fmt.Errorf("create order: %w", err)
		}

		const insertLine = `INSERT INTO order_lines (order_id, position, item_id, kind, quantity, unit_price) VALUES ($1, $2, $3, $4, $5, $6)`
		for i, line := range order.Lines {
			if _, err := conn.Exec(ctx, insertLine, order.ID, i, line.ItemID, string(line.Kind), line.Quantity, line.UnitPrice); err != nil {
				return fmt.Errorf("create order line: %w", err)
			}
		}
		return nil
	})
}

func (r *orderRepository) Get(ctx context.Context, id string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.conn(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order.Lines, err = r.lines(ctx, order.ID); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *orderRepository) ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE $1 = '' OR status = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, string(status))
}

func (r *orderRepository) list(ctx context.Context, query string, arg any) ([]model.Order, error) {
	rows, err := r.storage.conn(ctx).Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) lines(ctx context.Context, orderID string) ([]model.OrderLine, error) {
	const query = `SELECT item_id, kind, quantity, unit_price FROM order_lines WHERE order_id=$1 ORDER BY position`
	rows, err := r.storage.conn(ctx).Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []model.OrderLine
	for rows.Next() {
		var line model.OrderLine
		if err := rows.Scan(&line.ItemID, &line.Kind, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, from []model.OrderStatus, to model.OrderStatus, at time.Time) (bool, error) {
	const query = `UPDATE orders SET status=$2, updated_at=$3 WHERE id=$1 AND status = ANY($4)`
	expected := make([]string, len(from))
	for i, s := range from {
		expected[i] = string(s)
	}
	tag, err := r.storage.conn(ctx).Exec(ctx, query, id, string(to), at, expected)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
