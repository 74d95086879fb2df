package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/dealership/internal/domain/model"
)

// Get locks the cart lines when called inside a transaction, so a concurrent
// checkout waits and then sees the lines already consumed.
func (r *cartRepository) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	const query = `SELECT item_id, kind, quantity, unit_price, added_at FROM cart_lines
                   WHERE user_id=$1 ORDER BY added_at, item_id FOR UPDATE`
	rows, err := r.storage.conn(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cart := &model.Cart{UserID: userID}
	for rows.Next() {
		var line model.CartLine
		if err := rows.Scan(&line.ItemID, &line.Kind, &line.Quantity, &line.UnitPrice, &line.AddedAt); err != nil {
			return nil, err
		}
		cart.Lines = append(cart.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddLine merges quantities in a single statement; the WHERE clause on the
// conflict branch rejects merges above maxQuantity without touching the row.
func (r *cartRepository) AddLine(ctx context.Context, userID int64, line model.CartLine, maxQuantity int) (int, bool, error) {
	const query = `INSERT INTO cart_lines (user_id, item_id, kind, quantity, unit_price, added_at)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   ON CONFLICT (user_id, item_id) DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
                   WHERE cart_lines.quantity + EXCLUDED.quantity <= $7
                   RETURNING quantity`
	var quantity int
	err := r.storage.conn(ctx).QueryRow(ctx, query,
		userID, line.ItemID, string(line.Kind), line.Quantity, line.UnitPrice, line.AddedAt, maxQuantity,
	).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("add cart line: %w", err)
	}
	return quantity, true, nil
}

func (r *cartRepository) RemoveLine(ctx context.Context, userID int64, itemID string) error {
	const query = `DELETE FROM cart_lines WHERE user_id=$1 AND item_id=$2`
	if _, err := r.storage.conn(ctx).Exec(ctx, query, userID, itemID); err != nil {
		return fmt.Errorf("remove cart line: %w", err)
	}
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID int64) (int, error) {
	const query = `DELETE FROM cart_lines WHERE user_id=$1`
	tag, err := r.storage.conn(ctx).Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("clear cart: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
