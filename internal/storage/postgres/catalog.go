package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/dealership/internal/domain/errors"
	"github.com/polkiloo/dealership/internal/domain/model"
)

func (r *catalogRepository) Get(ctx context.Context, id string) (*model.CatalogItem, error) {
	const query = `SELECT id, kind, name, price, available, updated_at FROM catalog_items WHERE id=$1`
	var item model.CatalogItem
	err := r.storage.conn(ctx).QueryRow(ctx, query, id).
		Scan(&item.ID, &item.Kind, &item.Name, &item.Price, &item.Available, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("get catalog item: %w", err)
	}
	return &item, nil
}

func (r *catalogRepository) List(ctx context.Context, kind model.ItemKind) ([]model.CatalogItem, error) {
	const query = `SELECT id, kind, name, price, available, updated_at FROM catalog_items
                   WHERE $1 = '' OR kind = $1 ORDER BY kind, name`
	rows, err := r.storage.conn(ctx).Query(ctx, query, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.CatalogItem
	for rows.Next() {
		var item model.CatalogItem
		if err := rows.Scan(&item.ID, &item.Kind, &item.Name, &item.Price, &item.Available, &item.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *catalogRepository) Upsert(ctx context.Context, item model.CatalogItem) error {
	const query = `INSERT INTO catalog_items (id, kind, name, price, available, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   ON CONFLICT (id) DO UPDATE SET kind = EXCLUDED.kind, name = EXCLUDED.name,
                   price = EXCLUDED.price, available = EXCLUDED.available, updated_at = EXCLUDED.updated_at`
	_, err := r.storage.conn(ctx).Exec(ctx, query, item.ID, string(item.Kind), item.Name, item.Price, item.Available, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert catalog item: %w", err)
	}
	return nil
}

func (r *catalogRepository) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error {
	const query = `UPDATE catalog_items SET price=$2, updated_at=NOW() WHERE id=$1`
	tag, err := r.storage.conn(ctx).Exec(ctx, query, id, price)
	if err != nil {
		return fmt.Errorf("update price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *catalogRepository) SetAvailability(ctx context.Context, id string, available bool) (bool, error) {
	const query = `UPDATE catalog_items SET available=$2, updated_at=NOW() WHERE id=$1 AND available <> $2`
	tag, err := r.storage.conn(ctx).Exec(ctx, query, id, available)
	if err != nil {
		return false, fmt.Errorf("set availability: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
