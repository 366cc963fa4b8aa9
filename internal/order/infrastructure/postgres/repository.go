package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/microshop/order-service/internal/order/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

// Save writes the order and every line item in one transaction. Placement is
// append-only, so these are plain inserts; a duplicate order number fails the
// whole transaction. No reader ever observes a partial line-item set.
func (r *Repository) Save(ctx context.Context, o domain.Order) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx, `INSERT INTO orders (order_number, created_at) VALUES ($1,$2)`,
		o.OrderNumber, o.CreatedAt)
	if err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for i, item := range o.Items {
		batch.Queue(`INSERT INTO order_line_items (order_number, line_number, sku_code, quantity, price_cents)
			VALUES ($1,$2,$3,$4,$5)`,
			o.OrderNumber, i, item.SKUCode, item.Quantity, item.PriceCents)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *Repository) GetByNumber(ctx context.Context, orderNumber string) (domain.Order, error) {
	var o domain.Order
	err := r.pool.QueryRow(ctx, `SELECT order_number, created_at FROM orders WHERE order_number=$1`, orderNumber).
		Scan(&o.OrderNumber, &o.CreatedAt)
	if err != nil {
		return domain.Order{}, err
	}

	rows, err := r.pool.Query(ctx, `SELECT sku_code, quantity, price_cents FROM order_line_items
		WHERE order_number=$1 ORDER BY line_number`, orderNumber)
	if err != nil {
		return domain.Order{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderLineItem
		if err := rows.Scan(&item.SKUCode, &item.Quantity, &item.PriceCents); err != nil {
			return domain.Order{}, err
		}
		o.Items = append(o.Items, item)
	}
	return o, rows.Err()
}
