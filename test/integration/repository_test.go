package integration

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/microshop/order-service/internal/order/domain"
	orderpg "github.com/microshop/order-service/internal/order/infrastructure/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
	order_number TEXT PRIMARY KEY,
	created_at   TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS order_line_items (
	order_number TEXT NOT NULL REFERENCES orders(order_number),
	line_number  INT  NOT NULL,
	sku_code     TEXT NOT NULL,
	quantity     INT  NOT NULL,
	price_cents  BIGINT NOT NULL,
	PRIMARY KEY (order_number, line_number)
);`

func TestRepository_SaveAndReadBack(t *testing.T) {
	if os.Getenv("INTEGRATION") == "" {
		t.Skip("set INTEGRATION=1 to run container-backed tests")
	}

	ctx := context.Background()
	env, err := Setup(ctx)
	if err != nil {
		t.Fatalf("test env: %v", err)
	}
	defer env.Teardown(ctx)

	pool, err := pgxpool.New(ctx, env.PGURL)
	if err != nil {
		t.Fatal(err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := orderpg.NewRepository(log, pool)

	order := domain.NewOrder("ord-int-1", []domain.OrderLineItem{
		{SKUCode: "A1", Quantity: 2, PriceCents: 999},
		{SKUCode: "A1", Quantity: 1, PriceCents: 999},
		{SKUCode: "B2", Quantity: 4, PriceCents: 300},
	})
	if err := repo.Save(ctx, order); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.GetByNumber(ctx, "ord-int-1")
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got.OrderNumber != order.OrderNumber {
		t.Errorf("order number %q, want %q", got.OrderNumber, order.OrderNumber)
	}
	if len(got.Items) != 3 {
		t.Fatalf("expected all 3 line items (duplicates unmerged), got %d", len(got.Items))
	}
	for i, item := range got.Items {
		if item != order.Items[i] {
			t.Errorf("item %d = %+v, want %+v", i, item, order.Items[i])
		}
	}

	// Placement is append-only: reusing an order number must fail whole.
	if err := repo.Save(ctx, order); err == nil {
		t.Error("expected duplicate order number to be rejected")
	}
}
