// Package seed grava um workspace de demonstração com dados suficientes para
// exercitar os KPIs e todos os detectores de risco.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	DemoWorkspaceID = "11111111-1111-1111-1111-111111111111"
	DemoOwnerID     = "demo-user-1"
	DemoViewerID    = "viewer-user-1"
)

// Options define o workspace e o dia dos pedidos de demonstração
type Options struct {
	WorkspaceID string
	Day         time.Time
}

// Transactor executa fn dentro de uma transação
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(*sqlx.Tx) error) error
}

type Result struct {
	WorkspaceID string
	Day         time.Time
	Statements  int
}

// Run aplica o seed em uma única transação. Repetir converge para o mesmo estado.
func Run(ctx context.Context, conn Transactor, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	stmts := Statements(opts)

	err := conn.RunInTransaction(ctx, func(tx *sqlx.Tx) error {
		for i, stmt := range stmts {
			query, args, err := stmt.ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir a query %d: %w", i, err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("erro ao executar a query %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"workspace_id": opts.WorkspaceID,
		"day":          opts.Day.Format(time.DateOnly),
		"statements":   len(stmts),
	}).Info("Seed aplicado")

	return &Result{WorkspaceID: opts.WorkspaceID, Day: opts.Day, Statements: len(stmts)}, nil
}

func (o Options) withDefaults() Options {
	if o.WorkspaceID == "" {
		o.WorkspaceID = DemoWorkspaceID
	}
	if o.Day.IsZero() {
		o.Day = time.Now().UTC()
	}
	u := o.Day.UTC()
	o.Day = time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return o
}

// Statements monta os upserts do seed na ordem exigida pelas chaves estrangeiras:
// MAIN com SKU-TEST-001 zerado (ruptura), RET com SKU-TEST-002 em 5 (estoque baixo),
// um pedido com dois itens em locais diferentes, uma taxa e um reembolso.
func Statements(opts Options) []squirrel.Sqlizer {
	opts = opts.withDefaults()
	ws := opts.WorkspaceID
	id := func(suffix string) string { return ws + "-" + suffix }

	orderedAt := opts.Day.Add(10 * time.Hour)
	unitA, qtyA := decimal.NewFromInt(50), int64(2)
	unitB, qtyB := decimal.RequireFromString("23.45"), int64(1)
	lineA := unitA.Mul(decimal.NewFromInt(qtyA))
	lineB := unitB.Mul(decimal.NewFromInt(qtyB))
	total := lineA.Add(lineB)

	return []squirrel.Sqlizer{
		upsert("workspaces", []string{"id", "name"}, []any{ws, "Demo Workspace"},
			"(id) DO UPDATE SET name = EXCLUDED.name"),
		upsert("workspace_members", []string{"workspace_id", "user_id", "role"}, []any{ws, DemoOwnerID, "OWNER"},
			"(workspace_id, user_id) DO UPDATE SET role = EXCLUDED.role"),
		upsert("workspace_members", []string{"workspace_id", "user_id", "role"}, []any{ws, DemoViewerID, "VIEWER"},
			"(workspace_id, user_id) DO UPDATE SET role = EXCLUDED.role"),
		upsert("locations", []string{"id", "workspace_id", "code", "name"}, []any{id("loc-main"), ws, "MAIN", "Main Warehouse"},
			"(workspace_id, code) DO UPDATE SET name = EXCLUDED.name"),
		upsert("locations", []string{"id", "workspace_id", "code", "name"}, []any{id("loc-ret"), ws, "RET", "Retail"},
			"(workspace_id, code) DO UPDATE SET name = EXCLUDED.name"),
		upsert("products", []string{"id", "workspace_id", "sku", "name"}, []any{id("prod-001"), ws, "SKU-TEST-001", "Test Product 001"},
			"(workspace_id, sku) DO UPDATE SET name = EXCLUDED.name"),
		upsert("products", []string{"id", "workspace_id", "sku", "name"}, []any{id("prod-002"), ws, "SKU-TEST-002", "Test Product 002"},
			"(workspace_id, sku) DO UPDATE SET name = EXCLUDED.name"),
		upsert("inventory", []string{"workspace_id", "product_id", "location_id", "on_hand"}, []any{ws, id("prod-001"), id("loc-main"), 0},
			"(product_id, location_id) DO UPDATE SET on_hand = EXCLUDED.on_hand, updated_at = NOW()"),
		upsert("inventory", []string{"workspace_id", "product_id", "location_id", "on_hand"}, []any{ws, id("prod-002"), id("loc-ret"), 5},
			"(product_id, location_id) DO UPDATE SET on_hand = EXCLUDED.on_hand, updated_at = NOW()"),
		upsert("orders",
			[]string{"id", "workspace_id", "channel", "status", "currency", "subtotal", "tax", "shipping", "total", "ordered_at", "created_at"},
			[]any{id("order-1001"), ws, "shopify", "paid", "USD", total, decimal.Zero, decimal.Zero, total, orderedAt, orderedAt},
			"(id) DO UPDATE SET total = EXCLUDED.total, subtotal = EXCLUDED.subtotal, ordered_at = EXCLUDED.ordered_at, created_at = EXCLUDED.created_at"),
		upsert("order_items",
			[]string{"id", "order_id", "product_id", "location_id", "quantity", "unit_price", "total"},
			[]any{id("order-1001-line-1"), id("order-1001"), id("prod-001"), id("loc-main"), qtyA, unitA, lineA},
			"(id) DO UPDATE SET quantity = EXCLUDED.quantity, unit_price = EXCLUDED.unit_price, total = EXCLUDED.total"),
		upsert("order_items",
			[]string{"id", "order_id", "product_id", "location_id", "quantity", "unit_price", "total"},
			[]any{id("order-1001-line-2"), id("order-1001"), id("prod-002"), id("loc-ret"), qtyB, unitB, lineB},
			"(id) DO UPDATE SET quantity = EXCLUDED.quantity, unit_price = EXCLUDED.unit_price, total = EXCLUDED.total"),
		upsert("fees", []string{"id", "workspace_id", "order_id", "amount", "currency", "created_at"},
			[]any{id("fee-001"), ws, id("order-1001"), decimal.RequireFromString("3.21"), "USD", orderedAt},
			"(id) DO UPDATE SET amount = EXCLUDED.amount, created_at = EXCLUDED.created_at"),
		upsert("refunds", []string{"id", "workspace_id", "order_id", "amount", "currency", "created_at"},
			[]any{id("refund-001"), ws, id("order-1001"), decimal.NewFromInt(10), "USD", orderedAt},
			"(id) DO UPDATE SET amount = EXCLUDED.amount, created_at = EXCLUDED.created_at"),
	}
}

func upsert(table string, columns []string, values []any, onConflict string) squirrel.Sqlizer {
	return squirrel.
		Insert(table).
		Columns(columns...).
		Values(values...).
		Suffix("ON CONFLICT " + onConflict).
		PlaceholderFormat(squirrel.Dollar)
}
