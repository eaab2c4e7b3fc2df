package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/workspace-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
)

const (
	ordersTable     = "orders o"
	orderItemsTable = "order_items oi"
)

var orderColumns = []string{
	"o.id",
	"o.workspace_id",
	"o.channel",
	"o.status",
	"o.currency",
	"o.subtotal",
	"o.tax",
	"o.shipping",
	"o.total",
	"o.ordered_at",
	"o.created_at",
	"(SELECT COUNT(*) FROM order_items c WHERE c.order_id = o.id) AS item_count",
}

type OrderRepository interface {
	// ListOrderedWithin filtra somente por orderedAt; pedidos sem orderedAt ficam de fora.
	ListOrderedWithin(ctx context.Context, workspaceID string, rng domain.DateRange) ([]domain.Order, error)
	// ListInRange usa orderedAt quando presente e createdAt caso contrário.
	ListInRange(ctx context.Context, workspaceID string, rng domain.DateRange) ([]domain.Order, error)
	ListItems(ctx context.Context, orderIDs []string) ([]domain.OrderItem, error)
}

type orderRepository struct {
	conn postgres.Queryer
}

func NewOrderRepository(conn postgres.Queryer) OrderRepository {
	return &orderRepository{
		conn: conn,
	}
}

func (r *orderRepository) ListOrderedWithin(ctx context.Context, workspaceID string, rng domain.DateRange) ([]domain.Order, error) {
	return r.list(ctx, workspaceID, squirrel.And{
		squirrel.GtOrEq{"o.ordered_at": rng.From},
		squirrel.Lt{"o.ordered_at": rng.ToExclusive},
	})
}

func (r *orderRepository) ListInRange(ctx context.Context, workspaceID string, rng domain.DateRange) ([]domain.Order, error) {
	return r.list(ctx, workspaceID, squirrel.Or{
		squirrel.And{
			squirrel.GtOrEq{"o.ordered_at": rng.From},
			squirrel.Lt{"o.ordered_at": rng.ToExclusive},
		},
		squirrel.And{
			squirrel.Eq{"o.ordered_at": nil},
			squirrel.GtOrEq{"o.created_at": rng.From},
			squirrel.Lt{"o.created_at": rng.ToExclusive},
		},
	})
}

func (r *orderRepository) list(ctx context.Context, workspaceID string, window squirrel.Sqlizer) ([]domain.Order, error) {
	query, args, err := squirrel.
		Select(orderColumns...).
		From(ordersTable).
		Where(squirrel.Eq{"o.workspace_id": workspaceID}).
		Where(window).
		OrderBy("o.created_at DESC", "o.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	orders := make([]domain.Order, 0)
	if err := r.conn.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) ListItems(ctx context.Context, orderIDs []string) ([]domain.OrderItem, error) {
	items := make([]domain.OrderItem, 0)
	if len(orderIDs) == 0 {
		return items, nil
	}

	query, args, err := squirrel.
		Select(
			"oi.id",
			"oi.order_id",
			"oi.product_id",
			"l.code AS location_code",
			"oi.quantity",
			"oi.unit_price",
			"oi.total",
		).
		From(orderItemsTable).
		LeftJoin("locations l ON l.id = oi.location_id").
		Where(squirrel.Eq{"oi.order_id": orderIDs}).
		OrderBy("oi.order_id ASC", "oi.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return items, nil
}
