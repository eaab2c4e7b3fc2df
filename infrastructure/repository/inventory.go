package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/workspace-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
)

const inventoryTable = "inventory i"

type InventoryRepository interface {
	ListByWorkspace(ctx context.Context, workspaceID string) ([]domain.InventoryRow, error)
	CountAtOrBelow(ctx context.Context, workspaceID string, onHand int64) (int64, error)
	SumOnHandByProduct(ctx context.Context, workspaceID string, productIDs []string) (map[string]int64, error)
}

type inventoryRepository struct {
	conn postgres.Queryer
}

func NewInventoryRepository(conn postgres.Queryer) InventoryRepository {
	return &inventoryRepository{
		conn: conn,
	}
}

func (r *inventoryRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]domain.InventoryRow, error) {
	query, args, err := squirrel.
		Select(
			"i.product_id",
			"i.location_id",
			"p.sku",
			"l.code AS location_code",
			"i.on_hand",
			"i.updated_at",
		).
		From(inventoryTable).
		Join("products p ON p.id = i.product_id").
		Join("locations l ON l.id = i.location_id").
		Where(squirrel.Eq{"i.workspace_id": workspaceID}).
		OrderBy("p.sku ASC", "l.code ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows := make([]domain.InventoryRow, 0)
	if err := r.conn.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return rows, nil
}

// CountAtOrBelow conta as linhas de estoque com saldo menor ou igual a onHand.
func (r *inventoryRepository) CountAtOrBelow(ctx context.Context, workspaceID string, onHand int64) (int64, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(inventoryTable).
		Where(squirrel.Eq{"i.workspace_id": workspaceID}).
		Where(squirrel.LtOrEq{"i.on_hand": onHand}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int64
	if err := r.conn.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return count, nil
}

func (r *inventoryRepository) SumOnHandByProduct(ctx context.Context, workspaceID string, productIDs []string) (map[string]int64, error) {
	totals := make(map[string]int64, len(productIDs))
	if len(productIDs) == 0 {
		return totals, nil
	}

	query, args, err := squirrel.
		Select("i.product_id", "COALESCE(SUM(i.on_hand), 0) AS on_hand").
		From(inventoryTable).
		Where(squirrel.Eq{"i.workspace_id": workspaceID, "i.product_id": productIDs}).
		GroupBy("i.product_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var rows []struct {
		ProductID string `db:"product_id"`
		OnHand    int64  `db:"on_hand"`
	}
	if err := r.conn.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	for _, row := range rows {
		totals[row.ProductID] = row.OnHand
	}

	return totals, nil
}
