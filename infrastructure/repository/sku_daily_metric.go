package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/workspace-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
)

const skuDailyMetricsTable = "sku_daily_metrics"

var skuDailyMetricColumns = []string{
	"sm.workspace_id",
	"sm.product_id",
	"p.sku",
	"sm.day",
	"sm.units_sold",
	"sm.revenue",
	"sm.refunds_amount",
	"sm.fees_amount",
	"sm.avg_price",
	"sm.stock_end",
}

type SkuDailyMetricRepository interface {
	Upsert(ctx context.Context, metric *domain.SkuDailyMetric) error
	ListByRange(ctx context.Context, workspaceID string, rng domain.DateRange) ([]domain.SkuDailyMetric, error)
	ListByProduct(ctx context.Context, workspaceID, productID string, rng domain.DateRange) ([]domain.SkuDailyMetric, error)
	SumUnitsByProduct(ctx context.Context, workspaceID string, productIDs []string, rng domain.DateRange) (map[string]int64, error)
}

type skuDailyMetricRepository struct {
	conn postgres.Queryer
}

func NewSkuDailyMetricRepository(conn postgres.Queryer) SkuDailyMetricRepository {
	return &skuDailyMetricRepository{
		conn: conn,
	}
}

func (r *skuDailyMetricRepository) Upsert(ctx context.Context, metric *domain.SkuDailyMetric) error {
	query := squirrel.StatementBuilder.
		Insert(skuDailyMetricsTable).
		Columns(
			"workspace_id",
			"product_id",
			"day",
			"units_sold",
			"revenue",
			"refunds_amount",
			"fees_amount",
			"avg_price",
			"stock_end",
		).
		Values(
			metric.WorkspaceID,
			metric.ProductID,
			metric.Day.Format("2006-01-02"),
			metric.UnitsSold,
			metric.Revenue,
			metric.RefundsAmount,
			metric.FeesAmount,
			metric.AvgPrice,
			metric.StockEnd,
		).
		Suffix(`
			ON CONFLICT (workspace_id, product_id, day) DO UPDATE SET
				units_sold = EXCLUDED.units_sold,
				revenue = EXCLUDED.revenue,
				refunds_amount = EXCLUDED.refunds_amount,
				fees_amount = EXCLUDED.fees_amount,
				avg_price = EXCLUDED.avg_price,
				stock_end = EXCLUDED.stock_end,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *skuDailyMetricRepository) ListByRange(ctx context.Context, workspaceID string, rng domain.DateRange) ([]domain.SkuDailyMetric, error) {
	return r.list(ctx, squirrel.Eq{"sm.workspace_id": workspaceID}, rng)
}

func (r *skuDailyMetricRepository) ListByProduct(ctx context.Context, workspaceID, productID string, rng domain.DateRange) ([]domain.SkuDailyMetric, error) {
	return r.list(ctx, squirrel.Eq{"sm.workspace_id": workspaceID, "sm.product_id": productID}, rng)
}

func (r *skuDailyMetricRepository) list(ctx context.Context, where squirrel.Eq, rng domain.DateRange) ([]domain.SkuDailyMetric, error) {
	query, args, err := squirrel.
		Select(skuDailyMetricColumns...).
		From(skuDailyMetricsTable + " sm").
		LeftJoin("products p ON p.id = sm.product_id").
		Where(where).
		Where(squirrel.GtOrEq{"sm.day": rng.FromString()}).
		Where(squirrel.Lt{"sm.day": rng.ToExclusive.Format("2006-01-02")}).
		OrderBy("sm.day ASC", "sm.product_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	metrics := make([]domain.SkuDailyMetric, 0)
	if err := r.conn.SelectContext(ctx, &metrics, query, args...); err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return metrics, nil
}

func (r *skuDailyMetricRepository) SumUnitsByProduct(ctx context.Context, workspaceID string, productIDs []string, rng domain.DateRange) (map[string]int64, error) {
	units := make(map[string]int64, len(productIDs))
	if len(productIDs) == 0 {
		return units, nil
	}

	query, args, err := squirrel.
		Select("sm.product_id", "COALESCE(SUM(sm.units_sold), 0) AS units").
		From(skuDailyMetricsTable + " sm").
		Where(squirrel.Eq{"sm.workspace_id": workspaceID, "sm.product_id": productIDs}).
		Where(squirrel.GtOrEq{"sm.day": rng.FromString()}).
		Where(squirrel.Lt{"sm.day": rng.ToExclusive.Format("2006-01-02")}).
		GroupBy("sm.product_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var rows []struct {
		ProductID string `db:"product_id"`
		Units     int64  `db:"units"`
	}
	if err := r.conn.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	for _, row := range rows {
		units[row.ProductID] = row.Units
	}

	return units, nil
}
