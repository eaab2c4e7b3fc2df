// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/workspace-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
)

const dailyMetricsTable = "daily_metrics"

type DailyMetricRepository interface {
	Upsert(ctx context.Context, metric *domain.DailyMetric) error
	ListByRange(ctx context.Context, workspaceID string, rng domain.DateRange) ([]domain.DailyMetric, error)
}

type dailyMetricRepository struct {
	conn postgres.Queryer
}

func NewDailyMetricRepository(conn postgres.Queryer) DailyMetricRepository {
	return &dailyMetricRepository{
		conn: conn,
	}
}

func (r *dailyMetricRepository) Upsert(ctx context.Context, metric *domain.DailyMetric) error {
	query := squirrel.StatementBuilder.
		Insert(dailyMetricsTable).
		Columns(
			"workspace_id",
			"day",
			"revenue",
			"orders",
			"units",
			"refunds_amount",
			"fees_amount",
			"cogs_amount",
			"gross_margin_amount",
			"gross_margin_percent",
			"stockouts_count",
			"low_stock_count",
		).
		Values(
			metric.WorkspaceID,
			metric.Day.Format("2006-01-02"),
			metric.Revenue,
			metric.Orders,
			metric.Units,
			metric.RefundsAmount,
			metric.FeesAmount,
			metric.CogsAmount,
			metric.GrossMarginAmount,
			metric.GrossMarginPercent,
			metric.StockoutsCount,
			metric.LowStockCount,
		).
		Suffix(`
			ON CONFLICT (workspace_id, day) DO UPDATE SET
				revenue = EXCLUDED.revenue,
				orders = EXCLUDED.orders,
				units = EXCLUDED.units,
				refunds_amount = EXCLUDED.refunds_amount,
				fees_amount = EXCLUDED.fees_amount,
				cogs_amount = EXCLUDED.cogs_amount,
				gross_margin_amount = EXCLUDED.gross_margin_amount,
				gross_margin_percent = EXCLUDED.gross_margin_percent,
				stockouts_count = EXCLUDED.stockouts_count,
				low_stock_count = EXCLUDED.low_stock_count,
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

func (r *dailyMetricRepository) ListByRange(ctx context.Context, workspaceID string, rng domain.DateRange) ([]domain.DailyMetric, error) {
	query, args, err := squirrel.
		Select(
			"dm.workspace_id",
			"dm.day",
			"dm.revenue",
			"dm.orders",
			"dm.units",
			"dm.refunds_amount",
			"dm.fees_amount",
			"dm.cogs_amount",
			"dm.gross_margin_amount",
			"dm.gross_margin_percent",
			"dm.stockouts_count",
			"dm.low_stock_count",
		).
		From(dailyMetricsTable + " dm").
		Where(squirrel.Eq{"dm.workspace_id": workspaceID}).
		Where(squirrel.GtOrEq{"dm.day": rng.FromString()}).
		Where(squirrel.Lt{"dm.day": rng.ToExclusive.Format("2006-01-02")}).
		OrderBy("dm.day ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	metrics := make([]domain.DailyMetric, 0)
	if err := r.conn.SelectContext(ctx, &metrics, query, args...); err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return metrics, nil
}
