package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/workspace-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
)

type ForecastRepository interface {
	Create(ctx context.Context, forecast *domain.Forecast) error
}

type forecastRepository struct {
	conn postgres.Queryer
}

func NewForecastRepository(conn postgres.Queryer) ForecastRepository {
	return &forecastRepository{
		conn: conn,
	}
}

func (r *forecastRepository) Create(ctx context.Context, forecast *domain.Forecast) error {
	query, args, err := squirrel.
		Insert("forecasts").
		Columns(
			"id",
			"workspace_id",
			"product_id",
			"level",
			"method",
			"range_from",
			"range_to",
			"horizon_days",
			"assumptions_json",
			"result_json",
			"created_at",
		).
		Values(
			forecast.ID,
			forecast.WorkspaceID,
			forecast.ProductID,
			string(forecast.Level),
			forecast.Method,
			forecast.RangeFrom.Format("2006-01-02"),
			forecast.RangeTo.Format("2006-01-02"),
			forecast.HorizonDays,
			[]byte(forecast.Assumptions),
			[]byte(forecast.Result),
			forecast.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}
