package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/workspace-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
)

const plansTable = "plans"

var planColumns = []string{
	"id",
	"workspace_id",
	"status",
	"title",
	"range_from",
	"range_to",
	"result_json",
	"assumptions_json",
	"created_at",
	"updated_at",
}

type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) error
	List(ctx context.Context, workspaceID string, filter domain.PlanFilter) ([]domain.Plan, int64, error)
	GetByID(ctx context.Context, workspaceID, id string) (*domain.Plan, error)
}

type planRepository struct {
	conn postgres.Queryer
}

func NewPlanRepository(conn postgres.Queryer) PlanRepository {
	return &planRepository{
		conn: conn,
	}
}

func (r *planRepository) Create(ctx context.Context, plan *domain.Plan) error {
	query, args, err := squirrel.
		Insert(plansTable).
		Columns(planColumns...).
		Values(
			plan.ID,
			plan.WorkspaceID,
			plan.Status,
			plan.Title,
			plan.RangeFrom.Format("2006-01-02"),
			plan.RangeTo.Format("2006-01-02"),
			[]byte(plan.Result),
			[]byte(plan.Assumptions),
			plan.CreatedAt,
			plan.UpdatedAt,
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

func planFilter(workspaceID string, filter domain.PlanFilter) squirrel.And {
	where := squirrel.And{squirrel.Eq{"workspace_id": workspaceID}}
	if filter.CreatedFrom != nil {
		where = append(where, squirrel.GtOrEq{"created_at": *filter.CreatedFrom})
	}
	if filter.CreatedTo != nil {
		where = append(where, squirrel.Lt{"created_at": *filter.CreatedTo})
	}
	return where
}

// List devolve a página pedida, da mais recente para a mais antiga, e o total filtrado.
func (r *planRepository) List(ctx context.Context, workspaceID string, filter domain.PlanFilter) ([]domain.Plan, int64, error) {
	where := planFilter(workspaceID, filter)

	countSQL, countArgs, err := squirrel.
		Select("COUNT(*)").
		From(plansTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total int64
	if err := r.conn.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	listSQL, listArgs, err := squirrel.
		Select(planColumns...).
		From(plansTable).
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(filter.PageSize)).
		Offset(filter.Offset()).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	plans := make([]domain.Plan, 0)
	if err := r.conn.SelectContext(ctx, &plans, listSQL, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return plans, total, nil
}

func (r *planRepository) GetByID(ctx context.Context, workspaceID, id string) (*domain.Plan, error) {
	query, args, err := squirrel.
		Select(planColumns...).
		From(plansTable).
		Where(squirrel.Eq{"workspace_id": workspaceID, "id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var plan domain.Plan
	if err := r.conn.GetContext(ctx, &plan, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return &plan, nil
}
