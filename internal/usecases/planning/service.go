// Package planning sintetiza o plano de ação de um workspace a partir dos
// KPIs e dos detectores de risco, e persiste planos em rascunho.
package planning

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/workspace-analytics-api/infrastructure/repository"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/analytics"
	"github.com/vfg2006/workspace-analytics-api/internal/usecases/risk"
	"github.com/vfg2006/workspace-analytics-api/pkg/log"
	"github.com/vfg2006/workspace-analytics-api/pkg/utils"
	"golang.org/x/sync/errgroup"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	planningLimit   = 20
	defaultPageSize = 25
	maxPageSize     = 200
)

// Planner gera saídas de planejamento e gerencia os planos persistidos.
type Planner interface {
	Output(ctx context.Context, workspaceID string, rng domain.DateRange) (*domain.PlanningOutput, error)
	CreatePlan(ctx context.Context, workspaceID string, rng domain.DateRange, title *string) (*domain.Plan, error)
	ListPlans(ctx context.Context, workspaceID string, filter domain.PlanFilter) (*domain.PlanList, error)
	GetPlan(ctx context.Context, workspaceID, id string) (*domain.Plan, error)
}

type Service struct {
	analyzer analytics.Analyzer
	detector risk.Detector
	planRepo repository.PlanRepository
	now      func() time.Time
}

func NewService(analyzer analytics.Analyzer, detector risk.Detector, planRepo repository.PlanRepository) *Service {
	return &Service{
		analyzer: analyzer,
		detector: detector,
		planRepo: planRepo,
		now:      time.Now,
	}
}

// Output roda as sete consultas em paralelo e sintetiza o resultado.
func (s *Service) Output(ctx context.Context, workspaceID string, rng domain.DateRange) (*domain.PlanningOutput, error) {
	compareTo := rng.PreviousPeriod()
	in := Inputs{WorkspaceID: workspaceID, Range: rng, CompareTo: compareTo}
	limit := utils.IntPtr(planningLimit)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		kpi, err := s.analyzer.KPISummary(gctx, workspaceID, rng)
		if err != nil {
			return err
		}
		in.KPI = *kpi
		return nil
	})
	g.Go(func() error {
		ops, err := s.detector.OpsRisk(gctx, workspaceID, rng)
		if err != nil {
			return err
		}
		in.Ops = *ops
		return nil
	})
	g.Go(func() error {
		stockout, err := s.detector.StockoutRisk(gctx, workspaceID, rng, nil, limit)
		if err != nil {
			return err
		}
		in.Stockout = *stockout
		return nil
	})
	g.Go(func() error {
		lowStock, err := s.detector.LowStockRisk(gctx, workspaceID, nil, limit)
		if err != nil {
			return err
		}
		in.LowStock = *lowStock
		return nil
	})
	g.Go(func() error {
		margin, err := s.detector.MarginLeakage(gctx, workspaceID, rng, &compareTo)
		if err != nil {
			return err
		}
		in.Margin = *margin
		return nil
	})
	g.Go(func() error {
		spike, err := s.detector.RefundSpike(gctx, workspaceID, rng, &compareTo)
		if err != nil {
			return err
		}
		in.RefundSpike = *spike
		return nil
	})
	g.Go(func() error {
		spike, err := s.detector.FeeSpike(gctx, workspaceID, rng, &compareTo)
		if err != nil {
			return err
		}
		in.FeeSpike = *spike
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("erro ao montar planejamento: %w", err)
	}

	out := Synthesize(in)
	return &out, nil
}

// CreatePlan gera a saída do intervalo e a grava como rascunho.
func (s *Service) CreatePlan(ctx context.Context, workspaceID string, rng domain.DateRange, title *string) (*domain.Plan, error) {
	out, err := s.Output(ctx, workspaceID, rng)
	if err != nil {
		return nil, err
	}

	result, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar plano: %w", err)
	}

	assumptions, err := json.Marshal(out.Assumptions)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar premissas: %w", err)
	}

	now := s.now().UTC()
	plan := &domain.Plan{
		ID:          utils.NewUUID(),
		WorkspaceID: workspaceID,
		Status:      domain.PlanStatusDraft,
		Title:       title,
		RangeFrom:   rng.From,
		RangeTo:     rng.To(),
		Result:      result,
		Assumptions: assumptions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("erro ao salvar plano: %w", err)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"workspace_id": workspaceID,
		"plan_id":      plan.ID,
	}).Info("Plano criado")

	return plan, nil
}

// ListPlans lista os planos mais recentes primeiro, com paginação.
func (s *Service) ListPlans(ctx context.Context, workspaceID string, filter domain.PlanFilter) (*domain.PlanList, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = defaultPageSize
	}
	filter.PageSize = utils.ClampInt(filter.PageSize, 1, maxPageSize)

	plans, total, err := s.planRepo.List(ctx, workspaceID, filter)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar planos: %w", err)
	}
	if plans == nil {
		plans = []domain.Plan{}
	}

	return &domain.PlanList{
		Items:    plans,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (s *Service) GetPlan(ctx context.Context, workspaceID, id string) (*domain.Plan, error) {
	plan, err := s.planRepo.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar plano: %w", err)
	}
	if plan == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlanNotFound, id)
	}
	return plan, nil
}
