// Package risk detecta rupturas, estoque baixo, picos de taxa, vazamento de
// margem e problemas de qualidade nos pedidos de um workspace.
package risk

import (
	"context"
	"fmt"

	"github.com/vfg2006/workspace-analytics-api/infrastructure/repository"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	"github.com/vfg2006/workspace-analytics-api/pkg/log"
	"github.com/vfg2006/workspace-analytics-api/pkg/utils"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
	MaxHorizon   = 90
	MaxThreshold = 100000

	noteStockout    = "Stockout risk per inventory row. avgDailyUnits is units sold from SkuDailyMetric in the range divided by calendar days; daysLeft = onHand / avgDailyUnits and null when there are no sales."
	noteLowStock    = "Inventory rows with 0 < onHand < threshold. high when onHand is at most half the threshold (rounded up)."
	noteRefundSpike = "Refund rate = refunds linked to orders in range (refund createdAt in range) / order totals. Compared against the previous range."
	noteFeeSpike    = "Fee rate = fees linked to orders in range (fee createdAt in range) / order totals. Compared against the previous range."
	noteMargin      = "marginPct = (revenue - refunds - fees) / revenue using order totals and linked refunds and fees in the range. Drivers show the negative impact of refunds and fees."
	noteOrderIssues = "Data quality checks over orders, order items, fees and refunds. Orders use orderedAt when present, else createdAt; fees and refunds use their own createdAt."
	noteOpsRisk     = "Ops risk combines high severity order issues, stockouts and very low stock."
)

// Detector expõe os detectores de risco sobre os dados de um workspace.
type Detector interface {
	StockoutRisk(ctx context.Context, workspaceID string, rng domain.DateRange, horizonDays, limit *int) (*domain.StockoutRisk, error)
	LowStockRisk(ctx context.Context, workspaceID string, threshold, limit *int) (*domain.LowStockRisk, error)
	RefundSpike(ctx context.Context, workspaceID string, rng domain.DateRange, compareTo *domain.DateRange) (*domain.RateSpikeRisk, error)
	FeeSpike(ctx context.Context, workspaceID string, rng domain.DateRange, compareTo *domain.DateRange) (*domain.RateSpikeRisk, error)
	MarginLeakage(ctx context.Context, workspaceID string, rng domain.DateRange, compareTo *domain.DateRange) (*domain.MarginLeakageRisk, error)
	OrderIssues(ctx context.Context, workspaceID string, rng domain.DateRange, limit *int) (*domain.OrderIssues, error)
	OpsRisk(ctx context.Context, workspaceID string, rng domain.DateRange) (*domain.OpsRisk, error)
}

type Service struct {
	th            Thresholds
	inventoryRepo repository.InventoryRepository
	skuRepo       repository.SkuDailyMetricRepository
	orderRepo     repository.OrderRepository
	ledgerRepo    repository.LedgerRepository
}

func NewService(
	th Thresholds,
	inventoryRepo repository.InventoryRepository,
	skuRepo repository.SkuDailyMetricRepository,
	orderRepo repository.OrderRepository,
	ledgerRepo repository.LedgerRepository,
) *Service {
	return &Service{
		th:            th,
		inventoryRepo: inventoryRepo,
		skuRepo:       skuRepo,
		orderRepo:     orderRepo,
		ledgerRepo:    ledgerRepo,
	}
}

func (s *Service) Thresholds() Thresholds {
	return s.th
}

func (s *Service) StockoutRisk(ctx context.Context, workspaceID string, rng domain.DateRange, horizonDays, limit *int) (*domain.StockoutRisk, error) {
	take := utils.ClampOrDefault(limit, DefaultLimit, 1, MaxLimit)
	horizon := utils.ClampOrDefault(horizonDays, s.th.DefaultHorizonDays, 1, MaxHorizon)

	rows, err := s.inventoryRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar inventário: %w", err)
	}

	productIDs := make([]string, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.ProductID]; ok {
			continue
		}
		seen[r.ProductID] = struct{}{}
		productIDs = append(productIDs, r.ProductID)
	}

	units, err := s.skuRepo.SumUnitsByProduct(ctx, workspaceID, productIDs, rng)
	if err != nil {
		return nil, fmt.Errorf("erro ao somar unidades vendidas: %w", err)
	}

	items := StockoutRisk(rows, units, rng.DaysInclusive(), horizon, s.th)
	if len(items) > take {
		items = items[:take]
	}

	return &domain.StockoutRisk{
		WorkspaceID: workspaceID,
		Range:       rng,
		HorizonDays: horizon,
		Limit:       take,
		Items:       items,
		Note:        noteStockout,
	}, nil
}

func (s *Service) LowStockRisk(ctx context.Context, workspaceID string, threshold, limit *int) (*domain.LowStockRisk, error) {
	take := utils.ClampOrDefault(limit, DefaultLimit, 1, MaxLimit)
	th := utils.ClampOrDefault(threshold, s.th.DefaultLowStockThreshold, 1, MaxThreshold)

	rows, err := s.inventoryRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar inventário: %w", err)
	}

	items := LowStockRisk(rows, th)
	if len(items) > take {
		items = items[:take]
	}

	return &domain.LowStockRisk{
		WorkspaceID: workspaceID,
		Threshold:   th,
		Limit:       take,
		Items:       items,
		Note:        noteLowStock,
	}, nil
}

// PeriodMoney carrega a receita de pedidos do intervalo e as taxas e reembolsos vinculados.
func (s *Service) PeriodMoney(ctx context.Context, workspaceID string, rng domain.DateRange) (PeriodMoney, error) {
	orders, err := s.orderRepo.ListInRange(ctx, workspaceID, rng)
	if err != nil {
		return PeriodMoney{}, fmt.Errorf("erro ao buscar pedidos: %w", err)
	}

	orderIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	fees, err := s.ledgerRepo.ListLinkedToOrders(ctx, domain.LedgerFees, workspaceID, rng, orderIDs)
	if err != nil {
		return PeriodMoney{}, fmt.Errorf("erro ao buscar taxas: %w", err)
	}

	refunds, err := s.ledgerRepo.ListLinkedToOrders(ctx, domain.LedgerRefunds, workspaceID, rng, orderIDs)
	if err != nil {
		return PeriodMoney{}, fmt.Errorf("erro ao buscar reembolsos: %w", err)
	}

	return NewPeriodMoney(orders, fees, refunds), nil
}

// periods carrega os dois intervalos em paralelo. prev fica vazio sem compareTo.
func (s *Service) periods(ctx context.Context, workspaceID string, rng domain.DateRange, compareTo *domain.DateRange) (cur PeriodMoney, prev *PeriodMoney, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cur, err = s.PeriodMoney(gctx, workspaceID, rng)
		return err
	})
	if compareTo != nil {
		g.Go(func() error {
			m, err := s.PeriodMoney(gctx, workspaceID, *compareTo)
			if err != nil {
				return err
			}
			prev = &m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return PeriodMoney{}, nil, err
	}
	return cur, prev, nil
}

func (s *Service) rateSpike(ctx context.Context, kind domain.SpikeKind, workspaceID string, rng domain.DateRange, compareTo *domain.DateRange) (*domain.RateSpikeRisk, error) {
	previousRange := rng.PreviousPeriod()
	if compareTo != nil {
		previousRange = *compareTo
	}

	cur, prev, err := s.periods(ctx, workspaceID, rng, &previousRange)
	if err != nil {
		return nil, err
	}

	out := RateSpike(kind, cur, *prev, s.th)
	out.WorkspaceID = workspaceID
	out.Range = rng
	out.CompareTo = previousRange
	out.Note = noteRefundSpike
	if kind == domain.SpikeFee {
		out.Note = noteFeeSpike
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"workspace_id": workspaceID,
		"kind":         kind,
		"risk":         out.Risk,
	}).Debug("Pico de taxa avaliado")

	return &out, nil
}

// RefundSpike compara a taxa de reembolso com compareTo ou com o período anterior.
func (s *Service) RefundSpike(ctx context.Context, workspaceID string, rng domain.DateRange, compareTo *domain.DateRange) (*domain.RateSpikeRisk, error) {
	return s.rateSpike(ctx, domain.SpikeRefund, workspaceID, rng, compareTo)
}

func (s *Service) FeeSpike(ctx context.Context, workspaceID string, rng domain.DateRange, compareTo *domain.DateRange) (*domain.RateSpikeRisk, error) {
	return s.rateSpike(ctx, domain.SpikeFee, workspaceID, rng, compareTo)
}

// MarginLeakage só calcula o delta quando compareTo é informado.
func (s *Service) MarginLeakage(ctx context.Context, workspaceID string, rng domain.DateRange, compareTo *domain.DateRange) (*domain.MarginLeakageRisk, error) {
	cur, prev, err := s.periods(ctx, workspaceID, rng, compareTo)
	if err != nil {
		return nil, err
	}

	out := MarginLeakage(cur, prev, s.th)
	out.WorkspaceID = workspaceID
	out.Range = rng
	out.CompareTo = compareTo
	out.Note = noteMargin

	return &out, nil
}

func (s *Service) OrderIssues(ctx context.Context, workspaceID string, rng domain.DateRange, limit *int) (*domain.OrderIssues, error) {
	take := utils.ClampOrDefault(limit, DefaultLimit, 1, MaxLimit)
	sampleSize := min(s.th.SampleSize, take)

	var in IssueInput

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		in.Orders, err = s.orderRepo.ListInRange(gctx, workspaceID, rng)
		if err != nil {
			return fmt.Errorf("erro ao buscar pedidos: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		in.Fees, err = s.ledgerRepo.ListCreatedWithin(gctx, domain.LedgerFees, workspaceID, rng)
		if err != nil {
			return fmt.Errorf("erro ao buscar taxas: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		in.Refunds, err = s.ledgerRepo.ListCreatedWithin(gctx, domain.LedgerRefunds, workspaceID, rng)
		if err != nil {
			return fmt.Errorf("erro ao buscar reembolsos: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	issues := OrderIssues(in, sampleSize)
	if len(issues) > take {
		issues = issues[:take]
	}

	return &domain.OrderIssues{
		WorkspaceID: workspaceID,
		Range:       rng,
		Limit:       take,
		Issues:      issues,
		Note:        noteOrderIssues,
	}, nil
}

// OpsRisk roda issues, ruptura e estoque baixo em paralelo com os padrões e combina os sinais.
func (s *Service) OpsRisk(ctx context.Context, workspaceID string, rng domain.DateRange) (*domain.OpsRisk, error) {
	var (
		issues   *domain.OrderIssues
		stockout *domain.StockoutRisk
		lowStock *domain.LowStockRisk
	)

	limit := utils.IntPtr(DefaultLimit)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		issues, err = s.OrderIssues(gctx, workspaceID, rng, limit)
		return err
	})
	g.Go(func() error {
		var err error
		stockout, err = s.StockoutRisk(gctx, workspaceID, rng, nil, limit)
		return err
	})
	g.Go(func() error {
		var err error
		lowStock, err = s.LowStockRisk(gctx, workspaceID, nil, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	severity, signals := CombineOps(*issues, *stockout, *lowStock)

	log.ForContext(ctx).WithFields(log.Fields{
		"workspace_id": workspaceID,
		"risk":         severity,
	}).Debug("Risco operacional combinado")

	return &domain.OpsRisk{
		WorkspaceID: workspaceID,
		Range:       rng,
		Risk:        severity,
		Signals:     signals,
		Note:        noteOpsRisk,
	}, nil
}
