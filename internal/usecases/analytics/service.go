// Package analytics calcula KPIs, séries, quebras por dimensão e top movers a
// partir dos rollups e das tabelas transacionais.
package analytics

import (
	"context"
	"fmt"

	"github.com/vfg2006/workspace-analytics-api/infrastructure/repository"
	"github.com/vfg2006/workspace-analytics-api/internal/config"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	"github.com/vfg2006/workspace-analytics-api/pkg/log"
	"github.com/vfg2006/workspace-analytics-api/pkg/utils"
	"golang.org/x/sync/errgroup"
)

const (
	noteKPISummary   = "Computed from DailyMetric rows of the workspace over the inclusive date range. Ratios use safe division and are null when the denominator is zero. grossMarginPercent is on a 0-100 scale."
	noteKPIDeltas    = "Deltas between two ranges computed from DailyMetric totals. delta is current minus previous; deltaPct is delta / previous and null when previous is zero."
	noteTrends       = "One point per stored DailyMetric day in the inclusive date range. Days without a stored row are not filled."
	noteSkuBreakdown = "SKU breakdown from SkuDailyMetric aggregated over the inclusive date range. avgPrice is the mean of the daily average prices; stockEnd is the latest stored value."
	noteChannel      = "Channel breakdown from orders, order items, fees and refunds. Revenue uses the order total. Fees and refunds are linked by order id and filtered by their own createdAt in range."
	notePlatform     = "Platform breakdown derived from the order channel (platform is an alias of channel). Revenue uses the order total. Fees and refunds are linked by order id and filtered by their own createdAt in range."
	noteLocation     = "Location breakdown from order item locations. Orders spanning several locations have revenue, fees and refunds split by units per location; orders without units go to UNKNOWN."
	noteMovers       = "Top movers by SKU from SkuDailyMetric aggregated over the inclusive date range, sorted by value."
	noteMoversDelta  = "Top movers by SKU from SkuDailyMetric over both ranges, sorted by delta. SKUs missing from one range count as zero; deltaPct is null when the previous value is zero."
)

// Analyzer expõe as consultas de leitura sobre os rollups.
type Analyzer interface {
	KPISummary(ctx context.Context, workspaceID string, rng domain.DateRange) (*domain.KPISummary, error)
	KPIDeltas(ctx context.Context, workspaceID string, rng domain.DateRange, compareTo *domain.DateRange) (*domain.KPIDeltas, error)
	Trends(ctx context.Context, workspaceID string, rng domain.DateRange, keys []string) (*domain.Trends, error)
	DailyMetrics(ctx context.Context, workspaceID string, rng domain.DateRange) (*domain.DailyMetrics, error)
	Breakdown(ctx context.Context, workspaceID string, rng domain.DateRange, dimension domain.Dimension, limit *int) (*domain.Breakdown, error)
	TopMovers(ctx context.Context, workspaceID string, query domain.TopMoversQuery) (*domain.TopMovers, error)
}

type Service struct {
	cfg        config.Analytics
	dailyRepo  repository.DailyMetricRepository
	skuRepo    repository.SkuDailyMetricRepository
	orderRepo  repository.OrderRepository
	ledgerRepo repository.LedgerRepository
}

func NewService(
	cfg config.Analytics,
	dailyRepo repository.DailyMetricRepository,
	skuRepo repository.SkuDailyMetricRepository,
	orderRepo repository.OrderRepository,
	ledgerRepo repository.LedgerRepository,
) *Service {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 25
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 200
	}

	return &Service{
		cfg:        cfg,
		dailyRepo:  dailyRepo,
		skuRepo:    skuRepo,
		orderRepo:  orderRepo,
		ledgerRepo: ledgerRepo,
	}
}

func (s *Service) limit(v *int) int {
	return utils.ClampOrDefault(v, s.cfg.DefaultLimit, 1, s.cfg.MaxLimit)
}

// Totals carrega os rollups do intervalo e devolve os totais.
func (s *Service) Totals(ctx context.Context, workspaceID string, rng domain.DateRange) (domain.KPITotals, error) {
	rows, err := s.dailyRepo.ListByRange(ctx, workspaceID, rng)
	if err != nil {
		return domain.KPITotals{}, fmt.Errorf("erro ao buscar rollups diários: %w", err)
	}
	return ComputeTotals(rows), nil
}

func (s *Service) KPISummary(ctx context.Context, workspaceID string, rng domain.DateRange) (*domain.KPISummary, error) {
	totals, err := s.Totals(ctx, workspaceID, rng)
	if err != nil {
		return nil, err
	}

	return &domain.KPISummary{
		WorkspaceID: workspaceID,
		Range:       rng,
		Totals:      totals,
		Note:        noteKPISummary,
	}, nil
}

// KPIDeltas compara o intervalo com compareTo, ou com o período anterior de mesmo tamanho.
func (s *Service) KPIDeltas(ctx context.Context, workspaceID string, rng domain.DateRange, compareTo *domain.DateRange) (*domain.KPIDeltas, error) {
	previousRange := rng.PreviousPeriod()
	if compareTo != nil {
		previousRange = *compareTo
	}

	var current, previous domain.KPITotals

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.Totals(gctx, workspaceID, rng)
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = s.Totals(gctx, workspaceID, previousRange)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.KPIDeltas{
		WorkspaceID: workspaceID,
		Range:       rng,
		CompareTo:   previousRange,
		Current:     current,
		Previous:    previous,
		Deltas:      ComputeDeltas(current, previous),
		Note:        noteKPIDeltas,
	}, nil
}

func (s *Service) Trends(ctx context.Context, workspaceID string, rng domain.DateRange, keys []string) (*domain.Trends, error) {
	rows, err := s.dailyRepo.ListByRange(ctx, workspaceID, rng)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar rollups diários: %w", err)
	}

	metricKeys := domain.CleanMetricKeys(keys)

	return &domain.Trends{
		WorkspaceID: workspaceID,
		Range:       rng,
		Metrics:     metricKeys,
		Points:      BuildTrends(rows, metricKeys),
		Note:        noteTrends,
	}, nil
}

func (s *Service) DailyMetrics(ctx context.Context, workspaceID string, rng domain.DateRange) (*domain.DailyMetrics, error) {
	rows, err := s.dailyRepo.ListByRange(ctx, workspaceID, rng)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar rollups diários: %w", err)
	}

	items := make([]domain.DailyMetricItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, domain.NewDailyMetricItem(r))
	}

	return &domain.DailyMetrics{
		WorkspaceID: workspaceID,
		Range:       rng,
		Total:       len(items),
		Items:       items,
	}, nil
}

// OrdersWithLedger carrega os pedidos do intervalo, seus itens e os lançamentos vinculados.
func (s *Service) OrdersWithLedger(ctx context.Context, workspaceID string, rng domain.DateRange) ([]domain.Order, []domain.OrderItem, OrderLedger, error) {
	orders, err := s.orderRepo.ListInRange(ctx, workspaceID, rng)
	if err != nil {
		return nil, nil, OrderLedger{}, fmt.Errorf("erro ao buscar pedidos: %w", err)
	}

	orderIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	items, err := s.orderRepo.ListItems(ctx, orderIDs)
	if err != nil {
		return nil, nil, OrderLedger{}, fmt.Errorf("erro ao buscar itens: %w", err)
	}

	fees, err := s.ledgerRepo.ListLinkedToOrders(ctx, domain.LedgerFees, workspaceID, rng, orderIDs)
	if err != nil {
		return nil, nil, OrderLedger{}, fmt.Errorf("erro ao buscar taxas: %w", err)
	}

	refunds, err := s.ledgerRepo.ListLinkedToOrders(ctx, domain.LedgerRefunds, workspaceID, rng, orderIDs)
	if err != nil {
		return nil, nil, OrderLedger{}, fmt.Errorf("erro ao buscar reembolsos: %w", err)
	}

	return orders, items, NewOrderLedger(fees, refunds), nil
}

func (s *Service) Breakdown(ctx context.Context, workspaceID string, rng domain.DateRange, dimension domain.Dimension, limit *int) (*domain.Breakdown, error) {
	take := s.limit(limit)

	var (
		rows []domain.BreakdownRow
		note string
	)

	switch dimension {
	case domain.DimensionSKU:
		skuRows, err := s.skuRepo.ListByRange(ctx, workspaceID, rng)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar rollups por SKU: %w", err)
		}
		rows, note = SkuBreakdown(skuRows), noteSkuBreakdown

	case domain.DimensionChannel, domain.DimensionPlatform:
		orders, items, ledger, err := s.OrdersWithLedger(ctx, workspaceID, rng)
		if err != nil {
			return nil, err
		}
		rows, note = ChannelBreakdown(orders, items, ledger), noteChannel
		if dimension == domain.DimensionPlatform {
			note = notePlatform
		}

	case domain.DimensionLocation:
		orders, items, ledger, err := s.OrdersWithLedger(ctx, workspaceID, rng)
		if err != nil {
			return nil, err
		}
		rows, note = LocationBreakdown(orders, items, ledger), noteLocation

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDimension, dimension)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"workspace_id": workspaceID,
		"dimension":    dimension,
		"groups":       len(rows),
	}).Debug("Breakdown calculado")

	return &domain.Breakdown{
		WorkspaceID: workspaceID,
		Range:       rng,
		Dimension:   dimension,
		Limit:       take,
		Rows:        SortAndLimit(rows, take),
		Note:        note,
	}, nil
}

func (s *Service) TopMovers(ctx context.Context, workspaceID string, query domain.TopMoversQuery) (*domain.TopMovers, error) {
	take := s.limit(query.Limit)

	var current, previous []domain.SkuDailyMetric

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.skuRepo.ListByRange(gctx, workspaceID, query.Range)
		return err
	})
	if query.CompareTo != nil {
		g.Go(func() error {
			var err error
			previous, err = s.skuRepo.ListByRange(gctx, workspaceID, *query.CompareTo)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("erro ao buscar rollups por SKU: %w", err)
	}

	ranking, note := NewSinglePeriod(AggregateBySku(current)), noteMovers
	if query.CompareTo != nil {
		ranking, note = NewComparative(AggregateBySku(current), AggregateBySku(previous)), noteMoversDelta
	}

	return &domain.TopMovers{
		WorkspaceID: workspaceID,
		Range:       query.Range,
		CompareTo:   query.CompareTo,
		Metric:      query.Metric,
		Direction:   query.Direction,
		SortBy:      ranking.SortBy(),
		Items:       RankMovers(ranking, query.Metric, query.Direction, take),
		Note:        note,
	}, nil
}
