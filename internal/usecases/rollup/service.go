// Package rollup materializa os rollups diários por workspace e por produto.
package rollup

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/workspace-analytics-api/infrastructure/repository"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	"github.com/vfg2006/workspace-analytics-api/pkg/log"
	"golang.org/x/sync/errgroup"
)

// Materializer recalcula e grava os rollups de um dia UTC.
type Materializer interface {
	ComputeDailyMetric(ctx context.Context, workspaceID string, day time.Time) (*domain.DailyMetric, error)
	ComputeSkuDailyMetric(ctx context.Context, workspaceID string, day time.Time) (int, error)
	MaterializeDay(ctx context.Context, workspaceID string, day time.Time) (*domain.RollupResult, error)
}

type Service struct {
	dailyRepo     repository.DailyMetricRepository
	skuRepo       repository.SkuDailyMetricRepository
	orderRepo     repository.OrderRepository
	ledgerRepo    repository.LedgerRepository
	inventoryRepo repository.InventoryRepository
}

func NewService(
	dailyRepo repository.DailyMetricRepository,
	skuRepo repository.SkuDailyMetricRepository,
	orderRepo repository.OrderRepository,
	ledgerRepo repository.LedgerRepository,
	inventoryRepo repository.InventoryRepository,
) *Service {
	return &Service{
		dailyRepo:     dailyRepo,
		skuRepo:       skuRepo,
		orderRepo:     orderRepo,
		ledgerRepo:    ledgerRepo,
		inventoryRepo: inventoryRepo,
	}
}

func (s *Service) dayTotals(ctx context.Context, workspaceID string, rng domain.DateRange) (DayTotals, error) {
	fees, err := s.ledgerRepo.SumCreatedWithin(ctx, domain.LedgerFees, workspaceID, rng)
	if err != nil {
		return DayTotals{}, errors.Wrapf(err, "somando taxas de %s", rng.FromString())
	}

	refunds, err := s.ledgerRepo.SumCreatedWithin(ctx, domain.LedgerRefunds, workspaceID, rng)
	if err != nil {
		return DayTotals{}, errors.Wrapf(err, "somando reembolsos de %s", rng.FromString())
	}

	return DayTotals{Fees: fees, Refunds: refunds}, nil
}

func (s *Service) ComputeDailyMetric(ctx context.Context, workspaceID string, day time.Time) (*domain.DailyMetric, error) {
	rng := domain.DayRange(day)

	orders, err := s.orderRepo.ListOrderedWithin(ctx, workspaceID, rng)
	if err != nil {
		return nil, errors.Wrapf(err, "buscando pedidos de %s", rng.FromString())
	}

	orderIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	var (
		items     []domain.OrderItem
		totals    DayTotals
		stockouts int64
		lowStock  int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		items, err = s.orderRepo.ListItems(gctx, orderIDs)
		return errors.Wrapf(err, "buscando itens de %d pedidos", len(orderIDs))
	})
	g.Go(func() (err error) {
		totals, err = s.dayTotals(gctx, workspaceID, rng)
		return err
	})
	g.Go(func() (err error) {
		stockouts, err = s.inventoryRepo.CountAtOrBelow(gctx, workspaceID, 0)
		return errors.Wrap(err, "contando rupturas")
	})
	g.Go(func() (err error) {
		lowStock, err = s.inventoryRepo.CountAtOrBelow(gctx, workspaceID, LowStockLimit)
		return errors.Wrap(err, "contando estoque baixo")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metric := BuildDailyMetric(workspaceID, rng.From, orders, items, totals, stockouts, lowStock)
	if err := s.dailyRepo.Upsert(ctx, &metric); err != nil {
		return nil, errors.Wrapf(err, "gravando rollup diário de %s", rng.FromString())
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"workspace_id": workspaceID,
		"day":          rng.FromString(),
		"orders":       metric.Orders,
	}).Info("Rollup diário gravado")

	return &metric, nil
}

// ComputeSkuDailyMetric grava um rollup por produto vendido no dia e devolve quantos foram gravados.
func (s *Service) ComputeSkuDailyMetric(ctx context.Context, workspaceID string, day time.Time) (int, error) {
	rng := domain.DayRange(day)

	orders, err := s.orderRepo.ListOrderedWithin(ctx, workspaceID, rng)
	if err != nil {
		return 0, errors.Wrapf(err, "buscando pedidos de %s", rng.FromString())
	}

	if len(orders) == 0 {
		log.ForContext(ctx).WithFields(log.Fields{
			"workspace_id": workspaceID,
			"day":          rng.FromString(),
		}).Info("Nenhum pedido no dia, rollup por SKU ignorado")
		return 0, nil
	}

	orderIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	items, err := s.orderRepo.ListItems(ctx, orderIDs)
	if err != nil {
		return 0, errors.Wrapf(err, "buscando itens de %d pedidos", len(orderIDs))
	}

	totals, err := s.dayTotals(ctx, workspaceID, rng)
	if err != nil {
		return 0, err
	}

	productIDs := make([]string, 0)
	for _, p := range groupItemsByProduct(items) {
		productIDs = append(productIDs, p.productID)
	}

	stockEnd, err := s.inventoryRepo.SumOnHandByProduct(ctx, workspaceID, productIDs)
	if err != nil {
		return 0, errors.Wrap(err, "somando saldo por produto")
	}

	metrics := BuildSkuDailyMetrics(workspaceID, rng.From, items, totals, stockEnd)

	upserted := 0
	for i := range metrics {
		if err := ctx.Err(); err != nil {
			return upserted, err
		}
		if err := s.skuRepo.Upsert(ctx, &metrics[i]); err != nil {
			return upserted, errors.Wrapf(err, "gravando rollup do produto %s", metrics[i].ProductID)
		}
		upserted++
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"workspace_id": workspaceID,
		"day":          rng.FromString(),
		"skus":         upserted,
	}).Info("Rollup por SKU gravado")

	return upserted, nil
}

// MaterializeDay executa o rollup do workspace e depois o rollup por SKU.
func (s *Service) MaterializeDay(ctx context.Context, workspaceID string, day time.Time) (*domain.RollupResult, error) {
	daily, err := s.ComputeDailyMetric(ctx, workspaceID, day)
	if err != nil {
		return nil, err
	}

	upserted, err := s.ComputeSkuDailyMetric(ctx, workspaceID, day)
	if err != nil {
		return nil, err
	}

	return &domain.RollupResult{
		WorkspaceID: workspaceID,
		Day:         domain.StartOfDay(day).Format(time.DateOnly),
		Daily:       daily,
		SkuUpserted: upserted,
	}, nil
}
