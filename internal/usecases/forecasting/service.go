// Package forecasting gera previsões ingênuas pela média diária do histórico.
package forecasting

import (
	"context"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/workspace-analytics-api/infrastructure/repository"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	"github.com/vfg2006/workspace-analytics-api/pkg/log"
	"github.com/vfg2006/workspace-analytics-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	DefaultHorizon = 14
	MaxHorizon     = 365
)

var (
	workspaceNotes = []string{
		"UTC day boundaries",
		"Average is computed per calendar day in range, not per stored row",
		"Workspace level forecasts revenue, orders and units",
	}
	skuNotes = []string{
		"UTC day boundaries",
		"Average is computed per calendar day in range, not per stored row",
		"SKU level forecasts revenue and units only",
	}
)

type Forecaster interface {
	Create(ctx context.Context, req domain.ForecastRequest) (*domain.ForecastResult, error)
}

type Service struct {
	dailyRepo    repository.DailyMetricRepository
	skuRepo      repository.SkuDailyMetricRepository
	productRepo  repository.ProductRepository
	forecastRepo repository.ForecastRepository
	now          func() time.Time
}

func NewService(
	dailyRepo repository.DailyMetricRepository,
	skuRepo repository.SkuDailyMetricRepository,
	productRepo repository.ProductRepository,
	forecastRepo repository.ForecastRepository,
) *Service {
	return &Service{
		dailyRepo:    dailyRepo,
		skuRepo:      skuRepo,
		productRepo:  productRepo,
		forecastRepo: forecastRepo,
		now:          time.Now,
	}
}

// Create calcula a previsão do workspace ou de um produto e grava o resultado.
// productId tem precedência sobre sku quando ambos são informados.
func (s *Service) Create(ctx context.Context, req domain.ForecastRequest) (*domain.ForecastResult, error) {
	horizon := utils.ClampOrDefault(req.HorizonDays, DefaultHorizon, 1, MaxHorizon)

	result := &domain.ForecastResult{
		WorkspaceID: req.WorkspaceID,
		Level:       domain.ForecastWorkspace,
		Method:      domain.ForecastMethod,
		Range:       req.Range,
		HorizonDays: horizon,
	}

	var training Training

	product, err := s.resolveProduct(ctx, req)
	if err != nil {
		return nil, err
	}

	if product != nil {
		rows, err := s.skuRepo.ListByProduct(ctx, req.WorkspaceID, product.ID, req.Range)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar rollups do produto: %w", err)
		}
		training = TrainingFromSku(rows)
		result.Level = domain.ForecastSKU
		result.SKU = &product.SKU
		result.ProductID = &product.ID
		result.Assumptions.Notes = append([]string(nil), skuNotes...)
	} else {
		rows, err := s.dailyRepo.ListByRange(ctx, req.WorkspaceID, req.Range)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar rollups diários: %w", err)
		}
		training = TrainingFromDaily(rows)
		result.Assumptions.TrainingTotals = &domain.TrainingTotals{
			Revenue: training.Revenue,
			Orders:  *training.Orders,
			Units:   training.Units,
		}
		result.Assumptions.Notes = append([]string(nil), workspaceNotes...)
	}

	result.Assumptions.TrainingWindow = domain.TrainingWindow{
		DaysInRange:  req.Range.DaysInclusive(),
		DaysWithData: training.DaysWithData,
	}
	result.AvgDaily, result.Totals, result.Daily = Naive(req.Range, horizon, training)

	if err := s.persist(ctx, result); err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"workspace_id": req.WorkspaceID,
		"forecast_id":  result.ID,
		"level":        result.Level,
		"horizon":      horizon,
	}).Info("Previsão criada")

	return result, nil
}

func (s *Service) resolveProduct(ctx context.Context, req domain.ForecastRequest) (*domain.Product, error) {
	if req.ProductID != nil && strings.TrimSpace(*req.ProductID) != "" {
		id := strings.TrimSpace(*req.ProductID)
		product, err := s.productRepo.GetByID(ctx, req.WorkspaceID, id)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar produto: %w", err)
		}
		if product == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
		}
		return product, nil
	}

	if req.SKU != nil && strings.TrimSpace(*req.SKU) != "" {
		sku := strings.TrimSpace(*req.SKU)
		product, err := s.productRepo.GetBySKU(ctx, req.WorkspaceID, sku)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar produto: %w", err)
		}
		if product == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrSKUNotFound, sku)
		}
		return product, nil
	}

	return nil, nil
}

func (s *Service) persist(ctx context.Context, result *domain.ForecastResult) error {
	result.ID = utils.NewUUID()
	result.CreatedAt = s.now().UTC()

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("erro ao serializar previsão: %w", err)
	}

	assumptions, err := json.Marshal(result.Assumptions)
	if err != nil {
		return fmt.Errorf("erro ao serializar premissas: %w", err)
	}

	forecast := &domain.Forecast{
		ID:          result.ID,
		WorkspaceID: result.WorkspaceID,
		ProductID:   result.ProductID,
		Level:       result.Level,
		Method:      result.Method,
		RangeFrom:   result.Range.From,
		RangeTo:     result.Range.To(),
		HorizonDays: result.HorizonDays,
		Assumptions: assumptions,
		Result:      payload,
		CreatedAt:   result.CreatedAt,
	}

	if err := s.forecastRepo.Create(ctx, forecast); err != nil {
		return fmt.Errorf("erro ao salvar previsão: %w", err)
	}
	return nil
}
