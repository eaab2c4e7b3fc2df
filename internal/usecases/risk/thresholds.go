package risk

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/workspace-analytics-api/internal/config"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
)

// Thresholds reúne os limiares de classificação dos detectores.
type Thresholds struct {
	StockoutHighDaysLeft     decimal.Decimal
	RefundSpikeMedium        decimal.Decimal
	RefundSpikeHigh          decimal.Decimal
	FeeSpikeMedium           decimal.Decimal
	FeeSpikeHigh             decimal.Decimal
	MarginHigh               decimal.Decimal
	MarginMedium             decimal.Decimal
	DefaultHorizonDays       int
	DefaultLowStockThreshold int
	SampleSize               int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		StockoutHighDaysLeft:     decimal.NewFromInt(3),
		RefundSpikeMedium:        decimal.RequireFromString("0.02"),
		RefundSpikeHigh:          decimal.RequireFromString("0.05"),
		FeeSpikeMedium:           decimal.RequireFromString("0.01"),
		FeeSpikeHigh:             decimal.RequireFromString("0.03"),
		MarginHigh:               decimal.RequireFromString("0.40"),
		MarginMedium:             decimal.RequireFromString("0.60"),
		DefaultHorizonDays:       14,
		DefaultLowStockThreshold: 10,
		SampleSize:               5,
	}
}

// ThresholdsFromConfig sobrescreve os padrões com os valores não nulos da configuração.
func ThresholdsFromConfig(cfg config.Risk) Thresholds {
	th := DefaultThresholds()

	override := func(dst *decimal.Decimal, v float64) {
		if v > 0 {
			*dst = decimal.NewFromFloat(v)
		}
	}
	override(&th.StockoutHighDaysLeft, cfg.StockoutHighDaysLeft)
	override(&th.RefundSpikeMedium, cfg.RefundSpikeMedium)
	override(&th.RefundSpikeHigh, cfg.RefundSpikeHigh)
	override(&th.FeeSpikeMedium, cfg.FeeSpikeMedium)
	override(&th.FeeSpikeHigh, cfg.FeeSpikeHigh)
	override(&th.MarginHigh, cfg.MarginHigh)
	override(&th.MarginMedium, cfg.MarginMedium)

	if cfg.DefaultHorizonDays > 0 {
		th.DefaultHorizonDays = cfg.DefaultHorizonDays
	}
	if cfg.DefaultLowStockThreshold > 0 {
		th.DefaultLowStockThreshold = cfg.DefaultLowStockThreshold
	}
	if cfg.OrderIssuesSampleSize > 0 {
		th.SampleSize = cfg.OrderIssuesSampleSize
	}

	return th
}

// SpikeLimits devolve os limiares médio e alto do tipo de taxa.
func (t Thresholds) SpikeLimits(kind domain.SpikeKind) (medium, high decimal.Decimal) {
	if kind == domain.SpikeFee {
		return t.FeeSpikeMedium, t.FeeSpikeHigh
	}
	return t.RefundSpikeMedium, t.RefundSpikeHigh
}
