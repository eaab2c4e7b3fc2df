package domain

import (
	"fmt"
	"strings"
)

// MetricKey identifica uma coluna de DailyMetric exposta em séries temporais.
type MetricKey string

const (
	MetricRevenue            MetricKey = "revenue"
	MetricOrders             MetricKey = "orders"
	MetricUnits              MetricKey = "units"
	MetricRefundsAmount      MetricKey = "refundsAmount"
	MetricFeesAmount         MetricKey = "feesAmount"
	MetricCogsAmount         MetricKey = "cogsAmount"
	MetricGrossMarginAmount  MetricKey = "grossMarginAmount"
	MetricGrossMarginPercent MetricKey = "grossMarginPercent"
	MetricStockoutsCount     MetricKey = "stockoutsCount"
	MetricLowStockCount      MetricKey = "lowStockCount"
)

var allMetricKeys = []MetricKey{
	MetricRevenue,
	MetricOrders,
	MetricUnits,
	MetricRefundsAmount,
	MetricFeesAmount,
	MetricCogsAmount,
	MetricGrossMarginAmount,
	MetricGrossMarginPercent,
	MetricStockoutsCount,
	MetricLowStockCount,
}

// DefaultTrendMetrics é usado quando nenhuma métrica válida é pedida.
var DefaultTrendMetrics = []MetricKey{
	MetricRevenue,
	MetricOrders,
	MetricUnits,
	MetricRefundsAmount,
	MetricFeesAmount,
	MetricGrossMarginPercent,
}

func (k MetricKey) Valid() bool {
	for _, key := range allMetricKeys {
		if key == k {
			return true
		}
	}
	return false
}

// CleanMetricKeys mantém as chaves conhecidas, sem duplicatas, na ordem pedida.
// Sem nenhuma chave válida devolve DefaultTrendMetrics.
func CleanMetricKeys(raw []string) []MetricKey {
	seen := make(map[MetricKey]struct{}, len(raw))
	keys := make([]MetricKey, 0, len(raw))
	for _, r := range raw {
		key := MetricKey(strings.TrimSpace(r))
		if !key.Valid() {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	if len(keys) == 0 {
		return append([]MetricKey(nil), DefaultTrendMetrics...)
	}
	return keys
}

// Dimension é o eixo de agrupamento de um breakdown.
type Dimension string

const (
	DimensionSKU      Dimension = "sku"
	DimensionChannel  Dimension = "channel"
	DimensionPlatform Dimension = "platform"
	DimensionLocation Dimension = "location"
)

func ParseDimension(s string) (Dimension, error) {
	d := Dimension(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DimensionSKU, DimensionChannel, DimensionPlatform, DimensionLocation:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDimension, s)
}

// MoverMetric é a métrica usada para ordenar top movers.
type MoverMetric string

const (
	MoverRevenue   MoverMetric = "revenue"
	MoverUnitsSold MoverMetric = "unitsSold"
	MoverRefunds   MoverMetric = "refunds"
	MoverFees      MoverMetric = "fees"
	MoverMargin    MoverMetric = "margin"
)

func ParseMoverMetric(s string) (MoverMetric, error) {
	m := MoverMetric(strings.TrimSpace(s))
	if m == "" {
		return MoverRevenue, nil
	}
	switch m {
	case MoverRevenue, MoverUnitsSold, MoverRefunds, MoverFees, MoverMargin:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMetric, s)
}

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	if d == "" {
		return DirectionUp, nil
	}
	if d == DirectionUp || d == DirectionDown {
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Severity é o nível de risco ou impacto de um sinal.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Score ordena severidades: high > medium > low.
func (s Severity) Score() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// Role é o papel de um usuário dentro de um workspace.
type Role string

const (
	RoleViewer Role = "VIEWER"
	RoleAdmin  Role = "ADMIN"
	RoleOwner  Role = "OWNER"
)

// LedgerKind distingue as tabelas de taxas e reembolsos.
type LedgerKind string

const (
	LedgerFees    LedgerKind = "fees"
	LedgerRefunds LedgerKind = "refunds"
)

// ForecastLevel é o escopo de uma previsão.
type ForecastLevel string

const (
	ForecastWorkspace ForecastLevel = "WORKSPACE"
	ForecastSKU       ForecastLevel = "SKU"
)
