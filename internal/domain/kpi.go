package domain

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/workspace-analytics-api/pkg/utils"
)

// KPITotals agrega linhas de DailyMetric de um intervalo.
// Razões são 0..1, exceto GrossMarginPercent e AvgDailyGrossMarginPercent,
// que seguem a escala percentual armazenada no rollup diário.
type KPITotals struct {
	Revenue                    decimal.Decimal     `json:"revenue"`
	Orders                     int64               `json:"orders"`
	Units                      int64               `json:"units"`
	RefundsAmount              decimal.Decimal     `json:"refundsAmount"`
	FeesAmount                 decimal.Decimal     `json:"feesAmount"`
	CogsAmount                 decimal.Decimal     `json:"cogsAmount"`
	GrossMarginAmount          decimal.Decimal     `json:"grossMarginAmount"`
	StockoutsCount             int64               `json:"stockoutsCount"`
	LowStockCount              int64               `json:"lowStockCount"`
	Days                       int                 `json:"days"`
	AvgOrderValue              decimal.NullDecimal `json:"avgOrderValue"`
	RevenuePerUnit             decimal.NullDecimal `json:"revenuePerUnit"`
	RefundRate                 decimal.NullDecimal `json:"refundRate"`
	FeeRate                    decimal.NullDecimal `json:"feeRate"`
	CogsRate                   decimal.NullDecimal `json:"cogsRate"`
	GrossMarginPercent         decimal.NullDecimal `json:"grossMarginPercent"`
	AvgDailyGrossMarginPercent decimal.NullDecimal `json:"avgDailyGrossMarginPercent"`
}

// KPIKey identifica um valor de KPITotals comparável entre períodos.
type KPIKey string

const (
	KPIRevenue            KPIKey = "revenue"
	KPIOrders             KPIKey = "orders"
	KPIUnits              KPIKey = "units"
	KPIRefundsAmount      KPIKey = "refundsAmount"
	KPIFeesAmount         KPIKey = "feesAmount"
	KPICogsAmount         KPIKey = "cogsAmount"
	KPIGrossMarginAmount  KPIKey = "grossMarginAmount"
	KPIStockoutsCount     KPIKey = "stockoutsCount"
	KPILowStockCount      KPIKey = "lowStockCount"
	KPIAvgOrderValue      KPIKey = "avgOrderValue"
	KPIRefundRate         KPIKey = "refundRate"
	KPIFeeRate            KPIKey = "feeRate"
	KPIGrossMarginPercent KPIKey = "grossMarginPercent"
	KPICogsRate           KPIKey = "cogsRate"
)

// DeltaKPIKeys são as chaves reportadas pela comparação de períodos.
var DeltaKPIKeys = []KPIKey{
	KPIRevenue,
	KPIOrders,
	KPIUnits,
	KPIRefundsAmount,
	KPIFeesAmount,
	KPICogsAmount,
	KPIGrossMarginAmount,
	KPIStockoutsCount,
	KPILowStockCount,
	KPIAvgOrderValue,
	KPIRefundRate,
	KPIFeeRate,
	KPIGrossMarginPercent,
	KPICogsRate,
}

func (t KPITotals) Value(key KPIKey) decimal.NullDecimal {
	switch key {
	case KPIRevenue:
		return decimal.NewNullDecimal(t.Revenue)
	case KPIOrders:
		return decimal.NewNullDecimal(decimal.NewFromInt(t.Orders))
	case KPIUnits:
		return decimal.NewNullDecimal(decimal.NewFromInt(t.Units))
	case KPIRefundsAmount:
		return decimal.NewNullDecimal(t.RefundsAmount)
	case KPIFeesAmount:
		return decimal.NewNullDecimal(t.FeesAmount)
	case KPICogsAmount:
		return decimal.NewNullDecimal(t.CogsAmount)
	case KPIGrossMarginAmount:
		return decimal.NewNullDecimal(t.GrossMarginAmount)
	case KPIStockoutsCount:
		return decimal.NewNullDecimal(decimal.NewFromInt(t.StockoutsCount))
	case KPILowStockCount:
		return decimal.NewNullDecimal(decimal.NewFromInt(t.LowStockCount))
	case KPIAvgOrderValue:
		return t.AvgOrderValue
	case KPIRefundRate:
		return t.RefundRate
	case KPIFeeRate:
		return t.FeeRate
	case KPIGrossMarginPercent:
		return t.GrossMarginPercent
	case KPICogsRate:
		return t.CogsRate
	}
	return decimal.NullDecimal{}
}

// DeltaValue compara um valor atual com o de um período de referência.
type DeltaValue struct {
	Value    decimal.NullDecimal `json:"value"`
	Delta    decimal.NullDecimal `json:"delta"`
	DeltaPct decimal.NullDecimal `json:"deltaPct"`
}

// ComputeDelta calcula delta = atual - anterior e deltaPct = delta / anterior.
// Qualquer lado nulo torna delta nulo; anterior zero torna deltaPct nulo.
func ComputeDelta(current, previous decimal.NullDecimal) DeltaValue {
	out := DeltaValue{Value: current}
	if !current.Valid || !previous.Valid {
		return out
	}

	delta := current.Decimal.Sub(previous.Decimal)
	out.Delta = decimal.NewNullDecimal(delta)
	out.DeltaPct = utils.SafeDiv(delta, previous.Decimal)
	return out
}

type KPISummary struct {
	WorkspaceID string    `json:"workspaceId"`
	Range       DateRange `json:"range"`
	Totals      KPITotals `json:"totals"`
	Note        string    `json:"note"`
}

type KPIDeltas struct {
	WorkspaceID string                `json:"workspaceId"`
	Range       DateRange             `json:"range"`
	CompareTo   DateRange             `json:"compareTo"`
	Current     KPITotals             `json:"current"`
	Previous    KPITotals             `json:"previous"`
	Deltas      map[KPIKey]DeltaValue `json:"deltas"`
	Note        string                `json:"note"`
}

type TrendPoint struct {
	Day    string                        `json:"day"`
	Values map[MetricKey]decimal.Decimal `json:"values"`
}

type Trends struct {
	WorkspaceID string       `json:"workspaceId"`
	Range       DateRange    `json:"range"`
	Metrics     []MetricKey  `json:"metrics"`
	Points      []TrendPoint `json:"points"`
	Note        string       `json:"note"`
}

// BreakdownRow é uma linha agrupada por dimensão. Orders só existe para
// dimensões baseadas em pedidos; AvgPrice e StockEnd só para sku.
type BreakdownRow struct {
	Key           string              `json:"key"`
	ProductID     *string             `json:"productId,omitempty"`
	Orders        *int64              `json:"orders,omitempty"`
	Units         int64               `json:"units"`
	Revenue       decimal.Decimal     `json:"revenue"`
	RefundsAmount decimal.Decimal     `json:"refundsAmount"`
	FeesAmount    decimal.Decimal     `json:"feesAmount"`
	MarginApprox  decimal.Decimal     `json:"marginApprox"`
	AvgOrderValue decimal.NullDecimal `json:"avgOrderValue"`
	RefundRate    decimal.NullDecimal `json:"refundRate"`
	FeeRate       decimal.NullDecimal `json:"feeRate"`
	AvgPrice      *decimal.Decimal    `json:"avgPrice,omitempty"`
	StockEnd      *int64              `json:"stockEnd,omitempty"`
}

type Breakdown struct {
	WorkspaceID string         `json:"workspaceId"`
	Range       DateRange      `json:"range"`
	Dimension   Dimension      `json:"dimension"`
	Limit       int            `json:"limit"`
	Rows        []BreakdownRow `json:"rows"`
	Note        string         `json:"note"`
}

type TopMoversQuery struct {
	Range     DateRange
	CompareTo *DateRange
	Metric    MoverMetric
	Direction Direction
	Limit     *int
}

type MoverItem struct {
	SKU       string              `json:"sku"`
	ProductID string              `json:"productId"`
	Value     decimal.Decimal     `json:"value"`
	Previous  decimal.NullDecimal `json:"previous"`
	Delta     decimal.NullDecimal `json:"delta"`
	DeltaPct  decimal.NullDecimal `json:"deltaPct"`
}

type TopMovers struct {
	WorkspaceID string      `json:"workspaceId"`
	Range       DateRange   `json:"range"`
	CompareTo   *DateRange  `json:"compareTo"`
	Metric      MoverMetric `json:"metric"`
	Direction   Direction   `json:"direction"`
	SortBy      string      `json:"sortBy"`
	Items       []MoverItem `json:"items"`
	Note        string      `json:"note"`
}
