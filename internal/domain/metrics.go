package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyMetric é o rollup diário materializado de um workspace.
type DailyMetric struct {
	WorkspaceID        string          `db:"workspace_id"`
	Day                time.Time       `db:"day"`
	Revenue            decimal.Decimal `db:"revenue"`
	Orders             int64           `db:"orders"`
	Units              int64           `db:"units"`
	RefundsAmount      decimal.Decimal `db:"refunds_amount"`
	FeesAmount         decimal.Decimal `db:"fees_amount"`
	CogsAmount         decimal.Decimal `db:"cogs_amount"`
	GrossMarginAmount  decimal.Decimal `db:"gross_margin_amount"`
	GrossMarginPercent decimal.Decimal `db:"gross_margin_percent"`
	StockoutsCount     int64           `db:"stockouts_count"`
	LowStockCount      int64           `db:"low_stock_count"`
}

// Value devolve a coluna correspondente à chave.
func (m DailyMetric) Value(key MetricKey) decimal.Decimal {
	switch key {
	case MetricRevenue:
		return m.Revenue
	case MetricOrders:
		return decimal.NewFromInt(m.Orders)
	case MetricUnits:
		return decimal.NewFromInt(m.Units)
	case MetricRefundsAmount:
		return m.RefundsAmount
	case MetricFeesAmount:
		return m.FeesAmount
	case MetricCogsAmount:
		return m.CogsAmount
	case MetricGrossMarginAmount:
		return m.GrossMarginAmount
	case MetricGrossMarginPercent:
		return m.GrossMarginPercent
	case MetricStockoutsCount:
		return decimal.NewFromInt(m.StockoutsCount)
	case MetricLowStockCount:
		return decimal.NewFromInt(m.LowStockCount)
	}
	return decimal.Zero
}

// SkuDailyMetric é o rollup diário de um produto.
type SkuDailyMetric struct {
	WorkspaceID   string          `db:"workspace_id"`
	ProductID     string          `db:"product_id"`
	SKU           *string         `db:"sku"`
	Day           time.Time       `db:"day"`
	UnitsSold     int64           `db:"units_sold"`
	Revenue       decimal.Decimal `db:"revenue"`
	RefundsAmount decimal.Decimal `db:"refunds_amount"`
	FeesAmount    decimal.Decimal `db:"fees_amount"`
	AvgPrice      decimal.Decimal `db:"avg_price"`
	StockEnd      int64           `db:"stock_end"`
}

func (m SkuDailyMetric) SKUKey() string {
	if m.SKU == nil || *m.SKU == "" {
		return UnknownKey
	}
	return *m.SKU
}

// DailyMetricItem é a linha exposta pela listagem de rollups.
type DailyMetricItem struct {
	Day                string          `json:"day"`
	Revenue            decimal.Decimal `json:"revenue"`
	Orders             int64           `json:"orders"`
	Units              int64           `json:"units"`
	RefundsAmount      decimal.Decimal `json:"refundsAmount"`
	FeesAmount         decimal.Decimal `json:"feesAmount"`
	CogsAmount         decimal.Decimal `json:"cogsAmount"`
	GrossMarginAmount  decimal.Decimal `json:"grossMarginAmount"`
	GrossMarginPercent decimal.Decimal `json:"grossMarginPercent"`
	StockoutsCount     int64           `json:"stockoutsCount"`
	LowStockCount      int64           `json:"lowStockCount"`
}

func NewDailyMetricItem(m DailyMetric) DailyMetricItem {
	return DailyMetricItem{
		Day:                m.Day.UTC().Format(time.DateOnly),
		Revenue:            m.Revenue,
		Orders:             m.Orders,
		Units:              m.Units,
		RefundsAmount:      m.RefundsAmount,
		FeesAmount:         m.FeesAmount,
		CogsAmount:         m.CogsAmount,
		GrossMarginAmount:  m.GrossMarginAmount,
		GrossMarginPercent: m.GrossMarginPercent,
		StockoutsCount:     m.StockoutsCount,
		LowStockCount:      m.LowStockCount,
	}
}

type DailyMetrics struct {
	WorkspaceID string            `json:"workspaceId"`
	Range       DateRange         `json:"range"`
	Total       int               `json:"total"`
	Items       []DailyMetricItem `json:"items"`
}

// RollupResult descreve a materialização de um dia.
type RollupResult struct {
	WorkspaceID string       `json:"workspaceId"`
	Day         string       `json:"day"`
	Daily       *DailyMetric `json:"-"`
	SkuUpserted int          `json:"skuUpserted"`
}
