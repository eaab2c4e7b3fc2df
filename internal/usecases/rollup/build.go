package rollup

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
)

// LowStockLimit é o saldo máximo contado como estoque baixo no rollup diário.
const LowStockLimit = 5

var hundred = decimal.NewFromInt(100)

// DayTotals são as somas de taxas e reembolsos criados no dia.
type DayTotals struct {
	Fees    decimal.Decimal
	Refunds decimal.Decimal
}

// BuildDailyMetric monta o rollup do workspace para um dia a partir dos pedidos
// do dia, dos itens desses pedidos e das contagens atuais de estoque.
func BuildDailyMetric(
	workspaceID string,
	day time.Time,
	orders []domain.Order,
	items []domain.OrderItem,
	totals DayTotals,
	stockouts, lowStock int64,
) domain.DailyMetric {
	revenue := decimal.Zero
	for _, o := range orders {
		revenue = revenue.Add(o.Total)
	}

	var units int64
	for _, it := range items {
		units += it.Quantity
	}

	cogs := decimal.Zero
	margin := revenue.Sub(totals.Refunds).Sub(totals.Fees).Sub(cogs)

	marginPct := decimal.Zero
	if !revenue.IsZero() {
		marginPct = margin.Div(revenue).Mul(hundred)
	}

	return domain.DailyMetric{
		WorkspaceID:        workspaceID,
		Day:                domain.StartOfDay(day),
		Revenue:            revenue,
		Orders:             int64(len(orders)),
		Units:              units,
		RefundsAmount:      totals.Refunds,
		FeesAmount:         totals.Fees,
		CogsAmount:         cogs,
		GrossMarginAmount:  margin,
		GrossMarginPercent: marginPct.Round(4),
		StockoutsCount:     stockouts,
		LowStockCount:      lowStock,
	}
}

type productAgg struct {
	productID string
	units     int64
	revenue   decimal.Decimal
}

// groupItemsByProduct soma quantidade e total de linha por produto, ordenado por productId.
func groupItemsByProduct(items []domain.OrderItem) []productAgg {
	byProduct := make(map[string]*productAgg)
	for _, it := range items {
		agg, ok := byProduct[it.ProductID]
		if !ok {
			agg = &productAgg{productID: it.ProductID, revenue: decimal.Zero}
			byProduct[it.ProductID] = agg
		}
		agg.units += it.Quantity
		agg.revenue = agg.revenue.Add(it.Total)
	}

	out := make([]productAgg, 0, len(byProduct))
	for _, agg := range byProduct {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].productID < out[j].productID })
	return out
}

// BuildSkuDailyMetrics reparte as taxas e reembolsos do dia entre os produtos
// pela participação na receita dos itens. Com receita total zero nada é alocado.
func BuildSkuDailyMetrics(
	workspaceID string,
	day time.Time,
	items []domain.OrderItem,
	totals DayTotals,
	stockEnd map[string]int64,
) []domain.SkuDailyMetric {
	products := groupItemsByProduct(items)
	if len(products) == 0 {
		return []domain.SkuDailyMetric{}
	}

	weights := make([]decimal.Decimal, len(products))
	totalRevenue := decimal.Zero
	for i, p := range products {
		weights[i] = p.revenue
		totalRevenue = totalRevenue.Add(p.revenue)
	}

	fees := make([]decimal.Decimal, len(products))
	refunds := make([]decimal.Decimal, len(products))
	if totalRevenue.IsPositive() {
		fees = domain.Allocate(totals.Fees, weights)
		refunds = domain.Allocate(totals.Refunds, weights)
	}

	metrics := make([]domain.SkuDailyMetric, 0, len(products))
	for i, p := range products {
		avgPrice := decimal.Zero
		if p.units > 0 {
			avgPrice = p.revenue.Div(decimal.NewFromInt(p.units)).Round(4)
		}

		metrics = append(metrics, domain.SkuDailyMetric{
			WorkspaceID:   workspaceID,
			ProductID:     p.productID,
			Day:           domain.StartOfDay(day),
			UnitsSold:     p.units,
			Revenue:       p.revenue,
			RefundsAmount: refunds[i],
			FeesAmount:    fees[i],
			AvgPrice:      avgPrice,
			StockEnd:      stockEnd[p.productID],
		})
	}

	return metrics
}
