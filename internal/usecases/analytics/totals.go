package analytics

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	"github.com/vfg2006/workspace-analytics-api/pkg/utils"
)

// ComputeTotals soma as colunas dos rollups diários e deriva as razões.
func ComputeTotals(rows []domain.DailyMetric) domain.KPITotals {
	t := domain.KPITotals{
		Revenue:           decimal.Zero,
		RefundsAmount:     decimal.Zero,
		FeesAmount:        decimal.Zero,
		CogsAmount:        decimal.Zero,
		GrossMarginAmount: decimal.Zero,
		Days:              len(rows),
	}

	dailyPct := decimal.Zero
	for _, r := range rows {
		t.Revenue = t.Revenue.Add(r.Revenue)
		t.Orders += r.Orders
		t.Units += r.Units
		t.RefundsAmount = t.RefundsAmount.Add(r.RefundsAmount)
		t.FeesAmount = t.FeesAmount.Add(r.FeesAmount)
		t.CogsAmount = t.CogsAmount.Add(r.CogsAmount)
		t.GrossMarginAmount = t.GrossMarginAmount.Add(r.GrossMarginAmount)
		t.StockoutsCount += r.StockoutsCount
		t.LowStockCount += r.LowStockCount
		dailyPct = dailyPct.Add(r.GrossMarginPercent)
	}

	t.AvgOrderValue = utils.SafeDiv(t.Revenue, decimal.NewFromInt(t.Orders))
	t.RevenuePerUnit = utils.SafeDiv(t.Revenue, decimal.NewFromInt(t.Units))
	t.RefundRate = utils.SafeDiv(t.RefundsAmount, t.Revenue)
	t.FeeRate = utils.SafeDiv(t.FeesAmount, t.Revenue)
	t.CogsRate = utils.SafeDiv(t.CogsAmount, t.Revenue)
	t.GrossMarginPercent = utils.Percent(utils.SafeDiv(t.GrossMarginAmount, t.Revenue))
	t.AvgDailyGrossMarginPercent = utils.SafeDiv(dailyPct, decimal.NewFromInt(int64(len(rows))))

	return t
}

// BuildTrends devolve um ponto por dia armazenado com apenas as métricas pedidas.
func BuildTrends(rows []domain.DailyMetric, keys []domain.MetricKey) []domain.TrendPoint {
	points := make([]domain.TrendPoint, 0, len(rows))
	for _, r := range rows {
		values := make(map[domain.MetricKey]decimal.Decimal, len(keys))
		for _, k := range keys {
			values[k] = r.Value(k)
		}
		points = append(points, domain.TrendPoint{
			Day:    r.Day.UTC().Format("2006-01-02"),
			Values: values,
		})
	}
	return points
}

// Delta compara dois valores anuláveis.
func Delta(current, previous decimal.NullDecimal) domain.DeltaValue {
	return domain.ComputeDelta(current, previous)
}

// ComputeDeltas compara dois totais nas chaves fixas de KPI.
func ComputeDeltas(current, previous domain.KPITotals) map[domain.KPIKey]domain.DeltaValue {
	deltas := make(map[domain.KPIKey]domain.DeltaValue, len(domain.DeltaKPIKeys))
	for _, k := range domain.DeltaKPIKeys {
		deltas[k] = Delta(current.Value(k), previous.Value(k))
	}
	return deltas
}
