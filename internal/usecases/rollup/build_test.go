package rollup

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var testDay = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

func TestBuildDailyMetric(t *testing.T) {
	tests := []struct {
		name     string
		orders   []domain.Order
		items    []domain.OrderItem
		totals   DayTotals
		validate func(t *testing.T, m domain.DailyMetric)
	}{
		{
			name: "Dia com vendas - margem descontando taxas e reembolsos",
			orders: []domain.Order{
				{ID: "o1", Total: dec("100")},
				{ID: "o2", Total: dec("50")},
			},
			items: []domain.OrderItem{
				{OrderID: "o1", ProductID: "p1", Quantity: 2},
				{OrderID: "o2", ProductID: "p2", Quantity: 3},
			},
			totals: DayTotals{Fees: dec("5"), Refunds: dec("10")},
			validate: func(t *testing.T, m domain.DailyMetric) {
				assert.Equal(t, "150", m.Revenue.String())
				assert.Equal(t, int64(2), m.Orders)
				assert.Equal(t, int64(5), m.Units)
				assert.Equal(t, "0", m.CogsAmount.String())
				assert.Equal(t, "135", m.GrossMarginAmount.String())
				assert.True(t, m.GrossMarginPercent.Equal(dec("90")))
				assert.Equal(t, int64(1), m.StockoutsCount)
				assert.Equal(t, int64(4), m.LowStockCount)
			},
		},
		{
			name:   "Dia sem receita - percentual de margem zero",
			totals: DayTotals{Fees: dec("3"), Refunds: decimal.Zero},
			validate: func(t *testing.T, m domain.DailyMetric) {
				assert.True(t, m.Revenue.IsZero())
				assert.Equal(t, int64(0), m.Orders)
				assert.Equal(t, "-3", m.GrossMarginAmount.String())
				assert.True(t, m.GrossMarginPercent.IsZero())
			},
		},
		{
			name:   "Reembolsos muito acima da receita - percentual negativo sem limite",
			orders: []domain.Order{{ID: "o1", Total: dec("5")}},
			totals: DayTotals{Fees: decimal.Zero, Refunds: dec("10000")},
			validate: func(t *testing.T, m domain.DailyMetric) {
				assert.Equal(t, "-9995", m.GrossMarginAmount.String())
				assert.True(t, m.GrossMarginPercent.Equal(dec("-199900")), "got %s", m.GrossMarginPercent)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := BuildDailyMetric("ws-1", testDay.Add(13*time.Hour), tt.orders, tt.items, tt.totals, 1, 4)

			assert.Equal(t, "ws-1", m.WorkspaceID)
			assert.Equal(t, testDay, m.Day)
			tt.validate(t, m)
		})
	}
}

func TestBuildSkuDailyMetrics(t *testing.T) {
	tests := []struct {
		name     string
		items    []domain.OrderItem
		totals   DayTotals
		stockEnd map[string]int64
		validate func(t *testing.T, rows []domain.SkuDailyMetric)
	}{
		{
			name: "Alocação proporcional à receita - soma igual ao total do dia",
			items: []domain.OrderItem{
				{ProductID: "p2", Quantity: 4, Total: dec("20")},
				{ProductID: "p1", Quantity: 3, Total: dec("10")},
			},
			totals:   DayTotals{Fees: dec("10"), Refunds: dec("1")},
			stockEnd: map[string]int64{"p1": 7},
			validate: func(t *testing.T, rows []domain.SkuDailyMetric) {
				require.Len(t, rows, 2)
				assert.Equal(t, "p1", rows[0].ProductID)
				assert.Equal(t, "3.33", rows[0].FeesAmount.String())
				assert.Equal(t, "6.67", rows[1].FeesAmount.String())
				assert.Equal(t, "0.33", rows[0].RefundsAmount.String())
				assert.Equal(t, "0.67", rows[1].RefundsAmount.String())
				assert.Equal(t, "3.3333", rows[0].AvgPrice.String())
				assert.Equal(t, "5", rows[1].AvgPrice.String())
				assert.Equal(t, int64(7), rows[0].StockEnd)
				assert.Equal(t, int64(0), rows[1].StockEnd)
			},
		},
		{
			name: "Resíduo de arredondamento - vai para o primeiro productId no empate",
			items: []domain.OrderItem{
				{ProductID: "c", Quantity: 1, Total: dec("1")},
				{ProductID: "a", Quantity: 1, Total: dec("1")},
				{ProductID: "b", Quantity: 1, Total: dec("1")},
			},
			totals: DayTotals{Fees: dec("0.10"), Refunds: decimal.Zero},
			validate: func(t *testing.T, rows []domain.SkuDailyMetric) {
				require.Len(t, rows, 3)
				assert.Equal(t, "a", rows[0].ProductID)
				assert.Equal(t, "0.04", rows[0].FeesAmount.String())
				assert.Equal(t, "0.03", rows[1].FeesAmount.String())
				assert.Equal(t, "0.03", rows[2].FeesAmount.String())
			},
		},
		{
			name: "Itens do mesmo produto - somados em uma linha",
			items: []domain.OrderItem{
				{ProductID: "p1", Quantity: 1, Total: dec("12.50")},
				{ProductID: "p1", Quantity: 2, Total: dec("25")},
			},
			totals: DayTotals{Fees: dec("2"), Refunds: dec("4")},
			validate: func(t *testing.T, rows []domain.SkuDailyMetric) {
				require.Len(t, rows, 1)
				assert.Equal(t, int64(3), rows[0].UnitsSold)
				assert.Equal(t, "37.5", rows[0].Revenue.String())
				assert.Equal(t, "2", rows[0].FeesAmount.String())
				assert.Equal(t, "4", rows[0].RefundsAmount.String())
			},
		},
		{
			name: "Receita zero - nada é alocado",
			items: []domain.OrderItem{
				{ProductID: "p1", Quantity: 0, Total: decimal.Zero},
			},
			totals: DayTotals{Fees: dec("5"), Refunds: dec("5")},
			validate: func(t *testing.T, rows []domain.SkuDailyMetric) {
				require.Len(t, rows, 1)
				assert.True(t, rows[0].FeesAmount.IsZero())
				assert.True(t, rows[0].RefundsAmount.IsZero())
				assert.True(t, rows[0].AvgPrice.IsZero())
			},
		},
		{
			name:   "Sem itens - nenhuma linha",
			totals: DayTotals{Fees: dec("5")},
			validate: func(t *testing.T, rows []domain.SkuDailyMetric) {
				assert.Empty(t, rows)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := BuildSkuDailyMetrics("ws-1", testDay, tt.items, tt.totals, tt.stockEnd)
			tt.validate(t, rows)

			if len(rows) > 0 && rows[0].Revenue.IsPositive() {
				fees, refunds := decimal.Zero, decimal.Zero
				for _, r := range rows {
					fees = fees.Add(r.FeesAmount)
					refunds = refunds.Add(r.RefundsAmount)
				}
				assert.True(t, fees.Equal(tt.totals.Fees.Round(2)), "taxas alocadas %s", fees)
				assert.True(t, refunds.Equal(tt.totals.Refunds.Round(2)), "reembolsos alocados %s", refunds)
			}
		})
	}
}
