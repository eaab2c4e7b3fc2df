package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	"github.com/vfg2006/workspace-analytics-api/pkg/utils"
)

type groupAgg struct {
	key       string
	productID *string
	orders    int64
	units     int64
	revenue   decimal.Decimal
	refunds   decimal.Decimal
	fees      decimal.Decimal

	avgPriceSum   decimal.Decimal
	avgPriceCount int64
	stockEnd      *int64
	stockEndDay   string
}

func newGroupAgg(key string) *groupAgg {
	return &groupAgg{
		key:         key,
		revenue:     decimal.Zero,
		refunds:     decimal.Zero,
		fees:        decimal.Zero,
		avgPriceSum: decimal.Zero,
	}
}

func (g *groupAgg) row(withOrders bool) domain.BreakdownRow {
	row := domain.BreakdownRow{
		Key:           g.key,
		ProductID:     g.productID,
		Units:         g.units,
		Revenue:       g.revenue,
		RefundsAmount: g.refunds,
		FeesAmount:    g.fees,
		MarginApprox:  g.revenue.Sub(g.refunds).Sub(g.fees),
		RefundRate:    utils.SafeDiv(g.refunds, g.revenue),
		FeeRate:       utils.SafeDiv(g.fees, g.revenue),
	}

	if withOrders {
		orders := g.orders
		row.Orders = &orders
		row.AvgOrderValue = utils.SafeDiv(g.revenue, decimal.NewFromInt(g.orders))
	}

	return row
}

type groups map[string]*groupAgg

func (g groups) get(key string) *groupAgg {
	agg, ok := g[key]
	if !ok {
		agg = newGroupAgg(key)
		g[key] = agg
	}
	return agg
}

// SkuBreakdown agrega os rollups por SKU. avgPrice é a média dos preços médios
// diários e stockEnd é o valor do dia mais recente.
func SkuBreakdown(rows []domain.SkuDailyMetric) []domain.BreakdownRow {
	bySku := make(groups)
	for _, r := range rows {
		agg := bySku.get(r.SKUKey())
		if agg.productID == nil {
			productID := r.ProductID
			agg.productID = &productID
		}

		agg.units += r.UnitsSold
		agg.revenue = agg.revenue.Add(r.Revenue)
		agg.refunds = agg.refunds.Add(r.RefundsAmount)
		agg.fees = agg.fees.Add(r.FeesAmount)
		agg.avgPriceSum = agg.avgPriceSum.Add(r.AvgPrice)
		agg.avgPriceCount++

		day := r.Day.UTC().Format("2006-01-02")
		if agg.stockEnd == nil || day >= agg.stockEndDay {
			stockEnd := r.StockEnd
			agg.stockEnd = &stockEnd
			agg.stockEndDay = day
		}
	}

	out := make([]domain.BreakdownRow, 0, len(bySku))
	for _, agg := range bySku {
		row := agg.row(false)
		if agg.avgPriceCount > 0 {
			avg := agg.avgPriceSum.Div(decimal.NewFromInt(agg.avgPriceCount))
			row.AvgPrice = &avg
		}
		row.StockEnd = agg.stockEnd
		out = append(out, row)
	}
	return out
}

// OrderLedger guarda as taxas e reembolsos somados por pedido.
type OrderLedger struct {
	Fees    map[string]decimal.Decimal
	Refunds map[string]decimal.Decimal
}

// NewOrderLedger soma os lançamentos vinculados por orderId. Lançamentos sem pedido são ignorados.
func NewOrderLedger(fees, refunds []domain.LedgerEntry) OrderLedger {
	sum := func(entries []domain.LedgerEntry) map[string]decimal.Decimal {
		out := make(map[string]decimal.Decimal)
		for _, e := range entries {
			if e.OrderID == nil {
				continue
			}
			out[*e.OrderID] = out[*e.OrderID].Add(e.Amount)
		}
		return out
	}
	return OrderLedger{Fees: sum(fees), Refunds: sum(refunds)}
}

// ChannelBreakdown agrupa pedidos pelo canal.
func ChannelBreakdown(orders []domain.Order, items []domain.OrderItem, ledger OrderLedger) []domain.BreakdownRow {
	unitsByOrder := make(map[string]int64)
	for _, it := range items {
		unitsByOrder[it.OrderID] += it.Quantity
	}

	byChannel := make(groups)
	for _, o := range orders {
		agg := byChannel.get(o.ChannelKey())
		agg.orders++
		agg.revenue = agg.revenue.Add(o.Total)
		agg.units += unitsByOrder[o.ID]
		agg.fees = agg.fees.Add(ledger.Fees[o.ID])
		agg.refunds = agg.refunds.Add(ledger.Refunds[o.ID])
	}

	out := make([]domain.BreakdownRow, 0, len(byChannel))
	for _, agg := range byChannel {
		out = append(out, agg.row(true))
	}
	return out
}

// LocationBreakdown reparte receita, taxas e reembolsos de cada pedido entre os
// locais dos seus itens, na proporção das unidades. Pedidos sem unidades vão
// inteiros para UNKNOWN. O pedido conta uma vez em cada local que toca.
func LocationBreakdown(orders []domain.Order, items []domain.OrderItem, ledger OrderLedger) []domain.BreakdownRow {
	unitsByOrderLocation := make(map[string]map[string]int64)
	for _, it := range items {
		perLocation, ok := unitsByOrderLocation[it.OrderID]
		if !ok {
			perLocation = make(map[string]int64)
			unitsByOrderLocation[it.OrderID] = perLocation
		}
		perLocation[it.LocationKey()] += it.Quantity
	}

	byLocation := make(groups)
	for _, o := range orders {
		perLocation := unitsByOrderLocation[o.ID]

		locations := make([]string, 0, len(perLocation))
		var totalUnits int64
		for loc, units := range perLocation {
			locations = append(locations, loc)
			totalUnits += units
		}
		sort.Strings(locations)

		fees := ledger.Fees[o.ID]
		refunds := ledger.Refunds[o.ID]

		if totalUnits <= 0 || len(locations) == 0 {
			agg := byLocation.get(domain.UnknownKey)
			agg.orders++
			agg.units += totalUnits
			agg.revenue = agg.revenue.Add(o.Total)
			agg.fees = agg.fees.Add(fees)
			agg.refunds = agg.refunds.Add(refunds)
			continue
		}

		weights := make([]decimal.Decimal, len(locations))
		for i, loc := range locations {
			weights[i] = decimal.NewFromInt(perLocation[loc])
		}

		revenueParts := domain.Allocate(o.Total, weights)
		feeParts := domain.Allocate(fees, weights)
		refundParts := domain.Allocate(refunds, weights)

		for i, loc := range locations {
			agg := byLocation.get(loc)
			agg.orders++
			agg.units += perLocation[loc]
			agg.revenue = agg.revenue.Add(revenueParts[i])
			agg.fees = agg.fees.Add(feeParts[i])
			agg.refunds = agg.refunds.Add(refundParts[i])
		}
	}

	out := make([]domain.BreakdownRow, 0, len(byLocation))
	for _, agg := range byLocation {
		out = append(out, agg.row(true))
	}
	return out
}

// SortAndLimit ordena por receita decrescente, chave crescente no empate, e corta em limit.
func SortAndLimit(rows []domain.BreakdownRow, limit int) []domain.BreakdownRow {
	sort.SliceStable(rows, func(i, j int) bool {
		if c := rows[i].Revenue.Cmp(rows[j].Revenue); c != 0 {
			return c > 0
		}
		return rows[i].Key < rows[j].Key
	})

	if limit >= 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
