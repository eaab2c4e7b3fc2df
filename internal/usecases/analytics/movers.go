package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	"github.com/vfg2006/workspace-analytics-api/pkg/utils"
)

// SkuTotals são as somas por SKU de um período.
type SkuTotals struct {
	ProductID string
	UnitsSold int64
	Revenue   decimal.Decimal
	Refunds   decimal.Decimal
	Fees      decimal.Decimal
}

func (s SkuTotals) Value(metric domain.MoverMetric) decimal.Decimal {
	switch metric {
	case domain.MoverUnitsSold:
		return decimal.NewFromInt(s.UnitsSold)
	case domain.MoverRefunds:
		return s.Refunds
	case domain.MoverFees:
		return s.Fees
	case domain.MoverMargin:
		return s.Revenue.Sub(s.Refunds).Sub(s.Fees)
	}
	return s.Revenue
}

// AggregateBySku soma os rollups por produto agrupando pelo SKU.
func AggregateBySku(rows []domain.SkuDailyMetric) map[string]SkuTotals {
	out := make(map[string]SkuTotals)
	for _, r := range rows {
		key := r.SKUKey()
		agg, ok := out[key]
		if !ok {
			agg = SkuTotals{
				ProductID: r.ProductID,
				Revenue:   decimal.Zero,
				Refunds:   decimal.Zero,
				Fees:      decimal.Zero,
			}
		}
		agg.UnitsSold += r.UnitsSold
		agg.Revenue = agg.Revenue.Add(r.Revenue)
		agg.Refunds = agg.Refunds.Add(r.RefundsAmount)
		agg.Fees = agg.Fees.Add(r.FeesAmount)
		out[key] = agg
	}
	return out
}

// MoversRanking é uma das duas variantes do ranking: período único ou comparativo.
type MoversRanking interface {
	SortBy() string
	Items(metric domain.MoverMetric) []domain.MoverItem
}

type singlePeriod struct {
	current map[string]SkuTotals
}

// NewSinglePeriod ordena pelo valor do período.
func NewSinglePeriod(current map[string]SkuTotals) MoversRanking {
	return singlePeriod{current: current}
}

func (singlePeriod) SortBy() string { return "value" }

func (s singlePeriod) Items(metric domain.MoverMetric) []domain.MoverItem {
	items := make([]domain.MoverItem, 0, len(s.current))
	for sku, agg := range s.current {
		items = append(items, domain.MoverItem{
			SKU:       sku,
			ProductID: agg.ProductID,
			Value:     agg.Value(metric),
		})
	}
	return items
}

type comparative struct {
	current  map[string]SkuTotals
	previous map[string]SkuTotals
}

// NewComparative ordena pelo delta contra o período de comparação. SKUs
// ausentes em um dos lados contam como zero.
func NewComparative(current, previous map[string]SkuTotals) MoversRanking {
	return comparative{current: current, previous: previous}
}

func (comparative) SortBy() string { return "delta" }

func (c comparative) Items(metric domain.MoverMetric) []domain.MoverItem {
	skus := make(map[string]string)
	for sku, agg := range c.previous {
		skus[sku] = agg.ProductID
	}
	for sku, agg := range c.current {
		skus[sku] = agg.ProductID
	}

	items := make([]domain.MoverItem, 0, len(skus))
	for sku, productID := range skus {
		value := c.current[sku].Value(metric)
		previous := c.previous[sku].Value(metric)
		delta := value.Sub(previous)

		items = append(items, domain.MoverItem{
			SKU:       sku,
			ProductID: productID,
			Value:     value,
			Previous:  decimal.NewNullDecimal(previous),
			Delta:     decimal.NewNullDecimal(delta),
			DeltaPct:  utils.SafeDiv(delta, previous),
		})
	}
	return items
}

func sortKey(item domain.MoverItem, sortBy string) decimal.NullDecimal {
	if sortBy == "delta" {
		return item.Delta
	}
	return decimal.NewNullDecimal(item.Value)
}

// RankMovers ordena os itens na direção pedida: up decrescente, down crescente.
// Valores nulos ficam sempre no fim e o empate é resolvido pelo SKU.
func RankMovers(ranking MoversRanking, metric domain.MoverMetric, direction domain.Direction, limit int) []domain.MoverItem {
	items := ranking.Items(metric)
	sortBy := ranking.SortBy()

	sort.SliceStable(items, func(i, j int) bool {
		a, b := sortKey(items[i], sortBy), sortKey(items[j], sortBy)
		switch {
		case a.Valid && !b.Valid:
			return true
		case !a.Valid && b.Valid:
			return false
		case a.Valid && b.Valid:
			if c := a.Decimal.Cmp(b.Decimal); c != 0 {
				if direction == domain.DirectionDown {
					return c < 0
				}
				return c > 0
			}
		}
		return items[i].SKU < items[j].SKU
	})

	if len(items) > limit {
		items = items[:limit]
	}
	return items
}
