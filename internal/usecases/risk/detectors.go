package risk

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
	"github.com/vfg2006/workspace-analytics-api/pkg/utils"
)

// StockoutRisk estima a cobertura de cada linha de inventário a partir da
// venda média diária do produto no intervalo. O resultado não é truncado.
func StockoutRisk(rows []domain.InventoryRow, unitsByProduct map[string]int64, days, horizon int, th Thresholds) []domain.StockoutItem {
	if days < 1 {
		days = 1
	}
	calendarDays := decimal.NewFromInt(int64(days))
	horizonDays := decimal.NewFromInt(int64(horizon))

	items := make([]domain.StockoutItem, 0, len(rows))
	for _, row := range rows {
		avg := decimal.NewFromInt(unitsByProduct[row.ProductID]).Div(calendarDays)

		var daysLeft decimal.NullDecimal
		if avg.IsPositive() {
			daysLeft = decimal.NewNullDecimal(decimal.NewFromInt(row.OnHand).Div(avg))
		}

		severity := domain.SeverityLow
		switch {
		case row.OnHand <= 0:
			severity = domain.SeverityHigh
		case daysLeft.Valid && daysLeft.Decimal.LessThanOrEqual(th.StockoutHighDaysLeft):
			severity = domain.SeverityHigh
		case daysLeft.Valid && daysLeft.Decimal.LessThanOrEqual(horizonDays):
			severity = domain.SeverityMedium
		}

		if daysLeft.Valid {
			daysLeft.Decimal = daysLeft.Decimal.Round(4)
		}

		items = append(items, domain.StockoutItem{
			SKU:           row.SKU,
			ProductID:     row.ProductID,
			LocationCode:  row.LocationCode,
			OnHand:        row.OnHand,
			AvgDailyUnits: avg.Round(4),
			DaysLeft:      daysLeft,
			Risk:          severity,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Risk != b.Risk {
			return a.Risk.Score() > b.Risk.Score()
		}
		if a.DaysLeft.Valid != b.DaysLeft.Valid {
			return a.DaysLeft.Valid
		}
		if a.DaysLeft.Valid && !a.DaysLeft.Decimal.Equal(b.DaysLeft.Decimal) {
			return a.DaysLeft.Decimal.LessThan(b.DaysLeft.Decimal)
		}
		if a.SKU != b.SKU {
			return a.SKU < b.SKU
		}
		return a.LocationCode < b.LocationCode
	})

	return items
}

// LowStockRisk lista as linhas com 0 < onHand < threshold.
func LowStockRisk(rows []domain.InventoryRow, threshold int) []domain.LowStockItem {
	limit := int64(threshold)
	half := (limit + 1) / 2

	items := make([]domain.LowStockItem, 0)
	for _, row := range rows {
		if row.OnHand <= 0 || row.OnHand >= limit {
			continue
		}

		severity := domain.SeverityMedium
		if row.OnHand <= half {
			severity = domain.SeverityHigh
		}

		items = append(items, domain.LowStockItem{
			SKU:          row.SKU,
			ProductID:    row.ProductID,
			LocationCode: row.LocationCode,
			OnHand:       row.OnHand,
			Threshold:    threshold,
			Risk:         severity,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.OnHand != b.OnHand {
			return a.OnHand < b.OnHand
		}
		if a.SKU != b.SKU {
			return a.SKU < b.SKU
		}
		return a.LocationCode < b.LocationCode
	})

	return items
}

// PeriodMoney é a receita de pedidos de um intervalo e os lançamentos vinculados a eles.
type PeriodMoney struct {
	Revenue decimal.Decimal
	Refunds decimal.Decimal
	Fees    decimal.Decimal
}

func NewPeriodMoney(orders []domain.Order, fees, refunds []domain.LedgerEntry) PeriodMoney {
	m := PeriodMoney{Revenue: decimal.Zero, Refunds: decimal.Zero, Fees: decimal.Zero}
	for _, o := range orders {
		m.Revenue = m.Revenue.Add(o.Total)
	}
	for _, f := range fees {
		m.Fees = m.Fees.Add(f.Amount)
	}
	for _, r := range refunds {
		m.Refunds = m.Refunds.Add(r.Amount)
	}
	return m
}

// Rate devolve reembolsos ou tarifas sobre a receita; nulo sem receita.
func (m PeriodMoney) Rate(kind domain.SpikeKind) decimal.NullDecimal {
	if kind == domain.SpikeFee {
		return utils.SafeDiv(m.Fees, m.Revenue)
	}
	return utils.SafeDiv(m.Refunds, m.Revenue)
}

func (m PeriodMoney) MarginPct() decimal.NullDecimal {
	return utils.SafeDiv(m.Revenue.Sub(m.Refunds).Sub(m.Fees), m.Revenue)
}

// RateSpike compara a taxa do tipo entre os dois períodos.
func RateSpike(kind domain.SpikeKind, cur, prev PeriodMoney, th Thresholds) domain.RateSpikeRisk {
	rate := domain.ComputeDelta(cur.Rate(kind), prev.Rate(kind))
	medium, high := th.SpikeLimits(kind)

	severity := domain.SeverityLow
	if rate.Delta.Valid {
		switch {
		case rate.Delta.Decimal.GreaterThan(high):
			severity = domain.SeverityHigh
		case rate.Delta.Decimal.GreaterThan(medium):
			severity = domain.SeverityMedium
		}
	}

	return domain.RateSpikeRisk{
		Kind: kind,
		Rate: rate,
		Risk: severity,
	}
}

// MarginLeakage classifica a margem do período atual. Com prev nil o delta é nulo.
func MarginLeakage(cur PeriodMoney, prev *PeriodMoney, th Thresholds) domain.MarginLeakageRisk {
	var previous decimal.NullDecimal
	if prev != nil {
		previous = prev.MarginPct()
	}
	marginPct := domain.ComputeDelta(cur.MarginPct(), previous)

	severity := domain.SeverityLow
	if marginPct.Value.Valid {
		switch {
		case marginPct.Value.Decimal.LessThan(th.MarginHigh):
			severity = domain.SeverityHigh
		case marginPct.Value.Decimal.LessThan(th.MarginMedium):
			severity = domain.SeverityMedium
		}
	}

	return domain.MarginLeakageRisk{
		Revenue:       cur.Revenue,
		RefundsAmount: cur.Refunds,
		FeesAmount:    cur.Fees,
		MarginPct:     marginPct,
		Drivers: []domain.RiskDriver{
			{Label: "refundsAmount", Impact: cur.Refunds.Neg()},
			{Label: "feesAmount", Impact: cur.Fees.Neg()},
		},
		Risk: severity,
	}
}

// IssueInput são os pedidos do intervalo e os lançamentos criados nele.
type IssueInput struct {
	Orders  []domain.Order
	Fees    []domain.LedgerEntry
	Refunds []domain.LedgerEntry
}

// OrderIssues aplica as verificações de qualidade na ordem fixa dos tipos.
// Cada issue traz a contagem e até sampleSize ids de pedido.
func OrderIssues(in IssueInput, sampleSize int) []domain.OrderIssue {
	byID := make(map[string]domain.Order, len(in.Orders))
	for _, o := range in.Orders {
		byID[o.ID] = o
	}

	var missingItems, negativeMoney []string
	for _, o := range in.Orders {
		if o.ItemCount == 0 {
			missingItems = append(missingItems, o.ID)
		}
		if o.HasNegativeMoney() {
			negativeMoney = append(negativeMoney, o.ID)
		}
	}

	feesWithoutOrder := countUnlinked(in.Fees)
	refundsWithoutOrder := countUnlinked(in.Refunds)

	mismatch := newIDSet()
	for _, entries := range [][]domain.LedgerEntry{in.Fees, in.Refunds} {
		for _, e := range entries {
			if e.OrderID == nil {
				continue
			}
			o, ok := byID[*e.OrderID]
			if !ok || o.Currency == "" || e.Currency == "" {
				continue
			}
			if o.Currency != e.Currency {
				mismatch.add(o.ID)
			}
		}
	}

	refundSums := make(map[string]decimal.Decimal)
	refundOrder := newIDSet()
	for _, r := range in.Refunds {
		if r.OrderID == nil {
			continue
		}
		refundSums[*r.OrderID] = refundSums[*r.OrderID].Add(r.Amount)
		refundOrder.add(*r.OrderID)
	}
	var exceeding []string
	for _, id := range refundOrder.ids {
		o, ok := byID[id]
		if !ok {
			continue
		}
		if refundSums[id].GreaterThan(o.Total) {
			exceeding = append(exceeding, id)
		}
	}

	issues := make([]domain.OrderIssue, 0)
	push := func(t domain.IssueType, sev domain.Severity, count int, ids []string, msg string) {
		if count == 0 {
			return
		}
		issues = append(issues, domain.OrderIssue{
			Type:      t,
			Severity:  sev,
			Count:     count,
			SampleIDs: sample(ids, sampleSize),
			Message:   msg,
		})
	}

	push(domain.IssueOrdersMissingItems, domain.SeverityHigh, len(missingItems), missingItems,
		"Orders exist in the range but have zero OrderItem rows.")
	push(domain.IssueFeesWithoutOrder, domain.SeverityMedium, feesWithoutOrder, nil,
		"Fee records exist in the range but are not linked to any Order (orderId is null).")
	push(domain.IssueRefundsWithoutOrder, domain.SeverityMedium, refundsWithoutOrder, nil,
		"Refund records exist in the range but are not linked to any Order (orderId is null).")
	push(domain.IssueNegativeMoneyFields, domain.SeverityHigh, len(negativeMoney), negativeMoney,
		"One or more orders have negative total/subtotal/tax/shipping.")
	push(domain.IssueCurrencyMismatch, domain.SeverityHigh, len(mismatch.ids), mismatch.ids,
		"Order currency does not match linked fee/refund currency for one or more orders.")
	push(domain.IssueRefundsExceedOrderTotal, domain.SeverityHigh, len(exceeding), exceeding,
		"Sum of refunds in the range exceeds the order total for one or more orders.")

	return issues
}

// CombineOps resume issues, ruptura e estoque baixo em um risco operacional.
func CombineOps(issues domain.OrderIssues, stockout domain.StockoutRisk, lowStock domain.LowStockRisk) (domain.Severity, []domain.OpsSignal) {
	highIssues := issues.HighCount()
	highStockout := len(stockout.HighItems())
	highLowStock := len(lowStock.HighItems())

	signals := []domain.OpsSignal{
		opsSignal(domain.SignalOrderIssuesHigh, highIssues, domain.SeverityHigh,
			"High severity order issues detected in range.", "No high severity order issues."),
		opsSignal(domain.SignalStockoutHigh, highStockout, domain.SeverityHigh,
			"Stockouts detected (onHand = 0).", "No stockouts detected."),
		opsSignal(domain.SignalLowStockHigh, highLowStock, domain.SeverityMedium,
			"Very low stock detected for some items.", "No very low stock detected."),
	}

	switch {
	case highIssues > 0 || highStockout > 0:
		return domain.SeverityHigh, signals
	case highLowStock > 0:
		return domain.SeverityMedium, signals
	}
	return domain.SeverityLow, signals
}

func opsSignal(name domain.OpsSignalName, value int, whenPositive domain.Severity, positive, negative string) domain.OpsSignal {
	if value > 0 {
		return domain.OpsSignal{Signal: name, Severity: whenPositive, Value: value, Message: positive}
	}
	return domain.OpsSignal{Signal: name, Severity: domain.SeverityLow, Value: 0, Message: negative}
}

func countUnlinked(entries []domain.LedgerEntry) int {
	total := 0
	for _, e := range entries {
		if e.OrderID == nil || *e.OrderID == "" {
			total++
		}
	}
	return total
}

func sample(ids []string, size int) []string {
	out := make([]string, 0, size)
	for i := 0; i < len(ids) && i < size; i++ {
		out = append(out, ids[i])
	}
	return out
}

// idSet preserva a ordem de inserção.
type idSet struct {
	seen map[string]struct{}
	ids  []string
}

func newIDSet() *idSet {
	return &idSet{seen: make(map[string]struct{})}
}

func (s *idSet) add(id string) {
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.ids = append(s.ids, id)
}
