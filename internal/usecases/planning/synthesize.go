package planning

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/workspace-analytics-api/internal/domain"
)

const (
	maxTopRisks      = 7
	maxOpportunities = 7
	maxEvidenceItems = 5
	planDays         = 7

	expectedOutcome = "Clear, prioritized actions tied to measured risks using only internal data."
)

var (
	feeRateOpportunity    = decimal.RequireFromString("0.02")
	feeRateHighImpact     = decimal.RequireFromString("0.04")
	refundRateOpportunity = decimal.RequireFromString("0.01")
	refundRateHighImpact  = decimal.RequireFromString("0.03")
	marginOpportunity     = decimal.RequireFromString("0.60")
	marginHighImpact      = decimal.RequireFromString("0.40")

	hundred = decimal.NewFromInt(100)
)

// dayActions são as ações de cada dia do plano, na ordem.
var dayActions = [planDays][]string{
	{
		"Review ops risk signals and confirm which issues are real vs data artifacts.",
		"List all stocked out and very low stock SKUs by location and confirm restock plan.",
	},
	{
		"Investigate refund drivers for the range and tag top causes (damaged, wrong item, late delivery).",
		"Investigate fee drivers and confirm whether they are payment, platform or shipping related.",
	},
	{"Fix high severity order issues first (missing items, currency mismatch, refunds exceeding total)."},
	{"Prioritize restock for stockout and low stock SKUs with highest velocity."},
	{"Re-run KPI summary and compare to prior period to verify improvement direction."},
	{"Create simple checks to prevent recurring issues (validation rules, ingestion checks, mapping sanity checks)."},
	{"Document what changed and what remains unknown, then decide next automation workstream."},
}

var dataSources = []string{"DailyMetric", "SkuDailyMetric", "Inventory", "Order", "OrderItem", "Fee", "Refund"}

var dataNotes = []string{
	"No external web data",
	"UTC day boundaries",
	"Orders filtered by orderedAt when present, else createdAt",
	"Refund and fee sums filtered by createdAt and linked to orderId in range",
}

var deliberatelyIgnored = []string{
	"No external API sync",
	"No webhook signature verification",
	"No retry or dead letter handling beyond basics",
	"No idempotency beyond database unique constraints",
	"No metrics backfill jobs",
	"No user or password management",
	"No role enforcement beyond the workspace guard",
	"No rate limiting",
	"No audit logging",
	"No key rotation",
	"No in-process caching",
}

// Inputs reúne os resultados já calculados que alimentam a síntese.
type Inputs struct {
	WorkspaceID string
	Range       domain.DateRange
	CompareTo   domain.DateRange
	KPI         domain.KPISummary
	Ops         domain.OpsRisk
	Stockout    domain.StockoutRisk
	LowStock    domain.LowStockRisk
	Margin      domain.MarginLeakageRisk
	RefundSpike domain.RateSpikeRisk
	FeeSpike    domain.RateSpikeRisk
}

// Synthesize monta os blocos do plano. Não acessa o banco.
func Synthesize(in Inputs) domain.PlanningOutput {
	stockoutHigh := firstN(in.Stockout.HighItems(), maxEvidenceItems)
	lowStockHigh := firstN(in.LowStock.HighItems(), maxEvidenceItems)

	return domain.PlanningOutput{
		WorkspaceID:   in.WorkspaceID,
		Range:         in.Range,
		StatusBullets: statusBullets(in.Range, in.KPI.Totals),
		TopRisks:      topRisks(in, stockoutHigh, lowStockHigh),
		Opportunities: opportunities(in, stockoutHigh, lowStockHigh),
		Next7DaysPlan: weekPlan(in.Range),
		Assumptions:   assumptions(in),
	}
}

func statusBullets(rng domain.DateRange, t domain.KPITotals) []string {
	return []string{
		fmt.Sprintf("Range: %s to %s (inclusive, UTC).", rng.FromString(), rng.ToString()),
		fmt.Sprintf("Revenue: %s | Orders: %d | Units: %d", fmtMoney(t.Revenue), t.Orders, t.Units),
		fmt.Sprintf("Refund rate: %s | Fee rate: %s", fmtRatio(t.RefundRate), fmtRatio(t.FeeRate)),
		fmt.Sprintf("Gross margin: %s | GM amount: %s", fmtPercent(t.GrossMarginPercent), fmtMoney(t.GrossMarginAmount)),
		fmt.Sprintf("Stockouts (count): %d | Low stock (count): %d", t.StockoutsCount, t.LowStockCount),
	}
}

func topRisks(in Inputs, stockoutHigh []domain.StockoutItem, lowStockHigh []domain.LowStockItem) []domain.PlanningRisk {
	compare := fmt.Sprintf("%s to %s", in.CompareTo.FromString(), in.CompareTo.ToString())

	messages := make([]string, 0, len(in.Ops.Signals))
	for _, s := range in.Ops.Signals {
		messages = append(messages, s.Message)
	}

	risks := []domain.PlanningRisk{{
		Title:    "Ops risk (combined signals)",
		Severity: in.Ops.Risk,
		Why:      strings.Join(messages, " "),
		Evidence: map[string]any{"opsRisk": in.Ops},
	}}

	if len(stockoutHigh) > 0 {
		risks = append(risks, domain.PlanningRisk{
			Title:    "Stockouts detected",
			Severity: domain.SeverityHigh,
			Why:      "One or more SKUs are stocked out or about to. This can cause missed sales and delayed fulfillment.",
			Evidence: map[string]any{"items": stockoutHigh},
		})
	}

	if len(lowStockHigh) > 0 {
		risks = append(risks, domain.PlanningRisk{
			Title:    "Very low stock detected",
			Severity: domain.SeverityMedium,
			Why:      "Some SKUs are below the low stock threshold and may stock out soon.",
			Evidence: map[string]any{"items": lowStockHigh, "threshold": in.LowStock.Threshold},
		})
	}

	risks = append(risks,
		domain.PlanningRisk{
			Title:    "Margin leakage risk",
			Severity: in.Margin.Risk,
			Why:      fmt.Sprintf("Margin percent is %s for the range. Drivers are refunds and fees.", fmtRatio(in.Margin.MarginPct.Value)),
			Evidence: map[string]any{"marginPct": in.Margin.MarginPct, "drivers": in.Margin.Drivers, "compareTo": in.CompareTo},
		},
		domain.PlanningRisk{
			Title:    "Refund spike risk",
			Severity: in.RefundSpike.Risk,
			Why:      fmt.Sprintf("Refund rate is %s vs prior period %s.", fmtRatio(in.RefundSpike.Rate.Value), compare),
			Evidence: map[string]any{"refundRate": in.RefundSpike.Rate, "compareTo": in.CompareTo},
		},
		domain.PlanningRisk{
			Title:    "Fee spike risk",
			Severity: in.FeeSpike.Risk,
			Why:      fmt.Sprintf("Fee rate is %s vs prior period %s.", fmtRatio(in.FeeSpike.Rate.Value), compare),
			Evidence: map[string]any{"feeRate": in.FeeSpike.Rate, "compareTo": in.CompareTo},
		},
	)

	sort.SliceStable(risks, func(i, j int) bool {
		return risks[i].Severity.Score() > risks[j].Severity.Score()
	})

	return firstN(risks, maxTopRisks)
}

func opportunities(in Inputs, stockoutHigh []domain.StockoutItem, lowStockHigh []domain.LowStockItem) []domain.PlanningOpportunity {
	totals := in.KPI.Totals
	out := make([]domain.PlanningOpportunity, 0)

	if r := totals.FeeRate; r.Valid && r.Decimal.GreaterThan(feeRateOpportunity) {
		out = append(out, domain.PlanningOpportunity{
			Title:    "Reduce fee rate",
			Impact:   impact(r.Decimal.GreaterThan(feeRateHighImpact)),
			Why:      fmt.Sprintf("Fee rate is %s. Even small reductions improve margin directly.", fmtRatio(r)),
			Evidence: map[string]any{"feeRate": r, "feesAmount": totals.FeesAmount, "revenue": totals.Revenue},
		})
	}

	if r := totals.RefundRate; r.Valid && r.Decimal.GreaterThan(refundRateOpportunity) {
		out = append(out, domain.PlanningOpportunity{
			Title:    "Reduce refunds",
			Impact:   impact(r.Decimal.GreaterThan(refundRateHighImpact)),
			Why:      fmt.Sprintf("Refund rate is %s. Reducing refunds improves margin and cash flow.", fmtRatio(r)),
			Evidence: map[string]any{"refundRate": r, "refundsAmount": totals.RefundsAmount, "revenue": totals.Revenue},
		})
	}

	if len(stockoutHigh) > 0 || len(lowStockHigh) > 0 {
		out = append(out, domain.PlanningOpportunity{
			Title:    "Restock fast-moving SKUs",
			Impact:   impact(len(stockoutHigh) > 0),
			Why:      "Restocking prevents missed orders and improves service levels.",
			Evidence: map[string]any{"stockouts": stockoutHigh, "lowStock": lowStockHigh},
		})
	}

	if s, ok := in.Ops.Signal(domain.SignalOrderIssuesHigh); ok && s.Severity == domain.SeverityHigh {
		out = append(out, domain.PlanningOpportunity{
			Title:    "Fix high severity order issues",
			Impact:   domain.SeverityHigh,
			Why:      "High severity issues create downstream reporting and reconciliation problems. Fixing them improves trust in numbers.",
			Evidence: map[string]any{"opsSignals": in.Ops.Signals},
		})
	}

	if m := in.Margin.MarginPct.Value; m.Valid && m.Decimal.LessThan(marginOpportunity) {
		out = append(out, domain.PlanningOpportunity{
			Title:    "Improve margin percent",
			Impact:   impact(m.Decimal.LessThan(marginHighImpact)),
			Why:      fmt.Sprintf("Margin percent is %s. Reducing refunds and fees is the fastest lever.", fmtRatio(m)),
			Evidence: map[string]any{"marginPct": in.Margin.MarginPct, "drivers": in.Margin.Drivers},
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Impact.Score() > out[j].Impact.Score()
	})

	return firstN(out, maxOpportunities)
}

func weekPlan(rng domain.DateRange) []domain.PlanningDay {
	days := rng.NextDays(planDays)
	plan := make([]domain.PlanningDay, 0, planDays)
	for i, day := range days {
		plan = append(plan, domain.PlanningDay{
			Day:             day,
			Actions:         append([]string(nil), dayActions[i]...),
			ExpectedOutcome: expectedOutcome,
		})
	}
	return plan
}

func assumptions(in Inputs) domain.PlanningAssumptions {
	return domain.PlanningAssumptions{
		NoExternalWebData: true,
		DateRange:         in.Range.Echo(),
		DataScope: domain.DataScope{
			WorkspaceScoped: true,
			WorkspaceID:     in.WorkspaceID,
			Sources:         append([]string(nil), dataSources...),
			Notes:           append([]string(nil), dataNotes...),
		},
		CompareRange: domain.CompareRangeAssumption{
			From: in.CompareTo.FromString(),
			To:   in.CompareTo.ToString(),
			Note: "Compare range is the previous period with the same length as the primary range, shifted back by N days.",
		},
		DeliberatelyIgnored: append([]string(nil), deliberatelyIgnored...),
	}
}

func impact(high bool) domain.Severity {
	if high {
		return domain.SeverityHigh
	}
	return domain.SeverityMedium
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// fmtRatio formata uma razão 0..1 como percentual com uma casa.
func fmtRatio(v decimal.NullDecimal) string {
	if !v.Valid {
		return "n/a"
	}
	return v.Decimal.Mul(hundred).StringFixed(1) + "%"
}

// fmtPercent formata um valor já na escala percentual.
func fmtPercent(v decimal.NullDecimal) string {
	if !v.Valid {
		return "n/a"
	}
	return v.Decimal.StringFixed(1) + "%"
}

func fmtMoney(v decimal.Decimal) string {
	return v.StringFixed(2)
}
