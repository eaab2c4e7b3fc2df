package domain

import "github.com/shopspring/decimal"

type StockoutItem struct {
	SKU           string              `json:"sku"`
	ProductID     string              `json:"productId"`
	LocationCode  string              `json:"locationCode"`
	OnHand        int64               `json:"onHand"`
	AvgDailyUnits decimal.Decimal     `json:"avgDailyUnits"`
	DaysLeft      decimal.NullDecimal `json:"daysLeft"`
	Risk          Severity            `json:"risk"`
}

type StockoutRisk struct {
	WorkspaceID string         `json:"workspaceId"`
	Range       DateRange      `json:"range"`
	HorizonDays int            `json:"horizonDays"`
	Limit       int            `json:"limit"`
	Items       []StockoutItem `json:"items"`
	Note        string         `json:"note"`
}

// HighItems devolve os itens de risco alto.
func (r StockoutRisk) HighItems() []StockoutItem {
	out := make([]StockoutItem, 0)
	for _, it := range r.Items {
		if it.Risk == SeverityHigh {
			out = append(out, it)
		}
	}
	return out
}

type LowStockItem struct {
	SKU          string   `json:"sku"`
	ProductID    string   `json:"productId"`
	LocationCode string   `json:"locationCode"`
	OnHand       int64    `json:"onHand"`
	Threshold    int      `json:"threshold"`
	Risk         Severity `json:"risk"`
}

type LowStockRisk struct {
	WorkspaceID string         `json:"workspaceId"`
	Threshold   int            `json:"threshold"`
	Limit       int            `json:"limit"`
	Items       []LowStockItem `json:"items"`
	Note        string         `json:"note"`
}

func (r LowStockRisk) HighItems() []LowStockItem {
	out := make([]LowStockItem, 0)
	for _, it := range r.Items {
		if it.Risk == SeverityHigh {
			out = append(out, it)
		}
	}
	return out
}

// SpikeKind distingue a taxa comparada em um RateSpikeRisk.
type SpikeKind string

const (
	SpikeRefund SpikeKind = "refund"
	SpikeFee    SpikeKind = "fee"
)

// RateSpikeRisk compara uma taxa (reembolso ou tarifa) entre dois períodos.
type RateSpikeRisk struct {
	WorkspaceID string     `json:"workspaceId"`
	Kind        SpikeKind  `json:"kind"`
	Range       DateRange  `json:"range"`
	CompareTo   DateRange  `json:"compareTo"`
	Rate        DeltaValue `json:"rate"`
	Risk        Severity   `json:"risk"`
	Note        string     `json:"note"`
}

type RiskDriver struct {
	Label  string          `json:"label"`
	Impact decimal.Decimal `json:"impact"`
}

type MarginLeakageRisk struct {
	WorkspaceID   string          `json:"workspaceId"`
	Range         DateRange       `json:"range"`
	CompareTo     *DateRange      `json:"compareTo"`
	Revenue       decimal.Decimal `json:"revenue"`
	RefundsAmount decimal.Decimal `json:"refundsAmount"`
	FeesAmount    decimal.Decimal `json:"feesAmount"`
	MarginPct     DeltaValue      `json:"marginPct"`
	Drivers       []RiskDriver    `json:"drivers"`
	Risk          Severity        `json:"risk"`
	Note          string          `json:"note"`
}

// IssueType identifica um problema de qualidade de dados em pedidos.
type IssueType string

const (
	IssueOrdersMissingItems      IssueType = "orders_missing_items"
	IssueFeesWithoutOrder        IssueType = "fees_without_order"
	IssueRefundsWithoutOrder     IssueType = "refunds_without_order"
	IssueNegativeMoneyFields     IssueType = "negative_money_fields"
	IssueCurrencyMismatch        IssueType = "currency_mismatch"
	IssueRefundsExceedOrderTotal IssueType = "refunds_exceed_order_total"
)

type OrderIssue struct {
	Type      IssueType `json:"type"`
	Severity  Severity  `json:"severity"`
	Count     int       `json:"count"`
	SampleIDs []string  `json:"sampleIds"`
	Message   string    `json:"message"`
}

type OrderIssues struct {
	WorkspaceID string       `json:"workspaceId"`
	Range       DateRange    `json:"range"`
	Limit       int          `json:"limit"`
	Issues      []OrderIssue `json:"issues"`
	Note        string       `json:"note"`
}

// HighCount conta os tipos de issue de severidade alta.
func (o OrderIssues) HighCount() int {
	total := 0
	for _, issue := range o.Issues {
		if issue.Severity == SeverityHigh {
			total++
		}
	}
	return total
}

// OpsSignalName identifica um sinal do risco operacional combinado.
type OpsSignalName string

const (
	SignalOrderIssuesHigh OpsSignalName = "order_issues_high"
	SignalStockoutHigh    OpsSignalName = "stockout_high"
	SignalLowStockHigh    OpsSignalName = "low_stock_high"
)

type OpsSignal struct {
	Signal   OpsSignalName `json:"signal"`
	Severity Severity      `json:"severity"`
	Value    int           `json:"value"`
	Message  string        `json:"message"`
}

type OpsRisk struct {
	WorkspaceID string      `json:"workspaceId"`
	Range       DateRange   `json:"range"`
	Risk        Severity    `json:"risk"`
	Signals     []OpsSignal `json:"signals"`
	Note        string      `json:"note"`
}

func (o OpsRisk) Signal(name OpsSignalName) (OpsSignal, bool) {
	for _, s := range o.Signals {
		if s.Signal == name {
			return s, true
		}
	}
	return OpsSignal{}, false
}
