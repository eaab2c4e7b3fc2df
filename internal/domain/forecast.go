package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ForecastMethod identifica o algoritmo de previsão.
const ForecastMethod = "naive_daily_avg_v1"

type ForecastRequest struct {
	WorkspaceID string
	Range       DateRange
	HorizonDays *int
	SKU         *string
	ProductID   *string
}

type ForecastValues struct {
	Revenue decimal.Decimal     `json:"revenue"`
	Orders  decimal.NullDecimal `json:"orders"`
	Units   decimal.Decimal     `json:"units"`
}

type ForecastPoint struct {
	Day string `json:"day"`
	ForecastValues
}

type TrainingWindow struct {
	DaysInRange  int `json:"daysInRange"`
	DaysWithData int `json:"daysWithData"`
}

type TrainingTotals struct {
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int64           `json:"orders"`
	Units   int64           `json:"units"`
}

type ForecastAssumptions struct {
	TrainingWindow TrainingWindow  `json:"trainingWindow"`
	TrainingTotals *TrainingTotals `json:"trainingTotals,omitempty"`
	Notes          []string        `json:"notes"`
}

type ForecastResult struct {
	ID          string              `json:"id"`
	WorkspaceID string              `json:"workspaceId"`
	Level       ForecastLevel       `json:"level"`
	SKU         *string             `json:"sku"`
	ProductID   *string             `json:"productId"`
	Method      string              `json:"method"`
	Range       DateRange           `json:"range"`
	HorizonDays int                 `json:"horizonDays"`
	AvgDaily    ForecastValues      `json:"avgDaily"`
	Totals      ForecastValues      `json:"totals"`
	Daily       []ForecastPoint     `json:"daily"`
	Assumptions ForecastAssumptions `json:"assumptions"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// Forecast é a linha persistida de uma previsão.
type Forecast struct {
	ID          string          `db:"id"`
	WorkspaceID string          `db:"workspace_id"`
	ProductID   *string         `db:"product_id"`
	Level       ForecastLevel   `db:"level"`
	Method      string          `db:"method"`
	RangeFrom   time.Time       `db:"range_from"`
	RangeTo     time.Time       `db:"range_to"`
	HorizonDays int             `db:"horizon_days"`
	Assumptions json.RawMessage `db:"assumptions_json"`
	Result      json.RawMessage `db:"result_json"`
	CreatedAt   time.Time       `db:"created_at"`
}
