package domain

import (
	"encoding/json"
	"time"
)

type PlanningRisk struct {
	Title    string         `json:"title"`
	Severity Severity       `json:"severity"`
	Why      string         `json:"why"`
	Evidence map[string]any `json:"evidence"`
}

type PlanningOpportunity struct {
	Title    string         `json:"title"`
	Impact   Severity       `json:"impact"`
	Why      string         `json:"why"`
	Evidence map[string]any `json:"evidence"`
}

type PlanningDay struct {
	Day             string   `json:"day"`
	Actions         []string `json:"actions"`
	ExpectedOutcome string   `json:"expectedOutcome"`
}

type DataScope struct {
	WorkspaceScoped bool     `json:"workspaceScoped"`
	WorkspaceID     string   `json:"workspaceId"`
	Sources         []string `json:"sources"`
	Notes           []string `json:"notes"`
}

type CompareRangeAssumption struct {
	From string `json:"from"`
	To   string `json:"to"`
	Note string `json:"note"`
}

type PlanningAssumptions struct {
	NoExternalWebData   bool                   `json:"noExternalWebData"`
	DateRange           RangeEcho              `json:"dateRange"`
	DataScope           DataScope              `json:"dataScope"`
	CompareRange        CompareRangeAssumption `json:"compareRangeUsedForSpikeChecks"`
	DeliberatelyIgnored []string               `json:"deliberatelyIgnored"`
}

type PlanningOutput struct {
	WorkspaceID   string                `json:"workspaceId"`
	Range         DateRange             `json:"range"`
	StatusBullets []string              `json:"statusBullets"`
	TopRisks      []PlanningRisk        `json:"topRisks"`
	Opportunities []PlanningOpportunity `json:"opportunities"`
	Next7DaysPlan []PlanningDay         `json:"next7DaysPlan"`
	Assumptions   PlanningAssumptions   `json:"assumptions"`
}

// PlanStatusDraft é o único status atribuído na criação.
const PlanStatusDraft = "draft"

// Plan é um PlanningOutput persistido.
type Plan struct {
	ID          string          `db:"id" json:"id"`
	WorkspaceID string          `db:"workspace_id" json:"workspaceId"`
	Status      string          `db:"status" json:"status"`
	Title       *string         `db:"title" json:"title"`
	RangeFrom   time.Time       `db:"range_from" json:"-"`
	RangeTo     time.Time       `db:"range_to" json:"-"`
	Result      json.RawMessage `db:"result_json" json:"result"`
	Assumptions json.RawMessage `db:"assumptions_json" json:"assumptions"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}

// PlanFilter filtra a listagem por createdAt. CreatedTo é exclusivo.
type PlanFilter struct {
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Page        int
	PageSize    int
}

func (f PlanFilter) Offset() uint64 {
	return uint64((f.Page - 1) * f.PageSize)
}

type PlanList struct {
	Items    []Plan `json:"items"`
	Total    int64  `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}
