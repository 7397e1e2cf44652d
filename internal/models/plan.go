package models

import (
	"time"
)

// Period is a named, contiguous span of campaign days carrying its own
// share of the campaign budget and traffic. Periods for one campaign are
// non-overlapping and their durations sum to the campaign's total days.
//
// ID is assigned by the plan store at creation time; a draft Period has
// ID zero until then.
type Period struct {
	ID         int64     `json:"id"`
	CampaignID int64     `json:"campaign_id"`
	Name       string    `json:"name"`  // machine key, e.g. "launch"
	Label      string    `json:"label"` // display label
	OrderIndex int       `json:"order_index"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Days       int       `json:"days"`

	Budget     int64   `json:"budget"`
	BudgetPct  float64 `json:"budget_pct"`
	Traffic    int64   `json:"traffic"`
	TrafficPct float64 `json:"traffic_pct"`

	DailyBudget  int64 `json:"daily_budget"`
	DailyTraffic int64 `json:"daily_traffic"`

	ExpectedOrders  int64 `json:"expected_orders"`
	ExpectedRevenue int64 `json:"expected_revenue"`
}

// Contains reports whether d falls within the period's date range.
func (p *Period) Contains(d time.Time) bool {
	day := DateOnly(d)
	return !day.Before(DateOnly(p.StartDate)) && !day.After(DateOnly(p.EndDate))
}

// DailyBudget is one calendar day's slice of a period. DayIndex is
// 1-based and counts from the campaign start, not the period start.
type DailyBudget struct {
	ID         int64     `json:"id"`
	CampaignID int64     `json:"campaign_id"`
	PeriodID   int64     `json:"period_id"`
	Date       time.Time `json:"date"`
	DayIndex   int       `json:"day_index"`

	Budget          int64 `json:"budget"`
	Traffic         int64 `json:"traffic"`
	ExpectedOrders  int64 `json:"expected_orders"`
	ExpectedRevenue int64 `json:"expected_revenue"`
}

// PlanSummary is the headline view of a computed plan.
type PlanSummary struct {
	TotalBudget     int64 `json:"total_budget"`
	TotalTraffic    int64 `json:"total_traffic"`
	TotalOrders     int64 `json:"total_orders"`
	TotalDays       int   `json:"total_days"`
	AvgDailyBudget  int64 `json:"avg_daily_budget"`
	AvgDailyTraffic int64 `json:"avg_daily_traffic"`
}

// Plan is the complete output of one allocation run.
type Plan struct {
	CampaignID   int64              `json:"campaign_id"`
	Strategy     string             `json:"strategy"`
	Inputs       CampaignInputs     `json:"inputs"`
	Totals       CampaignTotals     `json:"totals"`
	Periods      []Period           `json:"periods"`
	DailyBudgets []DailyBudget      `json:"daily_budgets"`
	Funnel       []FunnelAllocation `json:"funnel"`
	Summary      PlanSummary        `json:"summary"`
}

// StoredPlan is what the plan store returns for a persisted campaign.
type StoredPlan struct {
	CampaignID   int64         `json:"campaign_id"`
	Periods      []Period      `json:"periods"`
	DailyBudgets []DailyBudget `json:"daily_budgets"`
}
