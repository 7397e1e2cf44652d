package models

import (
	"time"
)

// CampaignInputs is the caller-supplied definition of a campaign to plan.
// All monetary values share one currency unit; conversion is the caller's
// concern. The engine never mutates inputs.
type CampaignInputs struct {
	Name                 string    `json:"name"`
	StartDate            time.Time `json:"start_date"`
	EndDate              time.Time `json:"end_date"`
	TargetRevenue        float64   `json:"target_revenue"`
	TargetAOV            float64   `json:"target_aov"`
	TargetConversionRate float64   `json:"target_conversion_rate"` // percentage in (0,100]
	CostPerClick         float64   `json:"cost_per_click"`
}

// TotalDaysBetween returns the inclusive day span of [start, end].
// Both dates are truncated to midnight UTC before differencing so that
// time-of-day noise in caller-supplied timestamps cannot shift the count.
func TotalDaysBetween(start, end time.Time) int {
	s := DateOnly(start)
	e := DateOnly(end)
	return int(e.Sub(s).Hours()/24) + 1
}

// DateOnly normalizes a timestamp to midnight UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CampaignTotals holds the aggregate targets derived once per campaign.
// Counts and amounts are ceilings so computed capacity always meets or
// exceeds the stated revenue target.
type CampaignTotals struct {
	TotalDays    int   `json:"total_days"`
	TotalOrders  int64 `json:"total_orders"`
	TotalTraffic int64 `json:"total_traffic"`
	TotalBudget  int64 `json:"total_budget"`
}
