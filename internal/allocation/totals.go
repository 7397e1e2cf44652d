package allocation

import (
	"fmt"
	"math"

	"github.com/patrickwarner/planforge/internal/models"
)

// ceil64 rounds v up to the next whole unit. The epsilon keeps float
// error on exact products (250000 * 0.2 can land at 50000.0000000001)
// from bumping an exact result to the next integer.
func ceil64(v float64) int64 {
	return int64(math.Ceil(v - 1e-9))
}

// ceilShare returns the ceiling of pct percent of total.
func ceilShare(total int64, pct float64) int64 {
	return ceil64(float64(total) * pct / 100)
}

// ceilDiv returns the ceiling of v divided by parts.
func ceilDiv(v int64, parts int) int64 {
	return ceil64(float64(v) / float64(parts))
}

// ComputeTotals derives the aggregate campaign targets from the inputs.
// Every derivation rounds up: computed traffic and budget must always
// suffice to reach the revenue target, never undershoot it.
func ComputeTotals(in models.CampaignInputs) (models.CampaignTotals, error) {
	if in.TargetRevenue <= 0 {
		return models.CampaignTotals{}, fmt.Errorf("%w: target revenue must be positive, got %v", ErrInvalidInput, in.TargetRevenue)
	}
	if in.TargetAOV <= 0 {
		return models.CampaignTotals{}, fmt.Errorf("%w: target AOV must be positive, got %v", ErrInvalidInput, in.TargetAOV)
	}
	if in.TargetConversionRate <= 0 || in.TargetConversionRate > 100 {
		return models.CampaignTotals{}, fmt.Errorf("%w: conversion rate must be in (0,100], got %v", ErrInvalidInput, in.TargetConversionRate)
	}
	if in.CostPerClick <= 0 {
		return models.CampaignTotals{}, fmt.Errorf("%w: cost per click must be positive, got %v", ErrInvalidInput, in.CostPerClick)
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return models.CampaignTotals{}, fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}
	if models.DateOnly(in.EndDate).Before(models.DateOnly(in.StartDate)) {
		return models.CampaignTotals{}, fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}

	orders := ceil64(in.TargetRevenue / in.TargetAOV)
	traffic := ceil64(float64(orders) / (in.TargetConversionRate / 100))
	budget := ceil64(float64(traffic) * in.CostPerClick)

	return models.CampaignTotals{
		TotalDays:    models.TotalDaysBetween(in.StartDate, in.EndDate),
		TotalOrders:  orders,
		TotalTraffic: traffic,
		TotalBudget:  budget,
	}, nil
}

// Summarize builds the headline summary for a set of totals.
func Summarize(totals models.CampaignTotals) models.PlanSummary {
	return models.PlanSummary{
		TotalBudget:     totals.TotalBudget,
		TotalTraffic:    totals.TotalTraffic,
		TotalOrders:     totals.TotalOrders,
		TotalDays:       totals.TotalDays,
		AvgDailyBudget:  ceilDiv(totals.TotalBudget, totals.TotalDays),
		AvgDailyTraffic: ceilDiv(totals.TotalTraffic, totals.TotalDays),
	}
}
