package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickwarner/planforge/internal/models"
)

func buildTestPeriods(t *testing.T, days int) ([]models.Period, models.CampaignTotals, models.CampaignInputs) {
	t.Helper()
	in := validInputs(days)
	totals, err := ComputeTotals(in)
	require.NoError(t, err)
	entries, err := EntriesFor(SelectStrategy(totals.TotalDays), totals.TotalDays)
	require.NoError(t, err)
	periods, err := BuildPeriodDrafts(42, in, totals, entries)
	require.NoError(t, err)
	return periods, totals, in
}

func TestBuildPeriodDraftsLongTerm(t *testing.T) {
	periods, totals, in := buildTestPeriods(t, 20)
	require.Len(t, periods, 5)

	// 250000 split 4/32/38/24/2 — exact shares, no rounding needed
	wantBudgets := []int64{10_000, 80_000, 95_000, 60_000, 5_000}
	var budgetSum int64
	for i, p := range periods {
		assert.Equal(t, wantBudgets[i], p.Budget, "period %s", p.Name)
		assert.Equal(t, int64(42), p.CampaignID)
		assert.Equal(t, i, p.OrderIndex)
		budgetSum += p.Budget
	}
	assert.Equal(t, totals.TotalBudget, budgetSum)

	// preheat: 10000 over 4 days
	assert.Equal(t, int64(2500), periods[0].DailyBudget)

	// contiguity: each period starts the day after the previous ends
	assert.Equal(t, models.DateOnly(in.StartDate), periods[0].StartDate)
	for i := 1; i < len(periods); i++ {
		assert.Equal(t, periods[i-1].EndDate.AddDate(0, 0, 1), periods[i].StartDate,
			"period %s must start where %s ended", periods[i].Name, periods[i-1].Name)
	}
	assert.Equal(t, models.DateOnly(in.EndDate), periods[len(periods)-1].EndDate)
}

func TestPeriodDurationsSumToTotalDays(t *testing.T) {
	for _, days := range []int{1, 2, 3, 4, 5, 6, 7, 18, 20, 30, 45, 90} {
		periods, totals, _ := buildTestPeriods(t, days)

		sum := 0
		for _, p := range periods {
			assert.Equal(t, p.Days, models.TotalDaysBetween(p.StartDate, p.EndDate),
				"declared duration must match the date range at %d days", days)
			sum += p.Days
		}
		assert.Equal(t, totals.TotalDays, sum, "at %d days", days)
	}
}

// Ceiling rounding may overshoot the campaign totals by at most one
// unit per period, and can never undershoot.
func TestPeriodBudgetDrift(t *testing.T) {
	for _, days := range []int{2, 3, 5, 7, 19, 23, 31, 45} {
		periods, totals, _ := buildTestPeriods(t, days)

		var budgetSum, trafficSum int64
		for _, p := range periods {
			budgetSum += p.Budget
			trafficSum += p.Traffic
		}

		n := int64(len(periods))
		assert.GreaterOrEqual(t, budgetSum, totals.TotalBudget, "at %d days", days)
		assert.LessOrEqual(t, budgetSum, totals.TotalBudget+n, "at %d days", days)
		assert.GreaterOrEqual(t, trafficSum, totals.TotalTraffic, "at %d days", days)
		assert.LessOrEqual(t, trafficSum, totals.TotalTraffic+n, "at %d days", days)
	}
}

// Per-day values within a period obey the same one-directional drift
// against the period's own budget.
func TestPerDayDriftWithinPeriod(t *testing.T) {
	periods, _, _ := buildTestPeriods(t, 23)

	for _, p := range periods {
		daySum := p.DailyBudget * int64(p.Days)
		assert.GreaterOrEqual(t, daySum, p.Budget, "period %s", p.Name)
		assert.LessOrEqual(t, daySum, p.Budget+int64(p.Days), "period %s", p.Name)
	}
}

func TestBuildPeriodDraftsMediumTerm(t *testing.T) {
	periods, totals, _ := buildTestPeriods(t, 7)
	require.Len(t, periods, 3)

	// 45% of 250000 = 112500, 35% = 87500, 20% = 50000
	assert.Equal(t, int64(112_500), periods[0].Budget)
	assert.Equal(t, int64(87_500), periods[1].Budget)
	assert.Equal(t, int64(50_000), periods[2].Budget)

	// traffic follows the same share as budget
	assert.Equal(t, ceilShare(totals.TotalTraffic, 45), periods[0].Traffic)
	assert.Equal(t, periods[0].BudgetPct, periods[0].TrafficPct)
}
