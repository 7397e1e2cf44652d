package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickwarner/planforge/internal/models"
)

func identify(periods []models.Period) []models.Period {
	// stand-in for the plan store assigning IDs
	for i := range periods {
		periods[i].ID = int64(100 + i)
	}
	return periods
}

func TestDistributeDaily(t *testing.T) {
	periods, totals, in := buildTestPeriods(t, 20)
	periods = identify(periods)

	rows := DistributeDaily(42, periods)
	require.Len(t, rows, totals.TotalDays)

	seen := make(map[string]bool)
	cursor := models.DateOnly(in.StartDate)
	for i, row := range rows {
		assert.Equal(t, i+1, row.DayIndex, "day index counts from 1 across the campaign")
		assert.Equal(t, cursor, row.Date, "dates must be consecutive")
		assert.False(t, seen[row.Date.Format("2006-01-02")], "duplicate date %s", row.Date)
		seen[row.Date.Format("2006-01-02")] = true
		cursor = cursor.AddDate(0, 0, 1)
	}
	assert.Equal(t, models.DateOnly(in.EndDate).AddDate(0, 0, 1), cursor)
}

func TestDailyRowsBoundToOwningPeriod(t *testing.T) {
	periods, _, _ := buildTestPeriods(t, 23)
	periods = identify(periods)

	rows := DistributeDaily(42, periods)

	byID := make(map[int64]*models.Period)
	for i := range periods {
		byID[periods[i].ID] = &periods[i]
	}

	for _, row := range rows {
		owner, ok := byID[row.PeriodID]
		require.True(t, ok, "row day %d references unknown period %d", row.DayIndex, row.PeriodID)
		assert.True(t, owner.Contains(row.Date),
			"day %d (%s) falls outside period %s [%s..%s]",
			row.DayIndex, row.Date.Format("2006-01-02"), owner.Name,
			owner.StartDate.Format("2006-01-02"), owner.EndDate.Format("2006-01-02"))
		assert.Equal(t, owner.DailyBudget, row.Budget)
		assert.Equal(t, owner.DailyTraffic, row.Traffic)
	}
}

// Every day in a period carries the identical ceiling share; the last
// day is not adjusted to absorb the rounding remainder.
func TestDailyRowsUniformWithinPeriod(t *testing.T) {
	periods, _, _ := buildTestPeriods(t, 19)
	periods = identify(periods)

	rows := DistributeDaily(42, periods)

	perPeriod := make(map[int64][]models.DailyBudget)
	for _, row := range rows {
		perPeriod[row.PeriodID] = append(perPeriod[row.PeriodID], row)
	}

	for _, p := range periods {
		group := perPeriod[p.ID]
		require.Len(t, group, p.Days)
		for _, row := range group {
			assert.Equal(t, group[0].Budget, row.Budget, "period %s", p.Name)
			assert.Equal(t, group[0].ExpectedRevenue, row.ExpectedRevenue, "period %s", p.Name)
		}
	}
}
