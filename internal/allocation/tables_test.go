package allocation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortTermEntries(t *testing.T) {
	tests := []struct {
		days  int
		pcts  []float64
		names []string
	}{
		{1, []float64{100}, []string{"day_full_push"}},
		{2, []float64{60, 40}, []string{"day_1_push", "day_closing"}},
		{3, []float64{50, 30, 20}, []string{"day_opening", "day_main_push", "day_closing"}},
	}

	for _, tt := range tests {
		entries, err := EntriesFor(StrategyShortTerm, tt.days)
		require.NoError(t, err)
		require.Len(t, entries, tt.days)

		for i, e := range entries {
			assert.Equal(t, tt.names[i], e.Name)
			assert.Equal(t, tt.pcts[i], e.BudgetPct)
			assert.Equal(t, 1, e.Days, "short-term entries span exactly one day")
			assert.True(t, strings.Contains(e.Name, "day"), "short-term names carry the day marker")
		}
	}
}

func TestMediumTermEntries(t *testing.T) {
	for days := 4; days <= 7; days++ {
		entries, err := EntriesFor(StrategyMediumTerm, days)
		require.NoError(t, err)
		require.Len(t, entries, 3)

		assert.Equal(t, "launch", entries[0].Name)
		assert.Equal(t, 45.0, entries[0].BudgetPct)
		assert.Equal(t, "main", entries[1].Name)
		assert.Equal(t, 35.0, entries[1].BudgetPct)
		assert.Equal(t, "final", entries[2].Name)
		assert.Equal(t, 20.0, entries[2].BudgetPct)

		total := 0
		for _, e := range entries {
			assert.GreaterOrEqual(t, e.Days, 1)
			total += e.Days
		}
		assert.Equal(t, days, total, "durations must sum to totalDays")
	}

	// 7 days: launch ceil(2.8)=3, main floor(2.8)=2, final 2
	entries, err := EntriesFor(StrategyMediumTerm, 7)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 2}, []int{entries[0].Days, entries[1].Days, entries[2].Days})
}

func TestLongTermEntriesBaseline(t *testing.T) {
	// 20 days: no extra days, no rebalancing
	entries, err := EntriesFor(StrategyLongTerm, 20)
	require.NoError(t, err)
	require.Len(t, entries, 5)

	wantNames := []string{"preheat", "launch", "main", "final", "repurchase"}
	wantPcts := []float64{4, 32, 38, 24, 2}
	wantDays := []int{4, 3, 3, 3, 7}
	for i, e := range entries {
		assert.Equal(t, wantNames[i], e.Name)
		assert.InDelta(t, wantPcts[i], e.BudgetPct, 1e-9)
		assert.Equal(t, wantDays[i], e.Days)
	}
}

func TestLongTermEntriesRebalanced(t *testing.T) {
	// 45 days: 25 extra days, ratio capped at 0.20
	entries, err := EntriesFor(StrategyLongTerm, 45)
	require.NoError(t, err)
	require.Len(t, entries, 5)

	wantPcts := []float64{4, 20, 58, 16, 2}
	var sum float64
	for i, e := range entries {
		assert.InDelta(t, wantPcts[i], e.BudgetPct, 1e-9)
		sum += e.BudgetPct
	}
	assert.InDelta(t, 100, sum, 1e-9)
	assert.Equal(t, 45-17, entries[2].Days, "main absorbs the variable days")
}

func TestLongTermBudgetSharesAlwaysSumTo100(t *testing.T) {
	for days := 18; days <= 120; days++ {
		entries, err := EntriesFor(StrategyLongTerm, days)
		require.NoError(t, err)

		var pctSum float64
		daySum := 0
		for _, e := range entries {
			assert.Greater(t, e.BudgetPct, 0.0, "no phase share may go negative at %d days", days)
			pctSum += e.BudgetPct
			daySum += e.Days
		}
		assert.InDelta(t, 100, pctSum, 1e-9, "at %d days", days)
		assert.Equal(t, days, daySum, "at %d days", days)
	}
}

func TestLongTermDegenerate(t *testing.T) {
	// The long-term tier starts at 8 days but its fixed phases consume
	// 17, so anything below 18 days cannot give the main phase a day.
	for days := 8; days <= 17; days++ {
		_, err := EntriesFor(StrategyLongTerm, days)
		if !errors.Is(err, ErrDegenerateAllocation) {
			t.Errorf("expected ErrDegenerateAllocation at %d days, got %v", days, err)
		}
	}

	entries, err := EntriesFor(StrategyLongTerm, 18)
	require.NoError(t, err)
	assert.Equal(t, 1, entries[2].Days)
}
