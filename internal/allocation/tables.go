// Package allocation implements the campaign budget and funnel
// allocation engine. Given a campaign's revenue target, average order
// value, conversion rate, cost per click and date range it derives
// aggregate targets, partitions the calendar days into named periods,
// expands those periods into per-day budget rows and decomposes each
// period's budget across marketing-funnel stages.
//
// The allocation tables in this file are the heart of the engine. Each
// duration strategy maps to an ordered list of entries; an entry names
// a period, its share of the total budget in percent, and how many days
// it spans. Entry order is timeline order.
package allocation

import (
	"fmt"
	"math"
)

// Entry is one abstract allocation slot before dates and absolute
// amounts are attached.
type Entry struct {
	Name      string  // machine key, stable across releases
	Label     string  // display label
	BudgetPct float64 // share of total budget, in percent
	Days      int
}

// Long-term rebalancing: campaigns beyond 20 days shift budget share
// from the launch and final phases toward the sustained main phase, at
// 0.8 percentage points per extra day, capped at 20 points so no phase
// share can go negative.
const (
	longTermBaselineDays  = 20
	extraBudgetPerDay     = 0.008
	maxExtraBudgetRatio   = 0.20
	longTermFixedDays     = 17 // preheat 4 + launch 3 + final 3 + repurchase 7
	longTermPreheatDays   = 4
	longTermLaunchDays    = 3
	longTermFinalDays     = 3
	longTermRepurchaseDay = 7
)

// EntriesFor returns the ordered allocation entries for a strategy and
// day count. ErrDegenerateAllocation is returned when the policy cannot
// give every period at least one day.
func EntriesFor(strategy Strategy, totalDays int) ([]Entry, error) {
	switch strategy {
	case StrategyShortTerm:
		return shortTermEntries(totalDays)
	case StrategyMediumTerm:
		return mediumTermEntries(totalDays)
	case StrategyLongTerm:
		return longTermEntries(totalDays)
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
}

// shortTermEntries uses explicit per-day-count tables. Every entry
// spans exactly one day, so the machine names all carry a "day" marker;
// the funnel allocator keys off that marker.
func shortTermEntries(totalDays int) ([]Entry, error) {
	switch totalDays {
	case 1:
		return []Entry{
			{Name: "day_full_push", Label: "全天衝刺", BudgetPct: 100, Days: 1},
		}, nil
	case 2:
		return []Entry{
			{Name: "day_1_push", Label: "首日衝刺", BudgetPct: 60, Days: 1},
			{Name: "day_closing", Label: "收尾日", BudgetPct: 40, Days: 1},
		}, nil
	case 3:
		return []Entry{
			{Name: "day_opening", Label: "開場日", BudgetPct: 50, Days: 1},
			{Name: "day_main_push", Label: "主推日", BudgetPct: 30, Days: 1},
			{Name: "day_closing", Label: "收尾日", BudgetPct: 20, Days: 1},
		}, nil
	default:
		return nil, fmt.Errorf("%w: short-term table has no entry for %d days", ErrDegenerateAllocation, totalDays)
	}
}

// mediumTermEntries splits 4-7 day campaigns into launch/main/final.
// Launch takes the ceiling and main the floor of 40% of the days; final
// gets the remainder. For 4..7 days the remainder is always at least
// one day, but the guard stays in case the table is ever retuned.
func mediumTermEntries(totalDays int) ([]Entry, error) {
	launchDays := int(math.Ceil(float64(totalDays) * 0.4))
	mainDays := int(math.Floor(float64(totalDays) * 0.4))
	finalDays := totalDays - launchDays - mainDays
	if finalDays < 1 {
		return nil, fmt.Errorf("%w: medium-term final period would span %d days", ErrDegenerateAllocation, finalDays)
	}
	return []Entry{
		{Name: "launch", Label: "啟動期", BudgetPct: 45, Days: launchDays},
		{Name: "main", Label: "主推期", BudgetPct: 35, Days: mainDays},
		{Name: "final", Label: "收尾期", BudgetPct: 20, Days: finalDays},
	}, nil
}

// longTermEntries builds the five-period plan for campaigns of eight or
// more days. The fixed phases alone consume 17 days, so the main phase
// only exists from 18 days up; shorter long-term campaigns are rejected
// as degenerate rather than silently producing a negative span.
func longTermEntries(totalDays int) ([]Entry, error) {
	mainDays := totalDays - longTermFixedDays
	if mainDays < 1 {
		return nil, fmt.Errorf("%w: long-term fixed phases need %d days but campaign has %d", ErrDegenerateAllocation, longTermFixedDays+1, totalDays)
	}

	extraDays := totalDays - longTermBaselineDays
	if extraDays < 0 {
		extraDays = 0
	}
	ratio := math.Min(maxExtraBudgetRatio, float64(extraDays)*extraBudgetPerDay)

	return []Entry{
		{Name: "preheat", Label: "預熱期", BudgetPct: 4, Days: longTermPreheatDays},
		{Name: "launch", Label: "起跑期", BudgetPct: 32 - 60*ratio, Days: longTermLaunchDays},
		{Name: "main", Label: "主推期", BudgetPct: 38 + 100*ratio, Days: mainDays},
		{Name: "final", Label: "收尾期", BudgetPct: 24 - 40*ratio, Days: longTermFinalDays},
		{Name: "repurchase", Label: "回購期", BudgetPct: 2, Days: longTermRepurchaseDay},
	}, nil
}
