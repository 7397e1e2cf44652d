package allocation

import (
	"errors"
	"testing"
	"time"

	"github.com/patrickwarner/planforge/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validInputs(days int) models.CampaignInputs {
	return models.CampaignInputs{
		Name:                 "spring sale",
		StartDate:            date(2026, 3, 1),
		EndDate:              date(2026, 3, days),
		TargetRevenue:        1_000_000,
		TargetAOV:            1_000,
		TargetConversionRate: 2,
		CostPerClick:         5,
	}
}

func TestComputeTotals(t *testing.T) {
	totals, err := ComputeTotals(validInputs(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if totals.TotalDays != 10 {
		t.Errorf("expected 10 days, got %d", totals.TotalDays)
	}
	if totals.TotalOrders != 1000 {
		t.Errorf("expected 1000 orders, got %d", totals.TotalOrders)
	}
	if totals.TotalTraffic != 50_000 {
		t.Errorf("expected 50000 traffic, got %d", totals.TotalTraffic)
	}
	if totals.TotalBudget != 250_000 {
		t.Errorf("expected 250000 budget, got %d", totals.TotalBudget)
	}
}

func TestComputeTotalsRoundsUp(t *testing.T) {
	in := validInputs(10)
	in.TargetRevenue = 1001
	in.TargetAOV = 100
	in.TargetConversionRate = 3
	in.CostPerClick = 2.5

	totals, err := ComputeTotals(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 1001/100 = 10.01 -> 11 orders; 11/0.03 = 366.67 -> 367 visits;
	// 367*2.5 = 917.5 -> 918 budget
	if totals.TotalOrders != 11 {
		t.Errorf("expected 11 orders, got %d", totals.TotalOrders)
	}
	if totals.TotalTraffic != 367 {
		t.Errorf("expected 367 traffic, got %d", totals.TotalTraffic)
	}
	if totals.TotalBudget != 918 {
		t.Errorf("expected 918 budget, got %d", totals.TotalBudget)
	}
}

func TestComputeTotalsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CampaignInputs)
	}{
		{"zero revenue", func(in *models.CampaignInputs) { in.TargetRevenue = 0 }},
		{"negative revenue", func(in *models.CampaignInputs) { in.TargetRevenue = -5 }},
		{"zero AOV", func(in *models.CampaignInputs) { in.TargetAOV = 0 }},
		{"zero conversion rate", func(in *models.CampaignInputs) { in.TargetConversionRate = 0 }},
		{"conversion rate above 100", func(in *models.CampaignInputs) { in.TargetConversionRate = 101 }},
		{"zero CPC", func(in *models.CampaignInputs) { in.CostPerClick = 0 }},
		{"end before start", func(in *models.CampaignInputs) { in.EndDate = in.StartDate.AddDate(0, 0, -1) }},
		{"missing dates", func(in *models.CampaignInputs) { in.StartDate, in.EndDate = time.Time{}, time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInputs(10)
			tt.mutate(&in)
			if _, err := ComputeTotals(in); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

// Sampled monotonicity: totals never decrease as revenue grows, and
// never increase as AOV or conversion rate grows.
func TestComputeTotalsMonotonicity(t *testing.T) {
	base := validInputs(10)

	var prev models.CampaignTotals
	for i, revenue := range []float64{10_000, 50_000, 100_000, 500_000, 1_000_000} {
		in := base
		in.TargetRevenue = revenue
		totals, err := ComputeTotals(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if i > 0 && (totals.TotalOrders < prev.TotalOrders || totals.TotalTraffic < prev.TotalTraffic || totals.TotalBudget < prev.TotalBudget) {
			t.Errorf("totals decreased as revenue grew: %+v -> %+v", prev, totals)
		}
		prev = totals
	}

	for i, aov := range []float64{100, 250, 500, 1000, 2500} {
		in := base
		in.TargetAOV = aov
		totals, err := ComputeTotals(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if i > 0 && totals.TotalBudget > prev.TotalBudget {
			t.Errorf("budget increased as AOV grew: %d -> %d", prev.TotalBudget, totals.TotalBudget)
		}
		prev = totals
	}

	for i, rate := range []float64{0.5, 1, 2, 5, 10} {
		in := base
		in.TargetConversionRate = rate
		totals, err := ComputeTotals(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if i > 0 && totals.TotalTraffic > prev.TotalTraffic {
			t.Errorf("traffic increased as conversion rate grew: %d -> %d", prev.TotalTraffic, totals.TotalTraffic)
		}
		prev = totals
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(models.CampaignTotals{
		TotalDays:    7,
		TotalOrders:  100,
		TotalTraffic: 5000,
		TotalBudget:  25_001,
	})

	// 25001/7 = 3571.57 -> 3572
	if summary.AvgDailyBudget != 3572 {
		t.Errorf("expected avg daily budget 3572, got %d", summary.AvgDailyBudget)
	}
	// 5000/7 = 714.29 -> 715
	if summary.AvgDailyTraffic != 715 {
		t.Errorf("expected avg daily traffic 715, got %d", summary.AvgDailyTraffic)
	}
}
