package allocation

import (
	"github.com/patrickwarner/planforge/internal/models"
)

// DistributeDaily expands periods into one DailyBudget draft per
// calendar day, in chronological order. The day index counts from 1
// across the whole campaign. Every day within a period receives the
// identical ceiling share of the period's metrics; the last day is not
// adjusted to absorb rounding remainder, so per-day sums may overshoot
// the period total but never undershoot it.
//
// Rows are bound to their owning period by the period's store-assigned
// ID, taken directly from the Period passed in. Callers must therefore
// hand over periods that the plan store has already identified.
func DistributeDaily(campaignID int64, periods []models.Period) []models.DailyBudget {
	var total int
	for i := range periods {
		total += periods[i].Days
	}

	rows := make([]models.DailyBudget, 0, total)
	dayIndex := 0

	for i := range periods {
		p := &periods[i]
		orders := ceilDiv(p.ExpectedOrders, p.Days)
		revenue := ceilDiv(p.ExpectedRevenue, p.Days)

		for d := 0; d < p.Days; d++ {
			dayIndex++
			rows = append(rows, models.DailyBudget{
				CampaignID:      campaignID,
				PeriodID:        p.ID,
				Date:            models.DateOnly(p.StartDate).AddDate(0, 0, d),
				DayIndex:        dayIndex,
				Budget:          p.DailyBudget,
				Traffic:         p.DailyTraffic,
				ExpectedOrders:  orders,
				ExpectedRevenue: revenue,
			})
		}
	}

	return rows
}
