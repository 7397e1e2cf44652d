package allocation

import (
	"fmt"

	"github.com/patrickwarner/planforge/internal/models"
)

// BuildPeriodDrafts materializes allocation entries into Period drafts
// with absolute date ranges and per-period metric values. Drafts carry
// no IDs; the plan store assigns those at creation time.
//
// Date ranges are contiguous: each entry starts the day after the
// previous one ended, the first at the campaign start date. Budget,
// traffic, orders and revenue shares all round up, so per-period sums
// may overshoot the campaign totals by at most one unit per period.
func BuildPeriodDrafts(campaignID int64, in models.CampaignInputs, totals models.CampaignTotals, entries []Entry) ([]models.Period, error) {
	periods := make([]models.Period, 0, len(entries))
	cursor := models.DateOnly(in.StartDate)

	for i, e := range entries {
		if e.Days < 1 {
			return nil, fmt.Errorf("%w: entry %q spans %d days", ErrDegenerateAllocation, e.Name, e.Days)
		}

		budget := ceilShare(totals.TotalBudget, e.BudgetPct)
		traffic := ceilShare(totals.TotalTraffic, e.BudgetPct)

		p := models.Period{
			CampaignID: campaignID,
			Name:       e.Name,
			Label:      e.Label,
			OrderIndex: i,
			StartDate:  cursor,
			EndDate:    cursor.AddDate(0, 0, e.Days-1),
			Days:       e.Days,

			Budget:     budget,
			BudgetPct:  e.BudgetPct,
			Traffic:    traffic,
			TrafficPct: e.BudgetPct,

			DailyBudget:  ceilDiv(budget, e.Days),
			DailyTraffic: ceilDiv(traffic, e.Days),

			ExpectedOrders:  ceilShare(totals.TotalOrders, e.BudgetPct),
			ExpectedRevenue: ceil64(in.TargetRevenue * e.BudgetPct / 100),
		}

		periods = append(periods, p)
		cursor = p.EndDate.AddDate(0, 0, 1)
	}

	return periods, nil
}
