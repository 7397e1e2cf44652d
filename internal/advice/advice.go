// Package advice turns a computed plan into human-readable guidance.
// AI-backed generation is an external collaborator; this package only
// defines the narrow interface and a deterministic template fallback so
// the API always has text to return.
package advice

import (
	"context"
	"fmt"
	"strings"

	"github.com/patrickwarner/planforge/internal/models"
)

// Generator produces advisory text for a computed plan.
type Generator interface {
	PlanAdvice(ctx context.Context, plan *models.Plan) (string, error)
}

// TemplateGenerator renders a fixed-format summary with no external
// calls. It is the default Generator.
type TemplateGenerator struct{}

func (TemplateGenerator) PlanAdvice(_ context.Context, plan *models.Plan) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "%d-day campaign, %s strategy. ", plan.Totals.TotalDays, strategyText(plan.Strategy))
	fmt.Fprintf(&b, "To reach revenue %.0f you need %d orders from %d visits, budget %d (avg %d/day).\n",
		plan.Inputs.TargetRevenue, plan.Totals.TotalOrders, plan.Totals.TotalTraffic,
		plan.Totals.TotalBudget, plan.Summary.AvgDailyBudget)

	for _, p := range plan.Periods {
		fmt.Fprintf(&b, "- %s (%s, %d days): budget %d (%.1f%%), %d/day, expect %d orders.\n",
			p.Label, p.Name, p.Days, p.Budget, p.BudgetPct, p.DailyBudget, p.ExpectedOrders)
	}

	return b.String(), nil
}

func strategyText(strategy string) string {
	switch strategy {
	case "short_term":
		return "short burst"
	case "medium_term":
		return "one-week ramp"
	case "long_term":
		return "sustained five-phase"
	default:
		return strategy
	}
}
