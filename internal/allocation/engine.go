package allocation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/patrickwarner/planforge/internal/models"
	"github.com/patrickwarner/planforge/internal/planstore"
)

// Engine runs the full allocation pipeline for one campaign.
type Engine struct {
	Store  planstore.Store
	Logger *zap.Logger
}

// NewEngine creates an allocation engine backed by the given plan store.
func NewEngine(store planstore.Store, logger *zap.Logger) *Engine {
	return &Engine{Store: store, Logger: logger}
}

// Allocate computes and persists the complete budget plan for a
// campaign. The stages run in strict sequence: totals, strategy
// selection, allocation tables, period building, daily distribution,
// funnel decomposition. The computation itself is a pure function of
// the inputs; the only side effects are the two plan-store write
// phases (periods first, then daily rows referencing period IDs).
//
// Errors are ErrInvalidInput, ErrDegenerateAllocation, or a wrapped
// store failure. No partial in-memory state is returned on error;
// cleanup of a half-written plan is the store's DeletePlan concern.
func (e *Engine) Allocate(ctx context.Context, campaignID int64, in models.CampaignInputs) (*models.Plan, error) {
	ctx, span := otel.Tracer("allocation").Start(ctx, "allocation.Allocate")
	defer span.End()

	totals, err := ComputeTotals(in)
	if err != nil {
		return nil, err
	}

	strategy := SelectStrategy(totals.TotalDays)
	span.SetAttributes(
		attribute.Int64("campaign.id", campaignID),
		attribute.String("allocation.strategy", string(strategy)),
		attribute.Int("campaign.total_days", totals.TotalDays),
	)

	entries, err := EntriesFor(strategy, totals.TotalDays)
	if err != nil {
		return nil, err
	}

	drafts, err := BuildPeriodDrafts(campaignID, in, totals, entries)
	if err != nil {
		return nil, err
	}

	periods, err := e.Store.CreatePeriods(ctx, campaignID, drafts)
	if err != nil {
		return nil, fmt.Errorf("create periods: %w", err)
	}

	dailies, err := e.Store.CreateDailyBudgets(ctx, campaignID, DistributeDaily(campaignID, periods))
	if err != nil {
		return nil, fmt.Errorf("create daily budgets: %w", err)
	}

	funnel := make([]models.FunnelAllocation, 0, len(periods))
	for _, p := range periods {
		funnel = append(funnel, AllocateFunnel(p))
	}

	e.Logger.Info("plan allocated",
		zap.Int64("campaign_id", campaignID),
		zap.String("strategy", string(strategy)),
		zap.Int("total_days", totals.TotalDays),
		zap.Int64("total_budget", totals.TotalBudget),
		zap.Int("periods", len(periods)),
	)

	return &models.Plan{
		CampaignID:   campaignID,
		Strategy:     string(strategy),
		Inputs:       in,
		Totals:       totals,
		Periods:      periods,
		DailyBudgets: dailies,
		Funnel:       funnel,
		Summary:      Summarize(totals),
	}, nil
}
