// planforge MCP server: exposes the allocation engine to AI assistants
// as tools. preview_plan computes a full plan against an in-memory
// store, so nothing is persisted; funnel_breakdown decomposes a single
// period budget. Both are pure computations.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/patrickwarner/planforge/internal/allocation"
	"github.com/patrickwarner/planforge/internal/models"
	"github.com/patrickwarner/planforge/internal/observability"
	"github.com/patrickwarner/planforge/internal/planstore"
)

type PreviewPlanInput struct {
	Name                 string  `json:"name"`
	StartDate            string  `json:"start_date"`
	EndDate              string  `json:"end_date"`
	TargetRevenue        float64 `json:"target_revenue"`
	TargetAOV            float64 `json:"target_aov"`
	TargetConversionRate float64 `json:"target_conversion_rate"`
	CostPerClick         float64 `json:"cost_per_click"`
}

type PreviewPlanOutput struct {
	Plan *models.Plan `json:"plan"`
}

type FunnelBreakdownInput struct {
	PeriodName string `json:"period_name"`
	Budget     int64  `json:"budget"`
}

type FunnelBreakdownOutput struct {
	Allocation models.FunnelAllocation `json:"allocation"`
}

type planServer struct {
	logger *zap.Logger
}

// PreviewPlan runs the full allocation pipeline against a throwaway
// in-memory store. Campaign and user IDs are synthetic.
func (s *planServer) PreviewPlan(ctx context.Context, req *mcp.CallToolRequest, input PreviewPlanInput) (*mcp.CallToolResult, PreviewPlanOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	startDate, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		return nil, PreviewPlanOutput{}, fmt.Errorf("start_date must be YYYY-MM-DD: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", input.EndDate)
	if err != nil {
		return nil, PreviewPlanOutput{}, fmt.Errorf("end_date must be YYYY-MM-DD: %w", err)
	}

	engine := allocation.NewEngine(planstore.NewMemory(), s.logger)
	plan, err := engine.Allocate(ctx, 1, models.CampaignInputs{
		Name:                 input.Name,
		StartDate:            startDate,
		EndDate:              endDate,
		TargetRevenue:        input.TargetRevenue,
		TargetAOV:            input.TargetAOV,
		TargetConversionRate: input.TargetConversionRate,
		CostPerClick:         input.CostPerClick,
	})
	if err != nil {
		return nil, PreviewPlanOutput{}, err
	}

	s.logger.Info("previewed plan",
		zap.String("strategy", plan.Strategy),
		zap.Int("total_days", plan.Totals.TotalDays))
	return nil, PreviewPlanOutput{Plan: plan}, nil
}

// FunnelBreakdown decomposes one period's budget across funnel stages.
func (s *planServer) FunnelBreakdown(ctx context.Context, req *mcp.CallToolRequest, input FunnelBreakdownInput) (*mcp.CallToolResult, FunnelBreakdownOutput, error) {
	if input.Budget <= 0 {
		return nil, FunnelBreakdownOutput{}, fmt.Errorf("budget must be positive")
	}
	alloc := allocation.AllocateFunnel(models.Period{
		Name:   input.PeriodName,
		Label:  input.PeriodName,
		Budget: input.Budget,
	})
	if len(alloc.Stages) == 0 {
		return nil, FunnelBreakdownOutput{}, fmt.Errorf("unknown period name %q", input.PeriodName)
	}
	return nil, FunnelBreakdownOutput{Allocation: alloc}, nil
}

func main() {
	logger, err := observability.InitLogger("planforge-mcp")
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	srv := &planServer{logger: logger}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "planforge",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "preview_plan",
		Description: "Compute a campaign budget plan (periods, daily budgets, funnel breakdown) without persisting it",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Campaign name",
				},
				"start_date": map[string]interface{}{
					"type":        "string",
					"format":      "date",
					"description": "Campaign start date (YYYY-MM-DD)",
				},
				"end_date": map[string]interface{}{
					"type":        "string",
					"format":      "date",
					"description": "Campaign end date (YYYY-MM-DD)",
				},
				"target_revenue": map[string]interface{}{
					"type":        "number",
					"description": "Revenue target for the campaign",
				},
				"target_aov": map[string]interface{}{
					"type":        "number",
					"description": "Average order value",
				},
				"target_conversion_rate": map[string]interface{}{
					"type":        "number",
					"description": "Conversion rate percentage in (0,100]",
				},
				"cost_per_click": map[string]interface{}{
					"type":        "number",
					"description": "Cost per click",
				},
			},
			"required": []string{"name", "start_date", "end_date", "target_revenue", "target_aov", "target_conversion_rate", "cost_per_click"},
		},
	}, srv.PreviewPlan)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "funnel_breakdown",
		Description: "Decompose a period budget across funnel stages and audience segments",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"period_name": map[string]interface{}{
					"type":        "string",
					"description": "Period machine name (preheat, launch, main, final, repurchase, or a short-term day_* name)",
				},
				"budget": map[string]interface{}{
					"type":        "integer",
					"description": "Period budget in whole units",
				},
			},
			"required": []string{"period_name", "budget"},
		},
	}, srv.FunnelBreakdown)

	logger.Info("MCP Server running via stdio")
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
