package allocation

import (
	"strings"

	"github.com/patrickwarner/planforge/internal/models"
)

// stageSpec and segmentSpec describe the fixed funnel breakdown for one
// period kind. Stage percentages are shares of the period budget and
// sum to 100; segment percentages are shares of their stage's budget
// and likewise sum to 100.
type segmentSpec struct {
	name string
	pct  float64
}

type stageSpec struct {
	name     string
	pct      float64
	segments []segmentSpec
}

// funnelTable keys the breakdown by period machine name. The shape of
// each entry tracks how audience targeting tightens over a campaign:
// early periods buy awareness and cold interest traffic, later periods
// concentrate spend on remarketing tiers, and the repurchase tail
// targets only users who already converted during the campaign.
var funnelTable = map[string][]stageSpec{
	"preheat": {
		{name: models.StageAwareness, pct: 30},
		{name: models.StageTraffic, pct: 70, segments: []segmentSpec{
			{name: models.SegmentPreciseInterest, pct: 100},
		}},
	},
	"launch": {
		{name: models.StageAwareness, pct: 10},
		{name: models.StageTraffic, pct: 20, segments: []segmentSpec{
			{name: models.SegmentInterest, pct: 50},
			{name: models.SegmentRemarketingTier1, pct: 50},
		}},
		{name: models.StageConversion, pct: 70, segments: []segmentSpec{
			{name: models.SegmentRemarketingTier1, pct: 100.0 * 2 / 7},
			{name: models.SegmentRemarketingTier2, pct: 100.0 * 3 / 7},
			{name: models.SegmentAutomatedBroad, pct: 100.0 * 2 / 7},
		}},
	},
	"main": {
		{name: models.StageAwareness, pct: 5},
		{name: models.StageTraffic, pct: 15, segments: []segmentSpec{
			{name: models.SegmentInterest, pct: 100.0 * 2 / 3},
			{name: models.SegmentRemarketingTier1, pct: 100.0 / 3},
		}},
		{name: models.StageConversion, pct: 80, segments: []segmentSpec{
			{name: models.SegmentRemarketingTier1, pct: 12.5},
			{name: models.SegmentRemarketingTier2, pct: 50},
			{name: models.SegmentAutomatedBroad, pct: 37.5},
		}},
	},
	"final": {
		{name: models.StageTraffic, pct: 5, segments: []segmentSpec{
			{name: models.SegmentRemarketingTier1, pct: 100},
		}},
		{name: models.StageConversion, pct: 95, segments: []segmentSpec{
			{name: models.SegmentRemarketingTier1, pct: 100.0 * 2 / 19},
			{name: models.SegmentRemarketingTier2, pct: 100.0 * 9 / 19},
			{name: models.SegmentAutomatedBroad, pct: 100.0 * 8 / 19},
		}},
	},
	"repurchase": {
		{name: models.StageConversion, pct: 100, segments: []segmentSpec{
			{name: models.SegmentConvertedRemarketing, pct: 100},
		}},
	},
}

// shortDayStages is the flat breakdown for single-day short-term
// periods, matched by the "day" marker in their machine names. No
// segment split: one-day bursts are too short to build remarketing
// audiences worth tiering.
var shortDayStages = []stageSpec{
	{name: models.StageAwareness, pct: 20},
	{name: models.StageTraffic, pct: 30},
	{name: models.StageConversion, pct: 50},
}

// AllocateFunnel decomposes one period's budget across funnel stages
// and audience segments. Pure function of the period's name and budget;
// unknown period names yield an allocation with no stages.
func AllocateFunnel(p models.Period) models.FunnelAllocation {
	specs, ok := funnelTable[p.Name]
	if !ok && strings.Contains(p.Name, "day") {
		specs = shortDayStages
	}

	out := models.FunnelAllocation{
		PeriodName:  p.Name,
		PeriodLabel: p.Label,
		Budget:      p.Budget,
		Stages:      make([]models.FunnelStage, 0, len(specs)),
	}

	for _, s := range specs {
		stage := models.FunnelStage{
			Name:   s.name,
			Pct:    s.pct,
			Budget: ceilShare(p.Budget, s.pct),
		}
		for _, seg := range s.segments {
			stage.Segments = append(stage.Segments, models.FunnelSegment{
				Name:   seg.name,
				Pct:    seg.pct,
				Budget: ceilShare(stage.Budget, seg.pct),
			})
		}
		out.Stages = append(out.Stages, stage)
	}

	return out
}
