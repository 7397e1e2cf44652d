package models

// Funnel stage names. A stage classifies ad spend by buyer-journey
// intent: building awareness, generating link clicks, or driving the
// purchase itself.
const (
	StageAwareness  = "awareness"
	StageTraffic    = "traffic"
	StageConversion = "conversion"
)

// Audience segment names used within funnel stages. Remarketing tiers
// indicate increasing prior engagement depth.
const (
	SegmentPreciseInterest      = "precise_interest"
	SegmentInterest             = "interest"
	SegmentRemarketingTier1     = "remarketing_tier_1"
	SegmentRemarketingTier2     = "remarketing_tier_2"
	SegmentAutomatedBroad       = "automated_broad"
	SegmentConvertedRemarketing = "converted_remarketing"
)

// FunnelSegment is one audience slice within a funnel stage. Pct is the
// share of the stage's budget, Budget the resulting absolute amount.
type FunnelSegment struct {
	Name   string  `json:"name"`
	Pct    float64 `json:"pct"`
	Budget int64   `json:"budget"`
}

// FunnelStage is one stage of a period's funnel decomposition. Pct is
// the share of the period's budget.
type FunnelStage struct {
	Name     string          `json:"name"`
	Pct      float64         `json:"pct"`
	Budget   int64           `json:"budget"`
	Segments []FunnelSegment `json:"segments,omitempty"`
}

// FunnelAllocation decomposes one period's budget across funnel stages
// and audience segments. It is a presentation-level breakdown: it never
// feeds back into period or daily budgets.
type FunnelAllocation struct {
	PeriodName  string        `json:"period_name"`
	PeriodLabel string        `json:"period_label"`
	Budget      int64         `json:"budget"`
	Stages      []FunnelStage `json:"stages"`
}
