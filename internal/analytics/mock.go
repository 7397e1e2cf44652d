package analytics

import (
	"context"

	"github.com/patrickwarner/planforge/internal/models"
)

// Mock is a no-op Service for testing and for deployments without an
// analytics sink.
type Mock struct {
	Created []int64
	Deleted []int64
}

func (m *Mock) RecordPlanCreated(_ context.Context, _ string, campaignID int64, _ string, _ models.CampaignTotals) error {
	m.Created = append(m.Created, campaignID)
	return nil
}

func (m *Mock) RecordPlanDeleted(_ context.Context, _ string, campaignID int64) error {
	m.Deleted = append(m.Deleted, campaignID)
	return nil
}
