// Package planstore persists computed budget plans. The engine writes
// through the Store interface and never invents identifiers: periods
// and daily rows get their IDs from the store at creation time.
package planstore

import (
	"context"
	"errors"

	"github.com/patrickwarner/planforge/internal/models"
)

// ErrNotFound is returned by GetPlan when no plan exists for the
// campaign, or the campaign is not owned by the given user.
var ErrNotFound = errors.New("plan not found")

// Store is the plan persistence contract.
//
// CreatePeriods and CreateDailyBudgets are the engine's two write
// phases: periods must be durably created first because daily rows
// reference a period ID. Both return the stored records with IDs
// assigned, preserving input order. Each implementation runs each phase
// atomically; the engine does not retry on failure.
type Store interface {
	// EnsureCampaign records campaign ownership so later reads and
	// deletes can be scoped to the owning user.
	EnsureCampaign(ctx context.Context, campaignID, userID int64, name string) error

	CreatePeriods(ctx context.Context, campaignID int64, drafts []models.Period) ([]models.Period, error)
	CreateDailyBudgets(ctx context.Context, campaignID int64, drafts []models.DailyBudget) ([]models.DailyBudget, error)

	GetPlan(ctx context.Context, campaignID, userID int64) (*models.StoredPlan, error)
	// DeletePlan removes the campaign's periods and daily rows. The
	// boolean reports whether anything was deleted.
	DeletePlan(ctx context.Context, campaignID, userID int64) (bool, error)
}
