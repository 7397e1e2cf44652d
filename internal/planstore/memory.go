package planstore

import (
	"context"
	"sync"

	"github.com/patrickwarner/planforge/internal/models"
)

// Memory is an in-process Store used by tests and by the MCP preview
// binary, where plans are computed but never durably persisted. IDs are
// serial per store instance.
type Memory struct {
	mu       sync.RWMutex
	nextID   int64
	owners   map[int64]int64  // campaignID -> userID
	names    map[int64]string // campaignID -> campaign name
	periods  map[int64][]models.Period
	dailies  map[int64][]models.DailyBudget
}

// NewMemory creates an empty in-memory plan store.
func NewMemory() *Memory {
	return &Memory{
		nextID:  1,
		owners:  make(map[int64]int64),
		names:   make(map[int64]string),
		periods: make(map[int64][]models.Period),
		dailies: make(map[int64][]models.DailyBudget),
	}
}

func (m *Memory) EnsureCampaign(_ context.Context, campaignID, userID int64, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.owners[campaignID] = userID
	m.names[campaignID] = name
	return nil
}

func (m *Memory) CreatePeriods(_ context.Context, campaignID int64, drafts []models.Period) ([]models.Period, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	created := make([]models.Period, len(drafts))
	for i, d := range drafts {
		d.ID = m.nextID
		m.nextID++
		d.CampaignID = campaignID
		created[i] = d
	}
	m.periods[campaignID] = append(m.periods[campaignID], created...)
	return created, nil
}

func (m *Memory) CreateDailyBudgets(_ context.Context, campaignID int64, drafts []models.DailyBudget) ([]models.DailyBudget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	created := make([]models.DailyBudget, len(drafts))
	for i, d := range drafts {
		d.ID = m.nextID
		m.nextID++
		d.CampaignID = campaignID
		created[i] = d
	}
	m.dailies[campaignID] = append(m.dailies[campaignID], created...)
	return created, nil
}

func (m *Memory) GetPlan(_ context.Context, campaignID, userID int64) (*models.StoredPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	owner, ok := m.owners[campaignID]
	if !ok || owner != userID {
		return nil, ErrNotFound
	}
	periods, ok := m.periods[campaignID]
	if !ok || len(periods) == 0 {
		return nil, ErrNotFound
	}

	out := &models.StoredPlan{CampaignID: campaignID}
	out.Periods = append(out.Periods, periods...)
	out.DailyBudgets = append(out.DailyBudgets, m.dailies[campaignID]...)
	return out, nil
}

func (m *Memory) DeletePlan(_ context.Context, campaignID, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	owner, ok := m.owners[campaignID]
	if !ok || owner != userID {
		return false, nil
	}
	_, had := m.periods[campaignID]
	delete(m.periods, campaignID)
	delete(m.dailies, campaignID)
	return had, nil
}
