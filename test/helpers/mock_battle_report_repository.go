package helpers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/andrescamacho/shipforge-go/internal/domain/combat"
)

// MockBattleReportRepository is an in-memory test double for combat.ReportRepository
type MockBattleReportRepository struct {
	mu      sync.RWMutex
	reports map[string]*combat.Report
}

// NewMockBattleReportRepository creates a new mock report repository
func NewMockBattleReportRepository() *MockBattleReportRepository {
	return &MockBattleReportRepository{reports: make(map[string]*combat.Report)}
}

func (m *MockBattleReportRepository) Save(ctx context.Context, report *combat.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[report.ID] = report
	return nil
}

func (m *MockBattleReportRepository) FindByID(ctx context.Context, id string) (*combat.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reports[id]
	if !ok {
		return nil, fmt.Errorf("battle report not found: %s", id)
	}
	return r, nil
}

func (m *MockBattleReportRepository) List(ctx context.Context, limit int) ([]*combat.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*combat.Report, 0, len(m.reports))
	for _, r := range m.reports {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
