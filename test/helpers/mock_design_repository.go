package helpers

import (
	"context"
	"sort"
	"sync"

	"github.com/andrescamacho/shipforge-go/internal/domain/shared"
	"github.com/andrescamacho/shipforge-go/internal/domain/ship"
)

// MockDesignRepository is an in-memory test double for ship.DesignRepository
type MockDesignRepository struct {
	mu      sync.RWMutex
	designs map[string]ship.Blueprint
	saves   int
}

// NewMockDesignRepository creates a new mock design repository
func NewMockDesignRepository() *MockDesignRepository {
	return &MockDesignRepository{designs: make(map[string]ship.Blueprint)}
}

// Save stores a copy of the blueprint
func (m *MockDesignRepository) Save(ctx context.Context, bp ship.Blueprint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	bp.Components = append([]ship.InstalledComponent(nil), bp.Components...)
	m.designs[bp.ID] = bp
	m.saves++
	return nil
}

// FindByID retrieves a design by id
func (m *MockDesignRepository) FindByID(ctx context.Context, id string) (*ship.Blueprint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bp, ok := m.designs[id]
	if !ok {
		return nil, shared.NewDesignNotFoundError(id)
	}
	return &bp, nil
}

// List returns every design ordered by name
func (m *MockDesignRepository) List(ctx context.Context) ([]ship.Blueprint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ship.Blueprint, 0, len(m.designs))
	for _, bp := range m.designs {
		out = append(out, bp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes a design
func (m *MockDesignRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.designs[id]; !ok {
		return shared.NewDesignNotFoundError(id)
	}
	delete(m.designs, id)
	return nil
}

// Saves returns how many times Save was called
func (m *MockDesignRepository) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
