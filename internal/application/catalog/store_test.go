package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/shipforge-go/internal/application/catalog"
	"github.com/andrescamacho/shipforge-go/internal/application/mediator"
	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
	"github.com/andrescamacho/shipforge-go/internal/domain/component"
)

type stubLoader struct {
	result *catalog.LoadResult
	err    error
}

func (l *stubLoader) Load(ctx context.Context) (*catalog.LoadResult, error) {
	return l.result, l.err
}

func sampleResult(t *testing.T) *catalog.LoadResult {
	t.Helper()
	battery, err := component.NewDefinition("battery", "Battery", 10, 5, []ability.Ability{
		ability.ResourceStorage{Resource: "energy", Capacity: 50},
	})
	require.NoError(t, err)
	hull, err := component.NewDefinition("hull", "Hull", 100, 50, nil)
	require.NoError(t, err)
	defs, err := component.NewCatalog([]*component.Definition{battery, hull})
	require.NoError(t, err)
	return &catalog.LoadResult{
		Components: defs,
		Skipped:    []catalog.SkippedEntry{{ID: "broken", Reason: "mass cannot be negative"}},
		Source:     "test.yaml",
	}
}

func TestStore_ReloadPublishesNewVersion(t *testing.T) {
	// Arrange
	store := catalog.NewStore()
	require.Equal(t, 0, store.Current().Version)

	// Act
	snap, err := store.Reload(context.Background(), &stubLoader{result: sampleResult(t)})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Version)
	assert.Same(t, snap, store.Current())
	assert.Equal(t, 2, snap.Components.Len())
	assert.Equal(t, 0, snap.Classes.Len())
	assert.Len(t, snap.Skipped, 1)
}

func TestStore_FailedReloadKeepsCurrentSnapshot(t *testing.T) {
	store := catalog.NewStore()
	first, err := store.Reload(context.Background(), &stubLoader{result: sampleResult(t)})
	require.NoError(t, err)

	_, err = store.Reload(context.Background(), &stubLoader{err: errors.New("parse error")})

	assert.Error(t, err)
	assert.Same(t, first, store.Current())
}

func TestQueryHandler(t *testing.T) {
	store := catalog.NewStore()
	_, err := store.Reload(context.Background(), &stubLoader{result: sampleResult(t)})
	require.NoError(t, err)

	m := mediator.NewMediator()
	handler := catalog.NewQueryHandler(store)
	require.NoError(t, mediator.RegisterHandler[*catalog.ListComponentsQuery](m, handler))
	require.NoError(t, mediator.RegisterHandler[*catalog.GetComponentQuery](m, handler))

	resp, err := m.Send(context.Background(), &catalog.ListComponentsQuery{AbilityKind: "ResourceStorage"})
	require.NoError(t, err)
	list := resp.(*catalog.ListComponentsResponse)
	require.Len(t, list.Components, 1)
	assert.Equal(t, "battery", list.Components[0].ID())

	_, err = m.Send(context.Background(), &catalog.GetComponentQuery{ComponentID: "missing"})
	assert.Error(t, err)
}
