package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/shipforge-go/internal/adapters/persistence"
	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
	"github.com/andrescamacho/shipforge-go/internal/domain/component"
	"github.com/andrescamacho/shipforge-go/internal/domain/shared"
	"github.com/andrescamacho/shipforge-go/internal/domain/ship"
	"github.com/andrescamacho/shipforge-go/test/helpers"
)

func newDesignRepo(t *testing.T) *persistence.GormDesignRepository {
	clock := shared.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	return persistence.NewGormDesignRepository(helpers.NewTestDB(t), clock)
}

func TestDesignRepository_SaveAndFindPreservesOrderAndModifiers(t *testing.T) {
	// Arrange
	repo := newDesignRepo(t)
	ctx := context.Background()
	bp := ship.Blueprint{
		ID:        "d-1",
		Name:      "Aurora",
		ClassName: "Frigate",
		Components: []ship.InstalledComponent{
			{InstanceID: "i-1", ComponentID: "reactor", Layer: component.LayerCore},
			{InstanceID: "i-2", ComponentID: "laser", Layer: component.LayerOuter, Modifiers: ability.Modifiers{ability.StatDamage: 1.25}},
			{InstanceID: "i-3", ComponentID: "armor-plate", Layer: component.LayerArmor},
		},
	}

	// Act
	require.NoError(t, repo.Save(ctx, bp))
	found, err := repo.FindByID(ctx, "d-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, bp, *found)
}

func TestDesignRepository_SaveReplacesComponents(t *testing.T) {
	repo := newDesignRepo(t)
	ctx := context.Background()
	bp := ship.Blueprint{ID: "d-1", Name: "Aurora", ClassName: "Unclassed", Components: []ship.InstalledComponent{
		{InstanceID: "i-1", ComponentID: "reactor", Layer: component.LayerCore},
		{InstanceID: "i-2", ComponentID: "laser", Layer: component.LayerOuter},
	}}
	require.NoError(t, repo.Save(ctx, bp))

	bp.Name = "Aurora II"
	bp.Components = bp.Components[:1]
	require.NoError(t, repo.Save(ctx, bp))

	found, err := repo.FindByID(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, "Aurora II", found.Name)
	require.Len(t, found.Components, 1)
	assert.Equal(t, "i-1", found.Components[0].InstanceID)
}

func TestDesignRepository_ListAndDelete(t *testing.T) {
	repo := newDesignRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, ship.Blueprint{ID: "d-2", Name: "Zephyr", ClassName: "Unclassed"}))
	require.NoError(t, repo.Save(ctx, ship.Blueprint{ID: "d-1", Name: "Aurora", ClassName: "Unclassed"}))

	designs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, designs, 2)
	assert.Equal(t, "Aurora", designs[0].Name)

	require.NoError(t, repo.Delete(ctx, "d-1"))
	_, err = repo.FindByID(ctx, "d-1")
	var notFound *shared.DesignNotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.ErrorAs(t, repo.Delete(ctx, "d-1"), &notFound)
}

func TestDesignRepository_ReloadedDesignHasIdenticalStats(t *testing.T) {
	// Arrange
	repo := newDesignRepo(t)
	ctx := context.Background()
	store := helpers.NewFixtureStore(t)
	snap := store.Current()

	original, err := ship.NewShip("d-1", "Aurora", nil)
	require.NoError(t, err)
	for _, p := range []struct {
		id    string
		layer component.Layer
	}{
		{helpers.ReactorID, component.LayerCore},
		{helpers.BridgeID, component.LayerCore},
		{helpers.EngineID, component.LayerInner},
		{helpers.FuelTankID, component.LayerInner},
		{helpers.LaserID, component.LayerOuter},
	} {
		inst, err := snap.Components.Instantiate(p.id, p.layer, nil)
		require.NoError(t, err)
		require.NoError(t, original.AddComponent(inst))
	}

	// Act
	require.NoError(t, repo.Save(ctx, original.Blueprint()))
	bp, err := repo.FindByID(ctx, "d-1")
	require.NoError(t, err)
	reloaded, err := ship.Assemble(*bp, snap.Components, snap.Classes)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, original.Stats(), reloaded.Stats())
}
