package ship_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
	"github.com/andrescamacho/shipforge-go/internal/domain/component"
	"github.com/andrescamacho/shipforge-go/internal/domain/shared"
	"github.com/andrescamacho/shipforge-go/internal/domain/ship"
)

func TestNewShip_ValidatesIdentity(t *testing.T) {
	_, err := ship.NewShip("", "Nameless", nil)
	assert.Error(t, err)

	_, err = ship.NewShip("s-1", "", nil)
	assert.Error(t, err)

	s, err := ship.NewShip("s-1", "Aurora", nil)
	require.NoError(t, err)
	assert.Equal(t, "Unclassed", s.Class().Name())
	assert.Equal(t, 0.0, s.Mass())
	assert.Equal(t, 0, s.Ledgers().Len())
}

func TestShip_AddComponentKeepsLayerOrder(t *testing.T) {
	// Arrange
	s, err := ship.NewShip("s-1", "Aurora", nil)
	require.NoError(t, err)
	plate := def(t, "plate", 50, ability.Marker{Tag: ability.KindArmor})
	reactor := def(t, "reactor", 80, ability.ResourceGeneration{Resource: "energy", Rate: 5})

	armor := install(t, plate, component.LayerArmor)
	core := install(t, reactor, component.LayerCore)

	// Act
	require.NoError(t, s.AddComponent(armor))
	require.NoError(t, s.AddComponent(core))

	// Assert
	components := s.Components()
	require.Len(t, components, 2)
	assert.Equal(t, core.ID(), components[0].ID())
	assert.Equal(t, armor.ID(), components[1].ID())
	assert.Equal(t, 130.0, s.Mass())
	assert.Equal(t, 50.0, s.LayerMass(component.LayerArmor))
	assert.Len(t, s.ComponentsInLayer(component.LayerCore), 1)
}

func TestShip_AddComponentRejectsDuplicatesAndMissingLayers(t *testing.T) {
	class, err := ship.NewClass("Corvette", 1000, []ship.LayerSpec{
		{Layer: component.LayerCore, MassFraction: 0.5},
		{Layer: component.LayerOuter, MassFraction: 0.5},
	})
	require.NoError(t, err)
	s, err := ship.NewShip("s-1", "Aurora", class)
	require.NoError(t, err)
	plate := def(t, "plate", 50)

	inner := install(t, plate, component.LayerInner)
	err = s.AddComponent(inner)
	var invalid *shared.InvalidShipDataError
	assert.ErrorAs(t, err, &invalid)

	outer := install(t, plate, component.LayerOuter)
	require.NoError(t, s.AddComponent(outer))
	assert.ErrorAs(t, s.AddComponent(outer), &invalid)
}

func TestShip_RemoveComponentRecomputes(t *testing.T) {
	s, err := ship.NewShip("s-1", "Aurora", nil)
	require.NoError(t, err)
	engine := install(t, def(t, "engine", 100, ability.CombatPropulsion{ThrustForce: 1000}), component.LayerInner)
	require.NoError(t, s.AddComponent(engine))
	require.Equal(t, 10.0, s.Stats().Acceleration)

	removed, err := s.RemoveComponent(engine.ID())
	require.NoError(t, err)

	assert.Equal(t, engine.ID(), removed.ID())
	assert.Empty(t, s.Components())
	assert.Equal(t, 0.0, s.Stats().Thrust)

	_, err = s.RemoveComponent(engine.ID())
	var notFound *shared.InstanceNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestShip_SetModifiersScalesStats(t *testing.T) {
	s, err := ship.NewShip("s-1", "Aurora", nil)
	require.NoError(t, err)
	tank := install(t, def(t, "tank", 40, ability.ResourceStorage{Resource: "fuel", Capacity: 100}), component.LayerInner)
	require.NoError(t, s.AddComponent(tank))

	require.NoError(t, s.SetModifiers(tank.ID(), ability.Modifiers{ability.StatCapacity: 1.5}))

	fuel, ok := s.Ledgers().Get("fuel")
	require.True(t, ok)
	assert.Equal(t, 150.0, fuel.Capacity())
	assert.Equal(t, 150.0, fuel.Current())

	assert.Error(t, s.SetModifiers("missing", ability.Modifiers{}))
}

func TestShip_RecomputeResetsLedgersToFull(t *testing.T) {
	s, err := ship.NewShip("s-1", "Aurora", nil)
	require.NoError(t, err)
	battery := install(t, def(t, "battery", 10, ability.ResourceStorage{Resource: "energy", Capacity: 50}), component.LayerInner)
	require.NoError(t, s.AddComponent(battery))

	energy, _ := s.Ledgers().Get("energy")
	require.True(t, energy.TryConsume(30))
	require.Equal(t, 20.0, energy.Current())

	s.Recompute()

	energy, _ = s.Ledgers().Get("energy")
	assert.Equal(t, 50.0, energy.Current())
}

func TestClass_LayerBudgetAndRestriction(t *testing.T) {
	class, err := ship.NewClass("Frigate", 2000, []ship.LayerSpec{
		{Layer: component.LayerArmor, MassFraction: 0.25, Restriction: ship.LayerRestriction{Family: "armor"}},
		{Layer: component.LayerCore, MassFraction: 0.4},
	})
	require.NoError(t, err)

	assert.Equal(t, component.LayerCore, class.Layers()[0].Layer)
	assert.Equal(t, 500.0, class.LayerBudget(component.LayerArmor))
	assert.Equal(t, 0.0, class.LayerBudget(component.LayerInner))

	armorSpec, ok := class.Layer(component.LayerArmor)
	require.True(t, ok)
	plate, err := component.NewDefinition("plate", "Plate", 10, 10, nil, component.WithFamily("armor"))
	require.NoError(t, err)
	gun := def(t, "gun", 10)
	assert.True(t, armorSpec.Restriction.Permits(plate))
	assert.False(t, armorSpec.Restriction.Permits(gun))

	_, err = ship.NewClass("Broken", 100, []ship.LayerSpec{
		{Layer: component.LayerCore},
		{Layer: component.LayerCore},
	})
	assert.Error(t, err)
}

func TestBlueprint_AssembleYieldsIdenticalStats(t *testing.T) {
	// Arrange
	reactor := def(t, "reactor", 80, ability.ResourceGeneration{Resource: "energy", Rate: 4}, ability.ResourceStorage{Resource: "energy", Capacity: 40})
	laser := def(t, "laser", 20,
		ability.BeamWeapon{Damage: 2, Range: 700, Reload: 1.5, BaseAccuracy: 0.5, AccuracyFalloff: 0.002, FiringArc: 120},
		ability.ResourceConsumption{Resource: "energy", Amount: 3, Trigger: ability.TriggerActivation},
	)
	catalog, err := component.NewCatalog([]*component.Definition{reactor, laser})
	require.NoError(t, err)

	original, err := ship.NewShip("s-1", "Aurora", nil)
	require.NoError(t, err)
	require.NoError(t, original.AddComponent(install(t, laser, component.LayerOuter)))
	require.NoError(t, original.AddComponent(install(t, reactor, component.LayerCore)))
	tuned := install(t, laser, component.LayerOuter)
	require.NoError(t, original.AddComponent(tuned))
	require.NoError(t, original.SetModifiers(tuned.ID(), ability.Modifiers{ability.StatDamage: 1.25}))

	// Act
	rebuilt, err := ship.Assemble(original.Blueprint(), catalog, nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, original.Blueprint(), rebuilt.Blueprint())
	assert.Equal(t, original.Stats(), rebuilt.Stats())
}

func TestAssemble_UnknownComponentOrClass(t *testing.T) {
	catalog, err := component.NewCatalog(nil)
	require.NoError(t, err)

	_, err = ship.Assemble(ship.Blueprint{
		ID: "s-1", Name: "Ghost",
		Components: []ship.InstalledComponent{{InstanceID: "i-1", ComponentID: "missing", Layer: component.LayerCore}},
	}, catalog, nil)
	var notFound *shared.ComponentNotFoundError
	assert.ErrorAs(t, err, &notFound)

	_, err = ship.Assemble(ship.Blueprint{ID: "s-1", Name: "Ghost", ClassName: "Dreadnought"}, catalog, nil)
	assert.Error(t, err)
}
