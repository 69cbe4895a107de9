package component_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
	"github.com/andrescamacho/shipforge-go/internal/domain/component"
	"github.com/andrescamacho/shipforge-go/internal/domain/shared"
)

func laserDefinition(t *testing.T) *component.Definition {
	t.Helper()
	def, err := component.NewDefinition("laser-mk1", "Laser Mk I", 20, 10, []ability.Ability{
		ability.BeamWeapon{Damage: 2, Range: 800, Reload: 1, BaseAccuracy: 0.5, AccuracyFalloff: 0.002, FiringArc: 90},
		ability.ResourceConsumption{Resource: "energy", Amount: 5, Trigger: ability.TriggerActivation},
	}, component.WithFamily("weapon"), component.AllowedIn(component.LayerOuter))
	require.NoError(t, err)
	return def
}

func TestNewDefinition_RejectsMalformedAbility(t *testing.T) {
	// Act
	_, err := component.NewDefinition("bad-tank", "Bad Tank", 10, 5, []ability.Ability{
		ability.ResourceStorage{Resource: "fuel", Capacity: -50},
	})

	// Assert
	require.Error(t, err)
	var catalogErr *shared.CatalogError
	require.True(t, errors.As(err, &catalogErr))
	assert.Equal(t, "bad-tank", catalogErr.ComponentID)
	assert.Contains(t, catalogErr.Reason, "capacity cannot be negative")
}

func TestNewDefinition_RejectsEmptyIDAndNegativeMass(t *testing.T) {
	_, err := component.NewDefinition("", "", 1, 1, nil)
	assert.Error(t, err)

	_, err = component.NewDefinition("heavy", "", -1, 1, nil)
	assert.Error(t, err)
}

func TestDefinition_Getters(t *testing.T) {
	def := laserDefinition(t)

	assert.Equal(t, "laser-mk1", def.ID())
	assert.Equal(t, "weapon", def.Family())
	assert.False(t, def.IsUnique())
	assert.True(t, def.HasAbility(ability.KindBeamWeapon))
	assert.False(t, def.HasAbility(ability.KindArmor))
	assert.True(t, def.AllowsLayer(component.LayerOuter))
	assert.False(t, def.AllowsLayer(component.LayerCore))
}

func TestInstance_ScalesAbilitiesAndMass(t *testing.T) {
	def := laserDefinition(t)

	inst, err := component.NewInstance(def, component.LayerOuter, ability.Modifiers{
		ability.StatDamage: 2,
		ability.StatMass:   1.5,
	})
	require.NoError(t, err)

	beam := inst.Abilities()[0].(ability.BeamWeapon)
	assert.Equal(t, 4.0, beam.Damage)
	assert.Equal(t, 30.0, inst.Mass())
	assert.NotEmpty(t, inst.ID())

	// Definition stays untouched
	assert.Equal(t, 2.0, def.Abilities()[0].(ability.BeamWeapon).Damage)
}

func TestInstance_WithModifiersKeepsIdentity(t *testing.T) {
	def := laserDefinition(t)
	inst, err := component.NewInstance(def, component.LayerOuter, nil)
	require.NoError(t, err)

	updated, err := inst.WithModifiers(ability.Modifiers{ability.StatRange: 0.5})
	require.NoError(t, err)

	assert.Equal(t, inst.ID(), updated.ID())
	assert.Equal(t, 400.0, updated.Abilities()[0].(ability.BeamWeapon).Range)
}

func TestCatalog_LookupAndOrder(t *testing.T) {
	laser := laserDefinition(t)
	tank, err := component.NewDefinition("tank", "Fuel Tank", 50, 20, []ability.Ability{
		ability.ResourceStorage{Resource: "fuel", Capacity: 100},
	})
	require.NoError(t, err)

	catalog, err := component.NewCatalog([]*component.Definition{tank, laser})
	require.NoError(t, err)

	assert.Equal(t, 2, catalog.Len())
	assert.Equal(t, "tank", catalog.All()[0].ID())
	assert.Equal(t, []string{"laser-mk1", "tank"}, catalog.IDs())
	assert.Len(t, catalog.WithAbility(ability.KindResourceStorage), 1)

	_, err = catalog.Get("missing")
	var notFound *shared.ComponentNotFoundError
	assert.True(t, errors.As(err, &notFound))

	inst, err := catalog.Instantiate("tank", component.LayerInner, nil)
	require.NoError(t, err)
	assert.Equal(t, "tank", inst.ComponentID())
}

func TestCatalog_RejectsDuplicates(t *testing.T) {
	laser := laserDefinition(t)

	_, err := component.NewCatalog([]*component.Definition{laser, laser})

	assert.Error(t, err)
}

func TestParseLayer(t *testing.T) {
	l, err := component.ParseLayer("outer")
	require.NoError(t, err)
	assert.Equal(t, component.LayerOuter, l)

	_, err = component.ParseLayer("bridge")
	assert.Error(t, err)
}
