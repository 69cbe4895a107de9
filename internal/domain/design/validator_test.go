package design_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
	"github.com/andrescamacho/shipforge-go/internal/domain/component"
	"github.com/andrescamacho/shipforge-go/internal/domain/design"
	"github.com/andrescamacho/shipforge-go/internal/domain/ship"
)

func def(t *testing.T, id string, mass float64, abilities []ability.Ability, opts ...component.DefinitionOption) *component.Definition {
	t.Helper()
	d, err := component.NewDefinition(id, id, mass, 10, abilities, opts...)
	require.NoError(t, err)
	return d
}

func inst(t *testing.T, d *component.Definition, layer component.Layer) *component.Instance {
	t.Helper()
	i, err := component.NewInstance(d, layer, nil)
	require.NoError(t, err)
	return i
}

func emptyShip(t *testing.T, class *ship.Class) *ship.Ship {
	t.Helper()
	s, err := ship.NewShip("s-1", "Test", class)
	require.NoError(t, err)
	return s
}

func verdictFor(t *testing.T, verdicts []design.Verdict, rule string) design.Verdict {
	t.Helper()
	for _, v := range verdicts {
		if v.Rule == rule {
			return v
		}
	}
	t.Fatalf("no verdict for rule %s", rule)
	return design.Verdict{}
}

var (
	laserAbilities = []ability.Ability{
		ability.BeamWeapon{Damage: 1, Range: 800, Reload: 1, BaseAccuracy: 0.5, AccuracyFalloff: 0.002, FiringArc: 90},
		ability.ResourceConsumption{Resource: "energy", Amount: 2, Trigger: ability.TriggerActivation},
	}
	batteryAbilities = []ability.Ability{ability.ResourceStorage{Resource: "energy", Capacity: 100}}
	reactorAbilities = []ability.Ability{ability.ResourceGeneration{Resource: "energy", Rate: 5}}
)

func TestResourceDependency_FailsWhenConsumerHasNoStorage(t *testing.T) {
	// Arrange
	s := emptyShip(t, nil)
	laser := inst(t, def(t, "laser", 20, laserAbilities), component.LayerOuter)

	// Act
	verdicts := design.NewValidator().Validate(s, laser)

	// Assert
	v := verdictFor(t, verdicts, design.RuleResourceDependency)
	assert.Equal(t, design.StatusFail, v.Status)
	assert.Contains(t, v.Message, "energy")
	assert.True(t, design.HasFailures(verdicts))
}

func TestResourceDependency_CandidateStorageSatisfiesInstalledConsumer(t *testing.T) {
	s := emptyShip(t, nil)
	require.NoError(t, s.AddComponent(inst(t, def(t, "laser", 20, laserAbilities), component.LayerOuter)))
	battery := inst(t, def(t, "battery", 10, batteryAbilities), component.LayerInner)

	before := design.NewValidator().Validate(s, nil)
	after := design.NewValidator().Validate(s, battery)

	assert.Equal(t, design.StatusFail, verdictFor(t, before, design.RuleResourceDependency).Status)
	assert.Equal(t, design.StatusPass, verdictFor(t, after, design.RuleResourceDependency).Status)
}

func TestResourceDependency_GenerationWithoutStorageWarns(t *testing.T) {
	s := emptyShip(t, nil)
	require.NoError(t, s.AddComponent(inst(t, def(t, "reactor", 50, reactorAbilities), component.LayerCore)))

	verdicts := design.NewValidator().Validate(s, inst(t, def(t, "laser", 20, laserAbilities), component.LayerOuter))

	v := verdictFor(t, verdicts, design.RuleResourceDependency)
	assert.Equal(t, design.StatusWarning, v.Status)
	assert.False(t, design.HasFailures(verdicts))
	assert.Len(t, design.Warnings(verdicts), 1)
}

func TestResourceDependency_StorageOfOtherKindDoesNotCount(t *testing.T) {
	s := emptyShip(t, nil)
	tank := def(t, "tank", 10, []ability.Ability{ability.ResourceStorage{Resource: "fuel", Capacity: 10}})
	require.NoError(t, s.AddComponent(inst(t, tank, component.LayerInner)))

	verdicts := design.NewValidator().Validate(s, inst(t, def(t, "laser", 20, laserAbilities), component.LayerOuter))

	assert.Equal(t, design.StatusFail, verdictFor(t, verdicts, design.RuleResourceDependency).Status)
}

func TestValidate_DoesNotMutateShip(t *testing.T) {
	s := emptyShip(t, nil)
	require.NoError(t, s.AddComponent(inst(t, def(t, "battery", 10, batteryAbilities), component.LayerInner)))
	before := s.Stats()

	design.NewValidator().Validate(s, inst(t, def(t, "laser", 20, laserAbilities), component.LayerOuter))

	assert.Len(t, s.Components(), 1)
	assert.Equal(t, before, s.Stats())
}

func TestClassRequirement(t *testing.T) {
	gunship := def(t, "gunship-core", 50, []ability.Ability{
		ability.Marker{Tag: ability.KindRequiresCombatMovement},
		ability.Marker{Tag: ability.KindRequiresCommandAndControl},
	})
	engine := def(t, "engine", 50, []ability.Ability{ability.CombatPropulsion{ThrustForce: 100}})
	bridge := def(t, "bridge", 50, []ability.Ability{ability.Marker{Tag: ability.KindCommandAndControl}})

	s := emptyShip(t, nil)
	require.NoError(t, s.AddComponent(inst(t, gunship, component.LayerCore)))

	v := verdictFor(t, design.NewValidator().Validate(s, nil), design.RuleClassRequirement)
	assert.Equal(t, design.StatusFail, v.Status)
	assert.Contains(t, v.Message, "propulsion")
	assert.Contains(t, v.Message, "command and control")

	require.NoError(t, s.AddComponent(inst(t, engine, component.LayerInner)))
	v = verdictFor(t, design.NewValidator().Validate(s, nil), design.RuleClassRequirement)
	assert.Equal(t, design.StatusFail, v.Status, "installed components alone still lack command and control")
	assert.NotContains(t, v.Message, "propulsion")
	assert.Contains(t, v.Message, "command and control")

	installed := len(s.Components())
	v = verdictFor(t, design.NewValidator().Validate(s, inst(t, bridge, component.LayerCore)), design.RuleClassRequirement)
	assert.Equal(t, design.StatusPass, v.Status, "the candidate bridge satisfies the requirement")
	assert.Len(t, s.Components(), installed, "validation never installs the candidate")
}

func TestLayerRestriction(t *testing.T) {
	class, err := ship.NewClass("Frigate", 0, []ship.LayerSpec{
		{Layer: component.LayerCore},
		{Layer: component.LayerArmor, Restriction: ship.LayerRestriction{Family: "armor", IDPrefix: "plate-"}},
	})
	require.NoError(t, err)
	s := emptyShip(t, class)

	byFamily := def(t, "ablative", 30, nil, component.WithFamily("armor"))
	byPrefix := def(t, "plate-heavy", 30, nil)
	gun := def(t, "gun", 30, nil)

	validator := design.NewValidator(design.LayerRestrictionRule{})
	assert.Equal(t, design.StatusPass, validator.Validate(s, inst(t, byFamily, component.LayerArmor))[0].Status)
	assert.Equal(t, design.StatusPass, validator.Validate(s, inst(t, byPrefix, component.LayerArmor))[0].Status)
	assert.Equal(t, design.StatusFail, validator.Validate(s, inst(t, gun, component.LayerArmor))[0].Status)
	assert.Equal(t, design.StatusFail, validator.Validate(s, inst(t, gun, component.LayerOuter))[0].Status)
}

func TestUniqueness(t *testing.T) {
	bridge := def(t, "bridge", 50, []ability.Ability{ability.Marker{Tag: ability.KindCommandAndControl}}, component.AsUnique())
	s := emptyShip(t, nil)

	validator := design.NewValidator(design.UniquenessRule{})
	assert.Equal(t, design.StatusPass, validator.Validate(s, inst(t, bridge, component.LayerCore))[0].Status)

	require.NoError(t, s.AddComponent(inst(t, bridge, component.LayerCore)))
	v := validator.Validate(s, inst(t, bridge, component.LayerCore))[0]
	assert.Equal(t, design.StatusFail, v.Status)
	assert.Contains(t, v.Message, "bridge x2")
}

func TestAllowedLayer(t *testing.T) {
	reactor := def(t, "reactor", 50, reactorAbilities, component.AllowedIn(component.LayerCore))
	s := emptyShip(t, nil)
	validator := design.NewValidator(design.AllowedLayerRule{})

	assert.Equal(t, design.StatusPass, validator.Validate(s, inst(t, reactor, component.LayerCore))[0].Status)
	assert.Equal(t, design.StatusFail, validator.Validate(s, inst(t, reactor, component.LayerArmor))[0].Status)
}

func TestLayerMass(t *testing.T) {
	class, err := ship.NewClass("Corvette", 1000, []ship.LayerSpec{
		{Layer: component.LayerCore, MassFraction: 0.1},
		{Layer: component.LayerOuter},
	})
	require.NoError(t, err)
	s := emptyShip(t, class)
	validator := design.NewValidator(design.LayerMassRule{})

	light := def(t, "light", 60, nil)
	require.NoError(t, s.AddComponent(inst(t, light, component.LayerCore)))

	assert.Equal(t, design.StatusPass, validator.Validate(s, inst(t, def(t, "small", 40, nil), component.LayerCore))[0].Status)
	assert.Equal(t, design.StatusFail, validator.Validate(s, inst(t, def(t, "big", 41, nil), component.LayerCore))[0].Status)
	assert.Equal(t, design.StatusPass, validator.Validate(s, inst(t, def(t, "huge", 900, nil), component.LayerOuter))[0].Status)
}

func TestCrewAndLifeSupportWarn(t *testing.T) {
	quarters := def(t, "quarters", 20, []ability.Ability{ability.CrewCapacity{Amount: 4}, ability.LifeSupportCapacity{Amount: 2}})
	turret := def(t, "turret", 20, []ability.Ability{ability.CrewRequired{Amount: 6}})
	s := emptyShip(t, nil)
	require.NoError(t, s.AddComponent(inst(t, quarters, component.LayerCore)))

	verdicts := design.NewValidator().Validate(s, inst(t, turret, component.LayerOuter))

	assert.Equal(t, design.StatusWarning, verdictFor(t, verdicts, design.RuleCrew).Status)
	assert.Equal(t, design.StatusWarning, verdictFor(t, verdicts, design.RuleLifeSupport).Status)
	assert.False(t, design.HasFailures(verdicts))
}

func TestValidate_ReturnsOneVerdictPerRuleInOrder(t *testing.T) {
	verdicts := design.NewValidator().Validate(emptyShip(t, nil), nil)

	rules := design.DefaultRules()
	require.Len(t, verdicts, len(rules))
	for i, rule := range rules {
		assert.Equal(t, rule.Name(), verdicts[i].Rule)
		assert.Equal(t, design.StatusPass, verdicts[i].Status)
	}
}
