package ship_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
	"github.com/andrescamacho/shipforge-go/internal/domain/component"
	"github.com/andrescamacho/shipforge-go/internal/domain/resource"
	"github.com/andrescamacho/shipforge-go/internal/domain/ship"
)

func def(t *testing.T, id string, mass float64, abilities ...ability.Ability) *component.Definition {
	t.Helper()
	d, err := component.NewDefinition(id, id, mass, 10, abilities)
	require.NoError(t, err)
	return d
}

func install(t *testing.T, d *component.Definition, layer component.Layer) *component.Instance {
	t.Helper()
	inst, err := component.NewInstance(d, layer, nil)
	require.NoError(t, err)
	return inst
}

func TestRecompute_ResourceExistsFromConsumptionAlone(t *testing.T) {
	// Arrange: a single laser that draws energy per shot, no battery, no reactor
	laser := def(t, "laser", 20,
		ability.BeamWeapon{Damage: 1, Range: 800, Reload: 2, BaseAccuracy: 0.5, AccuracyFalloff: 0.002, FiringArc: 360},
		ability.ResourceConsumption{Resource: "energy", Amount: 4, Trigger: ability.TriggerActivation},
	)

	// Act
	stats := ship.Recompute([]*component.Instance{install(t, laser, component.LayerOuter)})

	// Assert
	row, ok := stats.Ledgers.Get("energy")
	require.True(t, ok)
	assert.Equal(t, 0.0, row.Capacity())
	assert.Equal(t, 0.0, row.Current())
	assert.Equal(t, 2.0, row.MaxConsumptionRate())
	assert.Equal(t, 0.0, row.ConstantConsumptionRate())
	assert.Equal(t, []string{"energy"}, stats.NeededResources)
	assert.Empty(t, stats.StoredResources)
}

func TestRecompute_InactiveConsumerStillCountsTowardPotential(t *testing.T) {
	// Arrange: engine needs 5 crew, ship has none
	engine := def(t, "engine", 100,
		ability.CombatPropulsion{ThrustForce: 500},
		ability.ResourceConsumption{Resource: "fuel", Amount: 3, Trigger: ability.TriggerConstant},
		ability.CrewRequired{Amount: 5},
	)
	tank := def(t, "tank", 50, ability.ResourceStorage{Resource: "fuel", Capacity: 200})
	engineInst := install(t, engine, component.LayerInner)

	// Act
	stats := ship.Recompute([]*component.Instance{engineInst, install(t, tank, component.LayerInner)})

	// Assert
	assert.False(t, stats.IsActive(engineInst.ID()))
	assert.Equal(t, 0.0, stats.Thrust, "inactive engines give no thrust")

	fuel, ok := stats.Ledgers.Get("fuel")
	require.True(t, ok)
	assert.Equal(t, 200.0, fuel.Capacity())
	assert.Equal(t, 0.0, fuel.ConstantConsumptionRate(), "inactive constant drain is not active load")
	assert.Equal(t, 3.0, fuel.MaxConsumptionRate(), "but it still counts toward potential load")
	assert.True(t, math.IsInf(fuel.EnduranceAtConstantRate(), 1))
}

func TestRecompute_CrewAllocatedInLayerOrder(t *testing.T) {
	quarters := def(t, "quarters", 30, ability.CrewCapacity{Amount: 4}, ability.LifeSupportCapacity{Amount: 10})
	turret := def(t, "turret", 20, ability.CrewRequired{Amount: 3}, ability.ToHitAttackModifier{Value: 1, StackGroup: "fc"})

	first := install(t, turret, component.LayerInner)
	second := install(t, turret, component.LayerOuter)

	stats := ship.Recompute([]*component.Instance{install(t, quarters, component.LayerCore), first, second})

	assert.True(t, stats.IsActive(first.ID()))
	assert.False(t, stats.IsActive(second.ID()))
	assert.Equal(t, 4, stats.CrewAvailable)
	assert.Equal(t, 6, stats.CrewRequired)
	assert.Equal(t, 1.0, stats.SensorScore)
}

func TestRecompute_LifeSupportCapsCrew(t *testing.T) {
	quarters := def(t, "quarters", 30, ability.CrewCapacity{Amount: 10})
	recycler := def(t, "recycler", 30, ability.LifeSupportCapacity{Amount: 2})
	station := def(t, "station", 10, ability.CrewRequired{Amount: 3})
	stationInst := install(t, station, component.LayerInner)

	stats := ship.Recompute([]*component.Instance{
		install(t, quarters, component.LayerCore),
		install(t, recycler, component.LayerCore),
		stationInst,
	})

	assert.Equal(t, 2, stats.CrewAvailable)
	assert.False(t, stats.IsActive(stationInst.ID()))
}

func TestRecompute_CommandAndControlGate(t *testing.T) {
	drone := def(t, "drone-bay", 40,
		ability.Marker{Tag: ability.KindRequiresCommandAndControl},
		ability.VehicleLaunch{CycleTime: 10, Payload: "drone"},
	)
	bridge := def(t, "bridge", 60, ability.Marker{Tag: ability.KindCommandAndControl})
	droneInst := install(t, drone, component.LayerInner)

	without := ship.Recompute([]*component.Instance{droneInst})
	with := ship.Recompute([]*component.Instance{install(t, bridge, component.LayerCore), droneInst})

	assert.False(t, without.IsActive(droneInst.ID()))
	assert.False(t, without.Launchers[0].Active)
	assert.True(t, with.IsActive(droneInst.ID()))
	assert.True(t, with.HasCommandAndControl)
}

func TestRecompute_ModifiersDedupByStackGroup(t *testing.T) {
	radarA := def(t, "radar-a", 10, ability.ToHitAttackModifier{Value: 0.5, StackGroup: "radar"})
	radarB := def(t, "radar-b", 10, ability.ToHitAttackModifier{Value: 0.8, StackGroup: "radar"})
	lidar := def(t, "lidar", 10, ability.ToHitAttackModifier{Value: 0.3, StackGroup: "lidar"})
	jammer := def(t, "jammer", 10, ability.ToHitDefenseModifier{Value: 0.4, StackGroup: "ecm"})

	stats := ship.Recompute([]*component.Instance{
		install(t, radarA, component.LayerInner),
		install(t, radarB, component.LayerInner),
		install(t, radarB, component.LayerInner),
		install(t, lidar, component.LayerInner),
		install(t, jammer, component.LayerInner),
		install(t, jammer, component.LayerOuter),
	})

	assert.InDelta(t, 1.1, stats.SensorScore, 1e-9)
	assert.InDelta(t, 0.4, stats.ECMScore, 1e-9)
	assert.InDelta(t, stats.SizeScore+stats.ManeuverScore+0.4, stats.DefenseScore, 1e-12)
}

func TestRecompute_ActivationRateUsesReloadAndNeverDoubleCountsConstant(t *testing.T) {
	cannon := def(t, "cannon", 40,
		ability.ProjectileWeapon{Damage: 10, ProjectileSpeed: 300, Range: 600, Reload: 4, FiringArc: 30},
		ability.ResourceConsumption{Resource: "ammo", Amount: 2, Trigger: ability.TriggerActivation},
		ability.ResourceConsumption{Resource: "energy", Amount: 1, Trigger: ability.TriggerConstant},
		ability.ResourceConsumption{Resource: "energy", Amount: 8, Trigger: ability.TriggerActivation},
	)
	battery := def(t, "battery", 10,
		ability.ResourceStorage{Resource: "energy", Capacity: 100},
		ability.ResourceStorage{Resource: "ammo", Capacity: 20},
	)

	stats := ship.Recompute([]*component.Instance{
		install(t, battery, component.LayerInner),
		install(t, cannon, component.LayerOuter),
	})

	ammo, _ := stats.Ledgers.Get("ammo")
	energy, _ := stats.Ledgers.Get("energy")
	assert.Equal(t, 0.5, ammo.MaxConsumptionRate())
	assert.Equal(t, 1.0, energy.ConstantConsumptionRate())
	assert.Equal(t, 3.0, energy.MaxConsumptionRate())
	assert.GreaterOrEqual(t, energy.MaxConsumptionRate(), energy.ConstantConsumptionRate())

	require.Len(t, stats.Weapons, 1)
	assert.Equal(t, []resource.Cost{
		{Resource: "ammo", Amount: 2},
		{Resource: "energy", Amount: 8},
	}, stats.Weapons[0].Costs, "constant drains are not charged per shot")
}

func TestRecompute_EveryMountPaysActivationCosts(t *testing.T) {
	// Arrange: one component carrying two beams, each paying 1 energy per shot
	twin := def(t, "twin-laser", 30,
		ability.BeamWeapon{Damage: 1, Range: 800, Reload: 1, BaseAccuracy: 0.5, AccuracyFalloff: 0.002, FiringArc: 360},
		ability.BeamWeapon{Damage: 1, Range: 800, Reload: 1, BaseAccuracy: 0.5, AccuracyFalloff: 0.002, FiringArc: 360},
		ability.ResourceConsumption{Resource: "energy", Amount: 1, Trigger: ability.TriggerActivation},
		ability.ResourceStorage{Resource: "energy", Capacity: 100},
	)

	// Act
	stats := ship.Recompute([]*component.Instance{install(t, twin, component.LayerOuter)})

	// Assert
	energy, ok := stats.Ledgers.Get("energy")
	require.True(t, ok)
	assert.Equal(t, 2.0, energy.MaxConsumptionRate())
	assert.Equal(t, 50.0, energy.EnduranceAtMaxRate())
}

func TestRecomputeAt_NoReloadFiresOncePerTick(t *testing.T) {
	beam := def(t, "pulse", 10,
		ability.BeamWeapon{Damage: 1, Range: 800, Reload: 0, BaseAccuracy: 0.5, AccuracyFalloff: 0.002, FiringArc: 360},
		ability.ResourceConsumption{Resource: "energy", Amount: 1, Trigger: ability.TriggerActivation},
	)
	components := []*component.Instance{install(t, beam, component.LayerOuter)}

	tests := []struct {
		tick float64
		want float64
	}{
		{0.1, 10},
		{0.05, 20},
		{0.5, 2},
	}
	for _, tt := range tests {
		energy, ok := ship.RecomputeAt(components, tt.tick).Ledgers.Get("energy")
		require.True(t, ok)
		assert.InDelta(t, tt.want, energy.MaxConsumptionRate(), 1e-9, "tick %.2f", tt.tick)
	}
}

func TestShip_SetTickSecondsRecomputesLedgers(t *testing.T) {
	beam := def(t, "pulse", 10,
		ability.BeamWeapon{Damage: 1, Range: 800, Reload: 0, BaseAccuracy: 0.5, AccuracyFalloff: 0.002, FiringArc: 360},
		ability.ResourceConsumption{Resource: "energy", Amount: 1, Trigger: ability.TriggerActivation},
	)
	s, err := ship.NewShip("s-1", "Pulse", nil)
	require.NoError(t, err)
	require.NoError(t, s.AddComponent(install(t, beam, component.LayerOuter)))

	s.SetTickSeconds(0.02)

	energy, _ := s.Ledgers().Get("energy")
	assert.Equal(t, 0.02, s.TickSeconds())
	assert.InDelta(t, 50.0, energy.MaxConsumptionRate(), 1e-9)
}

func TestRecompute_PropulsionAndDefense(t *testing.T) {
	hull := def(t, "hull", 300, ability.Marker{Tag: ability.KindStructuralIntegrity})
	engine := def(t, "engine", 100, ability.CombatPropulsion{ThrustForce: 4000})
	thrusters := def(t, "thrusters", 100, ability.ManeuveringThruster{TurnTorque: 18000})

	stats := ship.Recompute([]*component.Instance{
		install(t, hull, component.LayerCore),
		install(t, engine, component.LayerInner),
		install(t, thrusters, component.LayerInner),
	})

	assert.Equal(t, 500.0, stats.Mass)
	assert.Equal(t, 8.0, stats.Acceleration)
	assert.Equal(t, 36.0, stats.TurnRate)
	assert.InDelta(t, math.Sqrt(8.0/20+36.0/360), stats.ManeuverScore, 1e-12)
	assert.Equal(t, 1, stats.Markers[ability.KindStructuralIntegrity])
}

func TestRecompute_IsDeterministic(t *testing.T) {
	reactor := def(t, "reactor", 80,
		ability.ResourceGeneration{Resource: "energy", Rate: 7.3},
		ability.ResourceStorage{Resource: "energy", Capacity: 120},
	)
	laser := def(t, "laser", 20,
		ability.BeamWeapon{Damage: 1, Range: 800, Reload: 0.7, BaseAccuracy: 0.5, AccuracyFalloff: 0.002, FiringArc: 90},
		ability.ResourceConsumption{Resource: "energy", Amount: 3.1, Trigger: ability.TriggerActivation},
		ability.ToHitAttackModifier{Value: 0.25, StackGroup: "optics"},
	)
	components := []*component.Instance{
		install(t, reactor, component.LayerCore),
		install(t, laser, component.LayerOuter),
		install(t, laser, component.LayerOuter),
	}

	first := ship.Recompute(components)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ship.Recompute(components))
	}
}
