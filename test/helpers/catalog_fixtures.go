package helpers

import (
	"context"
	"fmt"
	"testing"

	"github.com/andrescamacho/shipforge-go/internal/application/catalog"
	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
	"github.com/andrescamacho/shipforge-go/internal/domain/component"
	"github.com/andrescamacho/shipforge-go/internal/domain/ship"
)

// Fixture component ids
const (
	ReactorID     = "reactor"
	BridgeID      = "bridge"
	LaserID       = "laser"
	EngineID      = "engine"
	FuelTankID    = "fuel-tank"
	ArmorPlateID  = "armor-plate"
	ShieldGenID   = "shield-gen"
	MissileRackID = "missile-rack"
	AmmoBayID     = "ammo-bay"
	FrigateClass  = "Frigate"
)

// StaticLoader returns a fixed catalog; it satisfies catalog.Loader
type StaticLoader struct {
	Result *catalog.LoadResult
	Err    error
}

func (l *StaticLoader) Load(ctx context.Context) (*catalog.LoadResult, error) {
	return l.Result, l.Err
}

// FixtureDefinitions builds the standard test component set
func FixtureDefinitions() ([]*component.Definition, error) {
	specs := []struct {
		id, name  string
		mass, hp  float64
		abilities []ability.Ability
		opts      []component.DefinitionOption
	}{
		{ReactorID, "Reactor", 100, 50, []ability.Ability{
			ability.ResourceGeneration{Resource: "energy", Rate: 10},
			ability.ResourceStorage{Resource: "energy", Capacity: 100},
			ability.CrewRequired{Amount: 2},
		}, nil},
		{BridgeID, "Bridge", 50, 40, []ability.Ability{
			ability.Marker{Tag: ability.KindCommandAndControl},
			ability.CrewCapacity{Amount: 10},
			ability.LifeSupportCapacity{Amount: 10},
		}, []component.DefinitionOption{component.AsUnique()}},
		{LaserID, "Laser", 20, 15, []ability.Ability{
			ability.BeamWeapon{Damage: 5, Range: 600, Reload: 1, BaseAccuracy: 0.9, AccuracyFalloff: 0.0005, FiringArc: 360},
			ability.ResourceConsumption{Resource: "energy", Amount: 2, Trigger: ability.TriggerActivation},
			ability.Marker{Tag: ability.KindRequiresCommandAndControl},
			ability.CrewRequired{Amount: 1},
		}, nil},
		{EngineID, "Engine", 60, 30, []ability.Ability{
			ability.CombatPropulsion{ThrustForce: 2000},
			ability.ManeuveringThruster{TurnTorque: 500},
			ability.ResourceConsumption{Resource: "fuel", Amount: 0.5, Trigger: ability.TriggerConstant},
		}, nil},
		{FuelTankID, "Fuel Tank", 30, 20, []ability.Ability{
			ability.ResourceStorage{Resource: "fuel", Capacity: 200},
		}, nil},
		{ArmorPlateID, "Armor Plate", 150, 200, []ability.Ability{
			ability.Marker{Tag: ability.KindArmor},
		}, []component.DefinitionOption{component.WithFamily("armor"), component.AllowedIn(component.LayerArmor)}},
		{ShieldGenID, "Shield Generator", 40, 20, []ability.Ability{
			ability.ShieldProjection{Capacity: 50},
			ability.ShieldRegeneration{Rate: 5},
			ability.ResourceConsumption{Resource: "energy", Amount: 1, Trigger: ability.TriggerConstant},
		}, nil},
		{MissileRackID, "Missile Rack", 35, 20, []ability.Ability{
			ability.SeekerWeapon{Damage: 20, ProjectileSpeed: 150, TurnRate: 90, Endurance: 10, Range: 1200, Reload: 4},
			ability.ResourceConsumption{Resource: "ammo", Amount: 1, Trigger: ability.TriggerActivation},
		}, nil},
		{AmmoBayID, "Ammo Bay", 25, 10, []ability.Ability{
			ability.ResourceStorage{Resource: "ammo", Capacity: 12},
		}, nil},
	}

	defs := make([]*component.Definition, 0, len(specs))
	for _, s := range specs {
		def, err := component.NewDefinition(s.id, s.name, s.mass, s.hp, s.abilities, s.opts...)
		if err != nil {
			return nil, fmt.Errorf("fixture %s: %w", s.id, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// BuildFixtureLoadResult builds the standard catalog with one Frigate class
func BuildFixtureLoadResult() (*catalog.LoadResult, error) {
	defs, err := FixtureDefinitions()
	if err != nil {
		return nil, err
	}
	components, err := component.NewCatalog(defs)
	if err != nil {
		return nil, err
	}
	frigate, err := ship.NewClass(FrigateClass, 2000, []ship.LayerSpec{
		{Layer: component.LayerCore, MassFraction: 0.3},
		{Layer: component.LayerInner, MassFraction: 0.3},
		{Layer: component.LayerOuter, MassFraction: 0.2},
		{Layer: component.LayerArmor, MassFraction: 0.2, Restriction: ship.LayerRestriction{Family: "armor"}},
	})
	if err != nil {
		return nil, err
	}
	classes, err := ship.NewClassCatalog([]*ship.Class{frigate})
	if err != nil {
		return nil, err
	}
	return &catalog.LoadResult{Components: components, Classes: classes, Source: "fixtures"}, nil
}

// BuildFixtureStore returns a catalog store already loaded with the fixture catalog
func BuildFixtureStore() (*catalog.Store, error) {
	result, err := BuildFixtureLoadResult()
	if err != nil {
		return nil, err
	}
	store := catalog.NewStore()
	if _, err := store.Reload(context.Background(), &StaticLoader{Result: result}); err != nil {
		return nil, err
	}
	return store, nil
}

// NewFixtureStore returns a catalog store already loaded with the fixture catalog
func NewFixtureStore(t *testing.T) *catalog.Store {
	t.Helper()

	store, err := BuildFixtureStore()
	if err != nil {
		t.Fatalf("fixture store: %v", err)
	}
	return store
}
