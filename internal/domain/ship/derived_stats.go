package ship

import (
	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
	"github.com/andrescamacho/shipforge-go/internal/domain/resource"
)

// WeaponStat is one weapon ability on one installed component
type WeaponStat struct {
	InstanceID  string
	ComponentID string
	Weapon      ability.Weapon
	// Costs are the component's activation-trigger consumptions, charged once per shot
	Costs  []resource.Cost
	Active bool
}

// LauncherStat is one vehicle bay on one installed component
type LauncherStat struct {
	InstanceID  string
	ComponentID string
	Launch      ability.VehicleLaunch
	Costs       []resource.Cost
	Active      bool
}

// DerivedStats is everything the aggregator derives from an installed component set.
// It is replaced wholesale on every recompute and never patched in place.
type DerivedStats struct {
	Mass      float64
	HitPoints float64
	Radius    float64

	Thrust       float64
	TurnTorque   float64
	Acceleration float64 // thrust / mass
	TurnRate     float64 // torque / mass, degrees per second

	SensorScore   float64 // strongest ToHitAttackModifier per stack group, summed
	ECMScore      float64 // strongest ToHitDefenseModifier per stack group, summed
	SizeScore     float64
	ManeuverScore float64
	DefenseScore  float64

	CrewCapacity  int
	LifeSupport   int
	CrewRequired  int
	CrewAvailable int

	ShieldCapacity       float64
	ShieldRegeneration   float64
	EmissiveThreshold    float64
	HasCommandAndControl bool

	// Activity maps installed instance id to whether its prerequisites are met
	Activity  map[string]bool
	Weapons   []WeaponStat
	Launchers []LauncherStat
	Markers   map[ability.Kind]int

	// Resource kinds by role, sorted
	StoredResources    []string
	GeneratedResources []string
	NeededResources    []string

	Ledgers *resource.LedgerSet
}

// IsActive reports whether an installed instance is active; unknown ids are inactive
func (s DerivedStats) IsActive(instanceID string) bool {
	return s.Activity[instanceID]
}

// ActiveWeapons returns the weapons whose components are active
func (s DerivedStats) ActiveWeapons() []WeaponStat {
	var out []WeaponStat
	for _, w := range s.Weapons {
		if w.Active {
			out = append(out, w)
		}
	}
	return out
}

// Logistics returns one display row per resource kind
func (s DerivedStats) Logistics() []resource.LogisticsRow {
	if s.Ledgers == nil {
		return nil
	}
	return s.Ledgers.Rows()
}
