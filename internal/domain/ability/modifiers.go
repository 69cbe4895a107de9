package ability

import (
	"fmt"
	"math"
	"sort"
)

// Stat names an ability value that an instance modifier can scale
type Stat string

const (
	StatDamage   Stat = "damage"
	StatRange    Stat = "range"
	StatReload   Stat = "reload"
	StatCapacity Stat = "capacity"
	StatRate     Stat = "rate"
	StatAmount   Stat = "amount"
	StatThrust   Stat = "thrust"
	StatTorque   Stat = "torque"
	StatAccuracy Stat = "accuracy"
	StatValue    Stat = "value"
	StatMass     Stat = "mass"
)

var knownStats = map[Stat]bool{
	StatDamage: true, StatRange: true, StatReload: true, StatCapacity: true, StatRate: true,
	StatAmount: true, StatThrust: true, StatTorque: true, StatAccuracy: true, StatValue: true,
	StatMass: true,
}

// Modifiers are multiplicative, per-stat factors attached to one installed component.
// A missing stat means a factor of 1.
type Modifiers map[Stat]float64

// Factor returns the multiplier for a stat
func (m Modifiers) Factor(s Stat) float64 {
	if f, ok := m[s]; ok {
		return f
	}
	return 1
}

// Validate rejects unknown stats and negative or non-finite factors
func (m Modifiers) Validate() error {
	for _, s := range m.Stats() {
		f := m[s]
		if !knownStats[s] {
			return fmt.Errorf("unknown modifier stat %q", s)
		}
		if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("modifier %s must be a finite non-negative factor, got %v", s, f)
		}
	}
	return nil
}

// Stats returns the modified stats in sorted order
func (m Modifiers) Stats() []Stat {
	stats := make([]Stat, 0, len(m))
	for s := range m {
		stats = append(stats, s)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i] < stats[j] })
	return stats
}

// Clone returns an independent copy
func (m Modifiers) Clone() Modifiers {
	if m == nil {
		return nil
	}
	out := make(Modifiers, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Scale returns a copy of a with the modifiers applied to the stats the variant owns.
// Markers and unmodified stats pass through unchanged.
func Scale(a Ability, m Modifiers) Ability {
	if len(m) == 0 {
		return a
	}
	switch v := a.(type) {
	case ResourceStorage:
		v.Capacity *= m.Factor(StatCapacity)
		return v
	case ResourceGeneration:
		v.Rate *= m.Factor(StatRate)
		return v
	case ResourceConsumption:
		v.Amount *= m.Factor(StatAmount)
		return v
	case BeamWeapon:
		v.Damage *= m.Factor(StatDamage)
		v.Range *= m.Factor(StatRange)
		v.Reload *= m.Factor(StatReload)
		v.BaseAccuracy *= m.Factor(StatAccuracy)
		return v
	case ProjectileWeapon:
		v.Damage *= m.Factor(StatDamage)
		v.Range *= m.Factor(StatRange)
		v.Reload *= m.Factor(StatReload)
		return v
	case SeekerWeapon:
		v.Damage *= m.Factor(StatDamage)
		v.Range *= m.Factor(StatRange)
		v.Reload *= m.Factor(StatReload)
		return v
	case CombatPropulsion:
		v.ThrustForce *= m.Factor(StatThrust)
		return v
	case ManeuveringThruster:
		v.TurnTorque *= m.Factor(StatTorque)
		return v
	case ShieldProjection:
		v.Capacity *= m.Factor(StatCapacity)
		return v
	case ShieldRegeneration:
		v.Rate *= m.Factor(StatRate)
		return v
	case ToHitAttackModifier:
		v.Value *= m.Factor(StatValue)
		return v
	case ToHitDefenseModifier:
		v.Value *= m.Factor(StatValue)
		return v
	case EmissiveArmor:
		v.DamageReductionThreshold *= m.Factor(StatValue)
		return v
	case VehicleLaunch:
		v.CycleTime *= m.Factor(StatReload)
		return v
	case CrewCapacity:
		v.Amount = int(math.Round(float64(v.Amount) * m.Factor(StatCapacity)))
		return v
	case LifeSupportCapacity:
		v.Amount = int(math.Round(float64(v.Amount) * m.Factor(StatCapacity)))
		return v
	}
	return a
}
