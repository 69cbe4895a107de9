package ship

import (
	"math"
	"sort"

	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
	"github.com/andrescamacho/shipforge-go/internal/domain/component"
	"github.com/andrescamacho/shipforge-go/internal/domain/resource"
	"github.com/andrescamacho/shipforge-go/internal/domain/tohit"
)

// defaultActivationPeriod is used for activation costs on components with no periodic ability
const defaultActivationPeriod = 1.0

// Recompute aggregates the abilities of components into a fresh DerivedStats.
//
// Components are visited in the order given, which must be layer order for crew allocation to
// be stable. Inactive components still feed the potential accumulators (storage capacity,
// resource existence, max consumption) so a resource row never disappears because its only
// consumer is switched off; they are excluded from every active accumulator.
//
// Recompute is a total function: it has no error path and no side effects.
func Recompute(components []*component.Instance) DerivedStats {
	return RecomputeAt(components, resource.DefaultTickSeconds)
}

// RecomputeAt is Recompute for a simulation driven at tickSeconds. The tick decides how often an
// activation cost can be paid, and so the max consumption rate of every ledger.
func RecomputeAt(components []*component.Instance, tickSeconds float64) DerivedStats {
	activity := resolveActivity(components)
	acc := newAccumulator(tickSeconds)

	for _, inst := range components {
		acc.add(inst, activity[inst.ID()])
	}

	stats := acc.finish()
	stats.Activity = activity
	return stats
}

// resolveActivity decides which components have their prerequisites met: crew first, in
// installation order, then command and control.
func resolveActivity(components []*component.Instance) map[string]bool {
	crewCapacity, lifeSupport := 0, 0
	hasLifeSupport := false
	for _, inst := range components {
		for _, a := range inst.Abilities() {
			switch v := a.(type) {
			case ability.CrewCapacity:
				crewCapacity += v.Amount
			case ability.LifeSupportCapacity:
				lifeSupport += v.Amount
				hasLifeSupport = true
			}
		}
	}
	remaining := crewCapacity
	if hasLifeSupport && lifeSupport < remaining {
		remaining = lifeSupport
	}

	activity := make(map[string]bool, len(components))
	for _, inst := range components {
		required := 0
		for _, a := range inst.Abilities() {
			if v, ok := a.(ability.CrewRequired); ok {
				required += v.Amount
			}
		}
		if required > remaining {
			activity[inst.ID()] = false
			continue
		}
		remaining -= required
		activity[inst.ID()] = true
	}

	commandAvailable := false
	for _, inst := range components {
		if activity[inst.ID()] && inst.Definition().HasAbility(ability.KindCommandAndControl) {
			commandAvailable = true
			break
		}
	}
	if !commandAvailable {
		for _, inst := range components {
			if inst.Definition().HasAbility(ability.KindRequiresCommandAndControl) {
				activity[inst.ID()] = false
			}
		}
	}

	return activity
}

// accumulator carries the active and potential tallies of one aggregation pass side by side
type accumulator struct {
	stats DerivedStats

	storage           map[string]float64
	generation        map[string]float64 // active
	constant          map[string]float64 // active
	potentialConstant map[string]float64
	activationRate    map[string]float64 // potential
	touched           map[string]bool
	stored            map[string]bool
	generated         map[string]bool
	needed            map[string]bool

	attackGroups  map[string]float64
	defenseGroups map[string]float64

	lifeSupportDeclared bool
	tickSeconds         float64
}

func newAccumulator(tickSeconds float64) *accumulator {
	return &accumulator{
		tickSeconds:       tickSeconds,
		stats:             DerivedStats{Markers: make(map[ability.Kind]int)},
		storage:           make(map[string]float64),
		generation:        make(map[string]float64),
		constant:          make(map[string]float64),
		potentialConstant: make(map[string]float64),
		activationRate:    make(map[string]float64),
		touched:           make(map[string]bool),
		stored:            make(map[string]bool),
		generated:         make(map[string]bool),
		needed:            make(map[string]bool),
		attackGroups:      make(map[string]float64),
		defenseGroups:     make(map[string]float64),
	}
}

func (acc *accumulator) add(inst *component.Instance, active bool) {
	abilities := inst.Abilities()
	uses := usesPerSecond(abilities, acc.tickSeconds)
	costs := activationCosts(abilities)

	acc.stats.Mass += inst.Mass()
	acc.stats.HitPoints += inst.HitPoints()

	for _, a := range abilities {
		switch v := a.(type) {
		case ability.ResourceStorage:
			acc.touched[v.Resource] = true
			acc.stored[v.Resource] = true
			acc.storage[v.Resource] += v.Capacity

		case ability.ResourceGeneration:
			acc.touched[v.Resource] = true
			acc.generated[v.Resource] = true
			if active {
				acc.generation[v.Resource] += v.Rate
			}

		case ability.ResourceConsumption:
			acc.touched[v.Resource] = true
			acc.needed[v.Resource] = true
			switch v.Trigger {
			case ability.TriggerConstant:
				acc.potentialConstant[v.Resource] += v.Amount
				if active {
					acc.constant[v.Resource] += v.Amount
				}
			case ability.TriggerActivation:
				acc.activationRate[v.Resource] += v.Amount * uses
			}

		case ability.BeamWeapon, ability.ProjectileWeapon, ability.SeekerWeapon:
			acc.stats.Weapons = append(acc.stats.Weapons, WeaponStat{
				InstanceID:  inst.ID(),
				ComponentID: inst.ComponentID(),
				Weapon:      v.(ability.Weapon),
				Costs:       costs,
				Active:      active,
			})

		case ability.VehicleLaunch:
			acc.stats.Launchers = append(acc.stats.Launchers, LauncherStat{
				InstanceID:  inst.ID(),
				ComponentID: inst.ComponentID(),
				Launch:      v,
				Costs:       costs,
				Active:      active,
			})

		case ability.CombatPropulsion:
			if active {
				acc.stats.Thrust += v.ThrustForce
			}

		case ability.ManeuveringThruster:
			if active {
				acc.stats.TurnTorque += v.TurnTorque
			}

		case ability.ShieldProjection:
			if active {
				acc.stats.ShieldCapacity += v.Capacity
			}

		case ability.ShieldRegeneration:
			if active {
				acc.stats.ShieldRegeneration += v.Rate
			}

		case ability.ToHitAttackModifier:
			if active {
				keepStrongest(acc.attackGroups, v.StackGroup, v.Value)
			}

		case ability.ToHitDefenseModifier:
			if active {
				keepStrongest(acc.defenseGroups, v.StackGroup, v.Value)
			}

		case ability.EmissiveArmor:
			if active {
				acc.stats.EmissiveThreshold = math.Max(acc.stats.EmissiveThreshold, v.DamageReductionThreshold)
			}

		case ability.CrewCapacity:
			acc.stats.CrewCapacity += v.Amount

		case ability.LifeSupportCapacity:
			acc.stats.LifeSupport += v.Amount
			acc.lifeSupportDeclared = true

		case ability.CrewRequired:
			acc.stats.CrewRequired += v.Amount

		case ability.Marker:
			acc.stats.Markers[v.Tag]++
			if v.Tag == ability.KindCommandAndControl && active {
				acc.stats.HasCommandAndControl = true
			}
		}
	}
}

func (acc *accumulator) finish() DerivedStats {
	s := acc.stats

	s.SensorScore = sumGroups(acc.attackGroups)
	s.ECMScore = sumGroups(acc.defenseGroups)

	if s.Mass > 0 {
		s.Acceleration = s.Thrust / s.Mass
		s.TurnRate = s.TurnTorque / s.Mass
	}
	s.Radius = tohit.Radius(s.Mass)
	s.SizeScore = tohit.SizeScore(s.Radius)
	s.ManeuverScore = tohit.ManeuverScore(s.Acceleration, s.TurnRate)
	s.DefenseScore = s.SizeScore + s.ManeuverScore + s.ECMScore

	s.CrewAvailable = s.CrewCapacity
	if acc.lifeSupportDeclared && s.LifeSupport < s.CrewAvailable {
		s.CrewAvailable = s.LifeSupport
	}

	kinds := sortedKinds(acc.touched)
	ledgers := make([]*resource.Ledger, 0, len(kinds))
	for _, kind := range kinds {
		ledgers = append(ledgers, resource.NewLedger(
			kind,
			acc.storage[kind],
			acc.generation[kind],
			acc.constant[kind],
			acc.potentialConstant[kind]+acc.activationRate[kind],
		))
	}
	s.Ledgers = resource.NewLedgerSet(ledgers...)

	s.StoredResources = sortedKinds(acc.stored)
	s.GeneratedResources = sortedKinds(acc.generated)
	s.NeededResources = sortedKinds(acc.needed)

	return s
}

// usesPerSecond is how many times per second a component can pay its activation costs. Every
// periodic ability (each weapon mount, each bay) pays them on its own cycle, so the rates add up.
func usesPerSecond(abilities []ability.Ability, tickSeconds float64) float64 {
	uses := 0.0
	periodic := false
	for _, a := range abilities {
		if p, ok := a.(ability.Periodic); ok {
			uses += resource.ActivationRate(1, p.ActivationPeriod(), tickSeconds)
			periodic = true
		}
	}
	if !periodic {
		return resource.ActivationRate(1, defaultActivationPeriod, tickSeconds)
	}
	return uses
}

func activationCosts(abilities []ability.Ability) []resource.Cost {
	var costs []resource.Cost
	for _, a := range abilities {
		if c, ok := a.(ability.ResourceConsumption); ok && c.Trigger == ability.TriggerActivation {
			costs = append(costs, resource.Cost{Resource: c.Resource, Amount: c.Amount})
		}
	}
	return costs
}

func keepStrongest(groups map[string]float64, group string, value float64) {
	if current, ok := groups[group]; !ok || value > current {
		groups[group] = value
	}
}

func sumGroups(groups map[string]float64) float64 {
	names := make([]string, 0, len(groups))
	for g := range groups {
		names = append(names, g)
	}
	sort.Strings(names)
	total := 0.0
	for _, g := range names {
		total += groups[g]
	}
	return total
}

func sortedKinds(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
