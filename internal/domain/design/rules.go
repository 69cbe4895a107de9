package design

import (
	"fmt"
	"sort"
	"strings"

	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
	"github.com/andrescamacho/shipforge-go/internal/domain/component"
)

// Rule names, used as Verdict.Rule and as metric labels
const (
	RuleResourceDependency = "resource_dependency"
	RuleClassRequirement   = "class_requirement"
	RuleLayerRestriction   = "layer_restriction"
	RuleUniqueness         = "uniqueness"
	RuleAllowedLayer       = "allowed_layer"
	RuleLayerMass          = "layer_mass"
	RuleCrew               = "crew"
	RuleLifeSupport        = "life_support"
)

// DefaultRules returns the full rule set in reporting order
func DefaultRules() []Rule {
	return []Rule{
		ResourceDependencyRule{},
		ClassRequirementRule{},
		LayerRestrictionRule{},
		UniquenessRule{},
		AllowedLayerRule{},
		LayerMassRule{},
		CrewRule{},
		LifeSupportRule{},
	}
}

// ResourceDependencyRule checks that every consumed resource kind has storage somewhere on the
// ship. A kind with no storage fails unless something generates it, in which case it only warns:
// the consumer runs hand to mouth on live generation.
type ResourceDependencyRule struct{}

func (ResourceDependencyRule) Name() string { return RuleResourceDependency }

func (r ResourceDependencyRule) Check(snap Snapshot) Verdict {
	needed := make(map[string]bool)
	stored := make(map[string]bool)
	generated := make(map[string]bool)
	for _, a := range snap.Abilities() {
		switch v := a.(type) {
		case ability.ResourceConsumption:
			needed[v.Resource] = true
		case ability.ResourceStorage:
			stored[v.Resource] = true
		case ability.ResourceGeneration:
			generated[v.Resource] = true
		}
	}

	var missing, unbuffered []string
	for _, kind := range sortedKeys(needed) {
		if stored[kind] {
			continue
		}
		if generated[kind] {
			unbuffered = append(unbuffered, kind)
		} else {
			missing = append(missing, kind)
		}
	}

	switch {
	case len(missing) > 0:
		return fail(r.Name(), fmt.Sprintf("no storage or generation for %s", strings.Join(missing, ", ")))
	case len(unbuffered) > 0:
		return warn(r.Name(), fmt.Sprintf("no storage for generated %s", strings.Join(unbuffered, ", ")))
	}
	return pass(r.Name(), "all consumed resources have storage")
}

// ClassRequirementRule checks marker prerequisites: combat movement needs thrust and
// command-dependent systems need a command and control component.
type ClassRequirementRule struct{}

func (ClassRequirementRule) Name() string { return RuleClassRequirement }

func (r ClassRequirementRule) Check(snap Snapshot) Verdict {
	var problems []string

	if snap.HasMarker(ability.KindRequiresCombatMovement) {
		thrust := 0.0
		for _, a := range snap.Abilities() {
			if p, ok := a.(ability.CombatPropulsion); ok {
				thrust += p.ThrustForce
			}
		}
		if thrust <= 0 {
			problems = append(problems, "combat movement required but no propulsion provides thrust")
		}
	}

	if snap.HasMarker(ability.KindRequiresCommandAndControl) && !snap.HasMarker(ability.KindCommandAndControl) {
		problems = append(problems, "command and control required but none installed")
	}

	if len(problems) > 0 {
		return fail(r.Name(), strings.Join(problems, "; "))
	}
	return pass(r.Name(), "requirements met")
}

// LayerRestrictionRule rejects components placed in a layer whose restriction they do not match,
// or in a layer the ship class does not have.
type LayerRestrictionRule struct{}

func (LayerRestrictionRule) Name() string { return RuleLayerRestriction }

func (r LayerRestrictionRule) Check(snap Snapshot) Verdict {
	if snap.Class == nil {
		return pass(r.Name(), "no class restrictions")
	}
	var problems []string
	for _, c := range snap.Components {
		spec, ok := snap.Class.Layer(c.Layer())
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: class %s has no %s layer", c.ComponentID(), snap.Class.Name(), c.Layer()))
			continue
		}
		if !spec.Restriction.Permits(c.Definition()) {
			problems = append(problems, fmt.Sprintf("%s: %s layer accepts only %s", c.ComponentID(), c.Layer(), spec.Restriction))
		}
	}
	if len(problems) > 0 {
		return fail(r.Name(), strings.Join(problems, "; "))
	}
	return pass(r.Name(), "all components fit their layer restrictions")
}

// UniquenessRule allows at most one copy of a component flagged unique
type UniquenessRule struct{}

func (UniquenessRule) Name() string { return RuleUniqueness }

func (r UniquenessRule) Check(snap Snapshot) Verdict {
	counts := make(map[string]int)
	for _, c := range snap.Components {
		if c.Definition().IsUnique() {
			counts[c.ComponentID()]++
		}
	}
	var dupes []string
	for _, id := range sortedCounts(counts) {
		if counts[id] > 1 {
			dupes = append(dupes, fmt.Sprintf("%s x%d", id, counts[id]))
		}
	}
	if len(dupes) > 0 {
		return fail(r.Name(), "unique components installed more than once: "+strings.Join(dupes, ", "))
	}
	return pass(r.Name(), "no duplicated unique components")
}

// AllowedLayerRule rejects components placed outside the layers their definition allows
type AllowedLayerRule struct{}

func (AllowedLayerRule) Name() string { return RuleAllowedLayer }

func (r AllowedLayerRule) Check(snap Snapshot) Verdict {
	var problems []string
	for _, c := range snap.Components {
		if !c.Definition().AllowsLayer(c.Layer()) {
			problems = append(problems, fmt.Sprintf("%s cannot be installed in %s", c.ComponentID(), c.Layer()))
		}
	}
	if len(problems) > 0 {
		return fail(r.Name(), strings.Join(problems, "; "))
	}
	return pass(r.Name(), "all components are in allowed layers")
}

// LayerMassRule enforces the per-layer mass budgets of the ship class
type LayerMassRule struct{}

func (LayerMassRule) Name() string { return RuleLayerMass }

func (r LayerMassRule) Check(snap Snapshot) Verdict {
	if snap.Class == nil {
		return pass(r.Name(), "no class budgets")
	}
	var problems []string
	for _, layer := range component.LayerOrder {
		budget := snap.Class.LayerBudget(layer)
		if budget == 0 {
			continue
		}
		if mass := snap.LayerMass(layer); mass > budget {
			problems = append(problems, fmt.Sprintf("%s holds %.1f of %.1f", layer, mass, budget))
		}
	}
	if len(problems) > 0 {
		return fail(r.Name(), "layer over budget: "+strings.Join(problems, "; "))
	}
	return pass(r.Name(), "all layers within budget")
}

// CrewRule warns when components need more crew than the ship carries. Short-crewed components
// still install but stay inactive.
type CrewRule struct{}

func (CrewRule) Name() string { return RuleCrew }

func (r CrewRule) Check(snap Snapshot) Verdict {
	capacity, required := 0, 0
	for _, a := range snap.Abilities() {
		switch v := a.(type) {
		case ability.CrewCapacity:
			capacity += v.Amount
		case ability.CrewRequired:
			required += v.Amount
		}
	}
	if required > capacity {
		return warn(r.Name(), fmt.Sprintf("components need %d crew but quarters hold %d", required, capacity))
	}
	return pass(r.Name(), fmt.Sprintf("%d of %d crew assigned", required, capacity))
}

// LifeSupportRule warns when installed life support cannot sustain the full crew complement
type LifeSupportRule struct{}

func (LifeSupportRule) Name() string { return RuleLifeSupport }

func (r LifeSupportRule) Check(snap Snapshot) Verdict {
	capacity, support := 0, 0
	declared := false
	for _, a := range snap.Abilities() {
		switch v := a.(type) {
		case ability.CrewCapacity:
			capacity += v.Amount
		case ability.LifeSupportCapacity:
			support += v.Amount
			declared = true
		}
	}
	if declared && capacity > support {
		return warn(r.Name(), fmt.Sprintf("life support covers %d of %d crew", support, capacity))
	}
	return pass(r.Name(), "life support sufficient")
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedCounts(counts map[string]int) []string {
	out := make([]string, 0, len(counts))
	for k := range counts {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
