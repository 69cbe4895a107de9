package design

import (
	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
	"github.com/andrescamacho/shipforge-go/internal/domain/component"
	"github.com/andrescamacho/shipforge-go/internal/domain/ship"
)

// Rule checks one design constraint. Rules are pure: they read the snapshot and return a verdict.
type Rule interface {
	Name() string
	Check(snap Snapshot) Verdict
}

// Snapshot is the component set a rule judges: everything installed plus the optional candidate.
// It is a copy, so rules cannot reach back into the ship.
type Snapshot struct {
	Class      *ship.Class
	Components []*component.Instance
	Candidate  *component.Instance
}

// NewSnapshot captures s with candidate appended. A nil candidate validates the design as is.
func NewSnapshot(s *ship.Ship, candidate *component.Instance) Snapshot {
	components := s.Components()
	if candidate != nil {
		components = append(components, candidate)
	}
	return Snapshot{
		Class:      s.Class(),
		Components: components,
		Candidate:  candidate,
	}
}

// Abilities returns every ability in the snapshot, in component order
func (s Snapshot) Abilities() []ability.Ability {
	var out []ability.Ability
	for _, c := range s.Components {
		out = append(out, c.Abilities()...)
	}
	return out
}

// HasMarker reports whether any component in the snapshot declares the marker kind
func (s Snapshot) HasMarker(k ability.Kind) bool {
	for _, c := range s.Components {
		if c.Definition().HasAbility(k) {
			return true
		}
	}
	return false
}

// LayerMass returns the total mass installed in a layer, candidate included
func (s Snapshot) LayerMass(layer component.Layer) float64 {
	total := 0.0
	for _, c := range s.Components {
		if c.Layer() == layer {
			total += c.Mass()
		}
	}
	return total
}
