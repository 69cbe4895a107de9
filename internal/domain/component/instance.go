package component

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
)

// Instance is one installed copy of a Definition. It is owned by a single ship and never shared
// with the catalog. Abilities are resolved against the instance modifiers when the instance is
// created or its modifiers change.
type Instance struct {
	id         string
	definition *Definition
	layer      Layer
	modifiers  ability.Modifiers
	abilities  []ability.Ability
}

// NewInstance creates an installed component with a fresh instance id
func NewInstance(def *Definition, layer Layer, mods ability.Modifiers) (*Instance, error) {
	return NewInstanceWithID(uuid.NewString(), def, layer, mods)
}

// NewInstanceWithID recreates an installed component with a known id, e.g. when loading a design
func NewInstanceWithID(id string, def *Definition, layer Layer, mods ability.Modifiers) (*Instance, error) {
	if def == nil {
		return nil, fmt.Errorf("definition cannot be nil")
	}
	if id == "" {
		return nil, fmt.Errorf("instance id cannot be empty")
	}
	if layer.Rank() == len(LayerOrder) {
		return nil, fmt.Errorf("unknown layer %q", layer)
	}
	if err := mods.Validate(); err != nil {
		return nil, err
	}

	inst := &Instance{
		id:         id,
		definition: def,
		layer:      layer,
		modifiers:  mods.Clone(),
	}
	inst.resolve()
	return inst, nil
}

func (i *Instance) resolve() {
	declared := i.definition.abilities
	i.abilities = make([]ability.Ability, len(declared))
	for idx, a := range declared {
		i.abilities[idx] = ability.Scale(a, i.modifiers)
	}
}

// WithModifiers returns a copy of the instance, same id and layer, with new modifiers
func (i *Instance) WithModifiers(mods ability.Modifiers) (*Instance, error) {
	return NewInstanceWithID(i.id, i.definition, i.layer, mods)
}

func (i *Instance) ID() string {
	return i.id
}

func (i *Instance) Definition() *Definition {
	return i.definition
}

func (i *Instance) ComponentID() string {
	return i.definition.id
}

func (i *Instance) Layer() Layer {
	return i.layer
}

func (i *Instance) Modifiers() ability.Modifiers {
	return i.modifiers.Clone()
}

// Abilities returns the modifier-scaled abilities in declaration order
func (i *Instance) Abilities() []ability.Ability {
	return append([]ability.Ability(nil), i.abilities...)
}

// Mass returns the definition mass scaled by the mass modifier
func (i *Instance) Mass() float64 {
	return i.definition.mass * i.modifiers.Factor(ability.StatMass)
}

func (i *Instance) HitPoints() float64 {
	return i.definition.hitPoints
}
