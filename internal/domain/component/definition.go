package component

import (
	"fmt"
	"math"
	"strings"

	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
	"github.com/andrescamacho/shipforge-go/internal/domain/shared"
)

// Layer is a ship layer a component can be installed in
type Layer string

const (
	LayerCore  Layer = "CORE"
	LayerInner Layer = "INNER"
	LayerOuter Layer = "OUTER"
	LayerArmor Layer = "ARMOR"
)

// LayerOrder is the canonical installation order, innermost first
var LayerOrder = []Layer{LayerCore, LayerInner, LayerOuter, LayerArmor}

// ParseLayer converts a layer name (case-insensitive) into a Layer
func ParseLayer(name string) (Layer, error) {
	l := Layer(strings.ToUpper(strings.TrimSpace(name)))
	for _, known := range LayerOrder {
		if l == known {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown layer %q", name)
}

// Rank returns the position of l in LayerOrder, or len(LayerOrder) when unknown
func (l Layer) Rank() int {
	for i, known := range LayerOrder {
		if l == known {
			return i
		}
	}
	return len(LayerOrder)
}

// Definition is an immutable component type loaded from a catalog
//
// Invariants:
// - ID must be non-empty
// - Mass and HitPoints are finite and non-negative
// - Every ability passed ability.Validate
type Definition struct {
	id            string
	name          string
	mass          float64
	hitPoints     float64
	family        string
	unique        bool
	allowedLayers []Layer
	abilities     []ability.Ability
}

// DefinitionOption sets optional definition attributes
type DefinitionOption func(*Definition)

// WithFamily tags the component with a family used by layer restrictions
func WithFamily(family string) DefinitionOption {
	return func(d *Definition) { d.family = family }
}

// AsUnique limits the component to one copy per ship
func AsUnique() DefinitionOption {
	return func(d *Definition) { d.unique = true }
}

// AllowedIn restricts the layers the component may be installed in
func AllowedIn(layers ...Layer) DefinitionOption {
	return func(d *Definition) { d.allowedLayers = append([]Layer(nil), layers...) }
}

// NewDefinition creates a component definition, rejecting malformed data with a *shared.CatalogError
func NewDefinition(id, name string, mass, hitPoints float64, abilities []ability.Ability, opts ...DefinitionOption) (*Definition, error) {
	d := &Definition{
		id:        id,
		name:      name,
		mass:      mass,
		hitPoints: hitPoints,
		abilities: append([]ability.Ability(nil), abilities...),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.name == "" {
		d.name = id
	}

	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Definition) validate() error {
	if d.id == "" {
		return shared.NewCatalogError("<empty>", "id cannot be empty")
	}
	if d.mass < 0 || math.IsNaN(d.mass) || math.IsInf(d.mass, 0) {
		return shared.NewCatalogError(d.id, "mass must be a finite non-negative number")
	}
	if d.hitPoints < 0 || math.IsNaN(d.hitPoints) || math.IsInf(d.hitPoints, 0) {
		return shared.NewCatalogError(d.id, "hit_points must be a finite non-negative number")
	}
	for i, a := range d.abilities {
		if err := ability.Validate(a); err != nil {
			return shared.NewCatalogError(d.id, fmt.Sprintf("ability %d: %v", i, err))
		}
	}
	for _, l := range d.allowedLayers {
		if l.Rank() == len(LayerOrder) {
			return shared.NewCatalogError(d.id, fmt.Sprintf("unknown layer %q", l))
		}
	}
	return nil
}

// Getters

func (d *Definition) ID() string {
	return d.id
}

func (d *Definition) Name() string {
	return d.name
}

func (d *Definition) Mass() float64 {
	return d.mass
}

func (d *Definition) HitPoints() float64 {
	return d.hitPoints
}

func (d *Definition) Family() string {
	return d.family
}

func (d *Definition) IsUnique() bool {
	return d.unique
}

// Abilities returns a copy of the declared abilities in declaration order
func (d *Definition) Abilities() []ability.Ability {
	return append([]ability.Ability(nil), d.abilities...)
}

// AllowedLayers returns the layers the component may occupy; empty means any
func (d *Definition) AllowedLayers() []Layer {
	return append([]Layer(nil), d.allowedLayers...)
}

// AllowsLayer reports whether the component may be installed in l
func (d *Definition) AllowsLayer(l Layer) bool {
	if len(d.allowedLayers) == 0 {
		return true
	}
	for _, allowed := range d.allowedLayers {
		if allowed == l {
			return true
		}
	}
	return false
}

// HasAbility reports whether any declared ability is of kind k
func (d *Definition) HasAbility(k ability.Kind) bool {
	for _, a := range d.abilities {
		if a.Kind() == k {
			return true
		}
	}
	return false
}

func (d *Definition) String() string {
	return fmt.Sprintf("Component(%s, mass=%.1f, abilities=%d)", d.id, d.mass, len(d.abilities))
}
