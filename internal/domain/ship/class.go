package ship

import (
	"fmt"
	"sort"
	"strings"

	"github.com/andrescamacho/shipforge-go/internal/domain/component"
)

// LayerRestriction limits a layer to one component family. A component matches when its family
// tag equals Family or its id starts with IDPrefix. An empty restriction admits everything.
type LayerRestriction struct {
	Family   string
	IDPrefix string
}

// IsZero reports whether the restriction admits everything
func (r LayerRestriction) IsZero() bool {
	return r.Family == "" && r.IDPrefix == ""
}

// Permits reports whether def may be placed under this restriction
func (r LayerRestriction) Permits(def *component.Definition) bool {
	if r.IsZero() {
		return true
	}
	if r.Family != "" && def.Family() == r.Family {
		return true
	}
	if r.IDPrefix != "" && strings.HasPrefix(def.ID(), r.IDPrefix) {
		return true
	}
	return false
}

func (r LayerRestriction) String() string {
	switch {
	case r.Family != "" && r.IDPrefix != "":
		return fmt.Sprintf("family %q or prefix %q", r.Family, r.IDPrefix)
	case r.Family != "":
		return fmt.Sprintf("family %q", r.Family)
	case r.IDPrefix != "":
		return fmt.Sprintf("prefix %q", r.IDPrefix)
	}
	return "unrestricted"
}

// LayerSpec describes one layer of a ship class
type LayerSpec struct {
	Layer        component.Layer
	MassFraction float64 // share of the class max mass this layer may hold; 0 = no budget
	Restriction  LayerRestriction
}

// Class is a hull type: which layers exist, their budgets and restrictions
//
// Invariants:
// - Name must be non-empty
// - MaxMass >= 0 (0 means unlimited)
// - Each layer appears at most once and MassFraction is within [0, 1]
type Class struct {
	name    string
	maxMass float64
	layers  []LayerSpec
}

// NewClass creates a ship class; layers are stored in canonical layer order
func NewClass(name string, maxMass float64, layers []LayerSpec) (*Class, error) {
	if name == "" {
		return nil, fmt.Errorf("class name cannot be empty")
	}
	if maxMass < 0 {
		return nil, fmt.Errorf("class %s: max_mass cannot be negative", name)
	}
	seen := make(map[component.Layer]bool, len(layers))
	for _, l := range layers {
		if l.Layer.Rank() == len(component.LayerOrder) {
			return nil, fmt.Errorf("class %s: unknown layer %q", name, l.Layer)
		}
		if seen[l.Layer] {
			return nil, fmt.Errorf("class %s: duplicate layer %s", name, l.Layer)
		}
		if l.MassFraction < 0 || l.MassFraction > 1 {
			return nil, fmt.Errorf("class %s: layer %s mass_fraction must be within [0, 1]", name, l.Layer)
		}
		seen[l.Layer] = true
	}

	ordered := append([]LayerSpec(nil), layers...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Layer.Rank() < ordered[j].Layer.Rank()
	})

	return &Class{name: name, maxMass: maxMass, layers: ordered}, nil
}

// DefaultClass has every layer, no budgets and no restrictions
func DefaultClass() *Class {
	layers := make([]LayerSpec, 0, len(component.LayerOrder))
	for _, l := range component.LayerOrder {
		layers = append(layers, LayerSpec{Layer: l})
	}
	c, _ := NewClass("Unclassed", 0, layers)
	return c
}

func (c *Class) Name() string {
	return c.name
}

func (c *Class) MaxMass() float64 {
	return c.maxMass
}

// Layers returns the layer specs innermost first
func (c *Class) Layers() []LayerSpec {
	return append([]LayerSpec(nil), c.layers...)
}

// Layer returns the LayerSpec for l
func (c *Class) Layer(l component.Layer) (LayerSpec, bool) {
	for _, spec := range c.layers {
		if spec.Layer == l {
			return spec, true
		}
	}
	return LayerSpec{}, false
}

// LayerBudget returns the mass budget of a layer, 0 when unlimited
func (c *Class) LayerBudget(l component.Layer) float64 {
	spec, ok := c.Layer(l)
	if !ok || c.maxMass == 0 || spec.MassFraction == 0 {
		return 0
	}
	return c.maxMass * spec.MassFraction
}

// ClassCatalog is an immutable set of ship classes keyed by name
type ClassCatalog struct {
	ordered []*Class
	byName  map[string]*Class
}

// NewClassCatalog builds a class catalog; duplicate names are rejected
func NewClassCatalog(classes []*Class) (*ClassCatalog, error) {
	cc := &ClassCatalog{byName: make(map[string]*Class, len(classes))}
	for _, c := range classes {
		if _, exists := cc.byName[c.name]; exists {
			return nil, fmt.Errorf("duplicate ship class %s", c.name)
		}
		cc.byName[c.name] = c
		cc.ordered = append(cc.ordered, c)
	}
	return cc, nil
}

// Get returns the class called name
func (cc *ClassCatalog) Get(name string) (*Class, error) {
	c, ok := cc.byName[name]
	if !ok {
		return nil, fmt.Errorf("ship class not found: %s", name)
	}
	return c, nil
}

// All returns the classes in declaration order
func (cc *ClassCatalog) All() []*Class {
	return append([]*Class(nil), cc.ordered...)
}

func (cc *ClassCatalog) Len() int {
	return len(cc.ordered)
}
