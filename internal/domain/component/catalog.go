package component

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
	"github.com/andrescamacho/shipforge-go/internal/domain/shared"
)

// Catalog is an immutable, ordered set of component definitions. It is built explicitly by
// whoever needs it (a session, a test) and passed around by reference; there is no global
// registry.
type Catalog struct {
	ordered []*Definition
	byID    map[string]*Definition
}

// NewCatalog builds a catalog, preserving the order of defs. Duplicate ids are rejected.
func NewCatalog(defs []*Definition) (*Catalog, error) {
	c := &Catalog{
		ordered: make([]*Definition, 0, len(defs)),
		byID:    make(map[string]*Definition, len(defs)),
	}
	for _, d := range defs {
		if d == nil {
			return nil, fmt.Errorf("catalog definitions cannot be nil")
		}
		if _, exists := c.byID[d.id]; exists {
			return nil, shared.NewCatalogError(d.id, "duplicate component id")
		}
		c.byID[d.id] = d
		c.ordered = append(c.ordered, d)
	}
	return c, nil
}

// Get returns the definition for id
func (c *Catalog) Get(id string) (*Definition, error) {
	d, ok := c.byID[id]
	if !ok {
		return nil, shared.NewComponentNotFoundError(id)
	}
	return d, nil
}

// Has reports whether id is in the catalog
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// All returns definitions in catalog order
func (c *Catalog) All() []*Definition {
	return append([]*Definition(nil), c.ordered...)
}

// IDs returns all component ids sorted alphabetically
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *Catalog) Len() int {
	return len(c.ordered)
}

// WithAbility returns definitions declaring at least one ability of kind k, in catalog order
func (c *Catalog) WithAbility(k ability.Kind) []*Definition {
	var out []*Definition
	for _, d := range c.ordered {
		if d.HasAbility(k) {
			out = append(out, d)
		}
	}
	return out
}

// Instantiate creates an installable instance of component id
func (c *Catalog) Instantiate(id string, layer Layer, mods ability.Modifiers) (*Instance, error) {
	def, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	return NewInstance(def, layer, mods)
}
