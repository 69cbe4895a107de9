package ship

import (
	"fmt"

	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
	"github.com/andrescamacho/shipforge-go/internal/domain/component"
)

// InstalledComponent is one row of a blueprint: what was installed where, with which modifiers
type InstalledComponent struct {
	InstanceID  string
	ComponentID string
	Layer       component.Layer
	Modifiers   ability.Modifiers
}

// Blueprint is the storable form of a design. It holds catalog references only, so a design
// is rebuilt against whatever catalog is current when it is loaded.
type Blueprint struct {
	ID         string
	Name       string
	ClassName  string
	Components []InstalledComponent
}

// Blueprint captures the ship's identity and installed components in layer order
func (s *Ship) Blueprint() Blueprint {
	bp := Blueprint{
		ID:         s.id,
		Name:       s.name,
		ClassName:  s.class.Name(),
		Components: make([]InstalledComponent, 0, len(s.components)),
	}
	for _, c := range s.components {
		bp.Components = append(bp.Components, InstalledComponent{
			InstanceID:  c.ID(),
			ComponentID: c.ComponentID(),
			Layer:       c.Layer(),
			Modifiers:   c.Modifiers(),
		})
	}
	return bp
}

// Assemble rebuilds a ship from a blueprint. Instance ids are preserved, so the rebuilt ship
// has the same derived stats as the one that was saved, given the same catalog. classes may be
// nil when the blueprint uses the default class.
func Assemble(bp Blueprint, catalog *component.Catalog, classes *ClassCatalog) (*Ship, error) {
	var class *Class
	if bp.ClassName != "" && bp.ClassName != DefaultClass().Name() {
		if classes == nil {
			return nil, fmt.Errorf("design %s: ship class %s not available", bp.ID, bp.ClassName)
		}
		c, err := classes.Get(bp.ClassName)
		if err != nil {
			return nil, fmt.Errorf("design %s: %w", bp.ID, err)
		}
		class = c
	}

	s, err := NewShip(bp.ID, bp.Name, class)
	if err != nil {
		return nil, err
	}

	for _, row := range bp.Components {
		def, err := catalog.Get(row.ComponentID)
		if err != nil {
			return nil, fmt.Errorf("design %s: %w", bp.ID, err)
		}
		inst, err := component.NewInstanceWithID(row.InstanceID, def, row.Layer, row.Modifiers)
		if err != nil {
			return nil, fmt.Errorf("design %s: component %s: %w", bp.ID, row.ComponentID, err)
		}
		if err := s.AddComponent(inst); err != nil {
			return nil, fmt.Errorf("design %s: %w", bp.ID, err)
		}
	}
	return s, nil
}
