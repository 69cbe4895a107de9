package ship

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
	"github.com/andrescamacho/shipforge-go/internal/domain/component"
	"github.com/andrescamacho/shipforge-go/internal/domain/resource"
	"github.com/andrescamacho/shipforge-go/internal/domain/shared"
)

// Ship is a design being assembled from catalog components
//
// Invariants:
// - ID and Name must be non-empty
// - Every installed component sits in a layer the class defines
// - Installed components are kept in layer order; insertion order within a layer is preserved
// - stats always reflect the current component list (recomputed on every structural change)
//
// Ship assumes a single writer. Validation and display code only read it.
type Ship struct {
	id         string
	name       string
	class      *Class
	components []*component.Instance
	stats      DerivedStats
	tick       float64
}

// NewShip creates an empty design. A nil class uses DefaultClass.
func NewShip(id, name string, class *Class) (*Ship, error) {
	if class == nil {
		class = DefaultClass()
	}
	s := &Ship{
		id:    id,
		name:  name,
		class: class,
		tick:  resource.DefaultTickSeconds,
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	s.Recompute()
	return s, nil
}

func (s *Ship) validate() error {
	if s.id == "" {
		return shared.NewInvalidShipDataError("ship id cannot be empty")
	}
	if s.name == "" {
		return shared.NewInvalidShipDataError("ship name cannot be empty")
	}
	return nil
}

// Getters

func (s *Ship) ID() string {
	return s.id
}

func (s *Ship) Name() string {
	return s.name
}

func (s *Ship) Class() *Class {
	return s.class
}

// Components returns the installed components in layer order
func (s *Ship) Components() []*component.Instance {
	return append([]*component.Instance(nil), s.components...)
}

// ComponentsInLayer returns the installed components of one layer
func (s *Ship) ComponentsInLayer(layer component.Layer) []*component.Instance {
	var out []*component.Instance
	for _, c := range s.components {
		if c.Layer() == layer {
			out = append(out, c)
		}
	}
	return out
}

// Component returns the installed instance with the given id
func (s *Ship) Component(instanceID string) (*component.Instance, error) {
	for _, c := range s.components {
		if c.ID() == instanceID {
			return c, nil
		}
	}
	return nil, shared.NewInstanceNotFoundError(instanceID)
}

// Stats returns the cached derived stats
func (s *Ship) Stats() DerivedStats {
	return s.stats
}

// Ledgers returns the live resource ledgers. Only the simulation tick and weapon activation
// may mutate them.
func (s *Ship) Ledgers() *resource.LedgerSet {
	return s.stats.Ledgers
}

// IsActive reports whether an installed component currently meets its prerequisites
func (s *Ship) IsActive(instanceID string) bool {
	return s.stats.IsActive(instanceID)
}

// Mass returns the total installed mass
func (s *Ship) Mass() float64 {
	return s.stats.Mass
}

// LayerMass returns the installed mass in one layer
func (s *Ship) LayerMass(layer component.Layer) float64 {
	total := 0.0
	for _, c := range s.ComponentsInLayer(layer) {
		total += c.Mass()
	}
	return total
}

// Structural edits

// AddComponent installs inst and recomputes. Design rules are not checked here; callers run the
// design validator with inst as the candidate first.
func (s *Ship) AddComponent(inst *component.Instance) error {
	if inst == nil {
		return shared.NewInvalidShipDataError("component cannot be nil")
	}
	if _, ok := s.class.Layer(inst.Layer()); !ok {
		return shared.NewInvalidShipDataError(fmt.Sprintf("class %s has no %s layer", s.class.Name(), inst.Layer()))
	}
	for _, c := range s.components {
		if c.ID() == inst.ID() {
			return shared.NewInvalidShipDataError(fmt.Sprintf("instance %s already installed", inst.ID()))
		}
	}

	s.components = append(s.components, inst)
	s.sortComponents()
	s.Recompute()
	return nil
}

// RemoveComponent uninstalls the instance with the given id and recomputes
func (s *Ship) RemoveComponent(instanceID string) (*component.Instance, error) {
	for i, c := range s.components {
		if c.ID() == instanceID {
			s.components = append(s.components[:i:i], s.components[i+1:]...)
			s.Recompute()
			return c, nil
		}
	}
	return nil, shared.NewInstanceNotFoundError(instanceID)
}

// SetModifiers replaces the instance modifiers of an installed component and recomputes
func (s *Ship) SetModifiers(instanceID string, mods ability.Modifiers) error {
	for i, c := range s.components {
		if c.ID() != instanceID {
			continue
		}
		updated, err := c.WithModifiers(mods)
		if err != nil {
			return shared.NewInvalidShipDataError(err.Error())
		}
		s.components[i] = updated
		s.Recompute()
		return nil
	}
	return shared.NewInstanceNotFoundError(instanceID)
}

// TickSeconds returns the simulation step the ledgers are rated for
func (s *Ship) TickSeconds() float64 {
	return s.tick
}

// SetTickSeconds rates the ledgers for a simulation driven at tick and recomputes.
// A non-positive tick means resource.DefaultTickSeconds.
func (s *Ship) SetTickSeconds(tick float64) {
	if tick <= 0 {
		tick = resource.DefaultTickSeconds
	}
	s.tick = tick
	s.Recompute()
}

// Recompute rebuilds the derived stats and ledgers from the installed components.
// It is idempotent; the only effect is replacing the cached stats.
func (s *Ship) Recompute() {
	s.stats = RecomputeAt(s.components, s.tick)
}

func (s *Ship) sortComponents() {
	sort.SliceStable(s.components, func(i, j int) bool {
		return s.components[i].Layer().Rank() < s.components[j].Layer().Rank()
	})
}

func (s *Ship) String() string {
	return fmt.Sprintf("Ship(%s %q class=%s components=%d mass=%.1f)",
		s.id, s.name, s.class.Name(), len(s.components), s.stats.Mass)
}
