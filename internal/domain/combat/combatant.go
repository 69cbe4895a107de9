package combat

import (
	"fmt"
	"math"

	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
	"github.com/andrescamacho/shipforge-go/internal/domain/resource"
	"github.com/andrescamacho/shipforge-go/internal/domain/shared"
	"github.com/andrescamacho/shipforge-go/internal/domain/ship"
	"github.com/andrescamacho/shipforge-go/internal/domain/tohit"
)

const cooldownEpsilon = 1e-9

// Mount is one weapon on a combatant with its own cooldown
type Mount struct {
	InstanceID  string
	ComponentID string
	Weapon      ability.Weapon
	Costs       []resource.Cost
	// Facing is the mount's centre line relative to the combatant heading, in degrees
	Facing   float64
	cooldown float64
}

// Cooldown returns the seconds until the mount can fire again
func (m *Mount) Cooldown() float64 {
	return m.cooldown
}

// InArc reports whether an absolute bearing falls inside the mount's firing arc
func (m *Mount) InArc(heading, bearing float64) bool {
	arc := m.Weapon.ArcDegrees()
	if arc >= 360 {
		return true
	}
	return math.Abs(shared.AngleDelta(heading+m.Facing, bearing)) <= arc/2
}

func (m *Mount) tick(dt float64) {
	m.cooldown = countDown(m.cooldown, dt)
}

// Bay is a vehicle launcher on a combatant
type Bay struct {
	InstanceID string
	Launch     ability.VehicleLaunch
	Costs      []resource.Cost
	cooldown   float64
	launched   int
}

// Launched returns how many vehicles the bay has put out
func (b *Bay) Launched() int {
	return b.launched
}

func (b *Bay) tick(dt float64) {
	b.cooldown = countDown(b.cooldown, dt)
}

// countDown subtracts dt from a cooldown. Float residue below cooldownEpsilon counts as ready,
// so a reload that is a whole number of ticks fires on exactly that tick.
func countDown(cooldown, dt float64) float64 {
	cooldown -= dt
	if cooldown < cooldownEpsilon {
		return 0
	}
	return cooldown
}

// Combatant is any body that can be targeted: a ship or a seeker in flight.
// The battle loop is its only writer.
type Combatant struct {
	id   string
	side string

	position     shared.Vec2
	lastPosition shared.Vec2
	velocity     shared.Vec2
	heading      float64

	mass         float64
	radius       float64
	hitPoints    float64
	maxHitPoints float64

	shields           float64
	shieldCapacity    float64
	shieldRegen       float64
	emissiveThreshold float64

	sensorScore  float64
	defenseScore float64

	ledgers   *resource.LedgerSet
	mounts    []*Mount
	bays      []*Bay
	destroyed bool
}

// NewCombatant puts a ship design into battle. The combatant works on a full copy of the ship's
// ledgers, so the design itself is untouched by the fight. Only active weapons and bays are
// mounted.
func NewCombatant(id, side string, s *ship.Ship, position shared.Vec2, heading float64) *Combatant {
	stats := s.Stats()
	c := &Combatant{
		id:                id,
		side:              side,
		position:          position,
		lastPosition:      position,
		heading:           shared.NormalizeDegrees(heading),
		mass:              stats.Mass,
		radius:            stats.Radius,
		hitPoints:         stats.HitPoints,
		maxHitPoints:      stats.HitPoints,
		shields:           stats.ShieldCapacity,
		shieldCapacity:    stats.ShieldCapacity,
		shieldRegen:       stats.ShieldRegeneration,
		emissiveThreshold: stats.EmissiveThreshold,
		sensorScore:       stats.SensorScore,
		defenseScore:      stats.DefenseScore,
		ledgers:           stats.Ledgers.Clone(),
	}
	c.ledgers.Fill()
	for _, w := range stats.ActiveWeapons() {
		c.mounts = append(c.mounts, &Mount{
			InstanceID:  w.InstanceID,
			ComponentID: w.ComponentID,
			Weapon:      w.Weapon,
			Costs:       w.Costs,
		})
	}
	for _, l := range stats.Launchers {
		if !l.Active {
			continue
		}
		c.bays = append(c.bays, &Bay{InstanceID: l.InstanceID, Launch: l.Launch, Costs: l.Costs})
	}
	return c
}

// Getters

func (c *Combatant) ID() string {
	return c.id
}

func (c *Combatant) Side() string {
	return c.side
}

func (c *Combatant) Position() shared.Vec2 {
	return c.position
}

func (c *Combatant) Velocity() shared.Vec2 {
	return c.velocity
}

func (c *Combatant) Heading() float64 {
	return c.heading
}

func (c *Combatant) Mass() float64 {
	return c.mass
}

func (c *Combatant) Radius() float64 {
	return c.radius
}

func (c *Combatant) HitPoints() float64 {
	return c.hitPoints
}

func (c *Combatant) MaxHitPoints() float64 {
	return c.maxHitPoints
}

func (c *Combatant) Shields() float64 {
	return c.shields
}

func (c *Combatant) SensorScore() float64 {
	return c.sensorScore
}

func (c *Combatant) DefenseScore() float64 {
	return c.defenseScore
}

func (c *Combatant) Ledgers() *resource.LedgerSet {
	return c.ledgers
}

func (c *Combatant) Mounts() []*Mount {
	return c.mounts
}

func (c *Combatant) Bays() []*Bay {
	return c.bays
}

func (c *Combatant) Destroyed() bool {
	return c.destroyed
}

// IsHostileTo reports whether two combatants are on different sides
func (c *Combatant) IsHostileTo(other *Combatant) bool {
	return other != nil && c.side != other.side
}

// SetVelocity sets a constant drift velocity
func (c *Combatant) SetVelocity(v shared.Vec2) {
	c.velocity = v
}

// SetHeading points the combatant at an absolute heading in degrees
func (c *Combatant) SetHeading(degrees float64) {
	c.heading = shared.NormalizeDegrees(degrees)
}

// ApplyDamage runs a hit through shields, then emissive armor, then the hull
func (c *Combatant) ApplyDamage(amount float64) DamageResult {
	var r DamageResult
	if amount <= 0 || c.destroyed {
		return r
	}

	r.Shield = math.Min(c.shields, amount)
	c.shields -= r.Shield
	remaining := amount - r.Shield

	r.Reduced = math.Min(remaining, c.emissiveThreshold)
	remaining -= r.Reduced

	r.Hull = math.Min(remaining, c.hitPoints)
	c.hitPoints -= r.Hull
	if c.hitPoints <= 0 && remaining > 0 {
		c.destroyed = true
	}
	return r
}

// advance runs the per-tick upkeep: resource flow, shield regeneration, cooldowns
func (c *Combatant) advance(dt float64) {
	c.ledgers.Advance(dt)
	c.shields = shared.Clamp(c.shields+c.shieldRegen*dt, 0, c.shieldCapacity)
	for _, m := range c.mounts {
		m.tick(dt)
	}
	for _, b := range c.bays {
		b.tick(dt)
	}
}

func (c *Combatant) move(dt float64) {
	c.lastPosition = c.position
	c.position = c.position.Add(c.velocity.Scale(dt))
}

func (c *Combatant) String() string {
	return fmt.Sprintf("Combatant(%s side=%s hp=%.1f/%.1f shields=%.1f)", c.id, c.side, c.hitPoints, c.maxHitPoints, c.shields)
}

// newBody builds a bare target body with no systems, used for munitions in flight
func newBody(id, side string, mass, hitPoints, turnRate float64, position shared.Vec2, heading float64) *Combatant {
	return &Combatant{
		id:           id,
		side:         side,
		position:     position,
		lastPosition: position,
		heading:      shared.NormalizeDegrees(heading),
		mass:         mass,
		radius:       tohit.Radius(mass),
		hitPoints:    hitPoints,
		maxHitPoints: hitPoints,
		defenseScore: tohit.DefenseScore(mass, 0, turnRate, 0),
		ledgers:      resource.NewLedgerSet(),
	}
}
