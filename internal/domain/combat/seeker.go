package combat

import (
	"math"

	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
	"github.com/andrescamacho/shipforge-go/internal/domain/shared"
)

const (
	// SeekerMass is the mass of a seeker in flight, used for its radius and size score
	SeekerMass = 2.0
	// SeekerHitPoints is how much damage a seeker absorbs before it is destroyed
	SeekerHitPoints = 1.0
)

// SeekerState tracks a seeker from launch to removal
type SeekerState string

const (
	SeekerFlying      SeekerState = "FLYING"
	SeekerImpacted    SeekerState = "IMPACTED"
	SeekerExpired     SeekerState = "EXPIRED"
	SeekerIntercepted SeekerState = "INTERCEPTED"
)

// Seeker is a guided munition. Its body is an ordinary combatant on the launcher's side, so
// point defense shoots it through the normal fire path.
type Seeker struct {
	body      *Combatant
	owner     *Combatant
	target    *Combatant
	speed     float64
	turnRate  float64
	damage    float64
	remaining float64
	state     SeekerState
}

func newSeeker(id string, owner, target *Combatant, w ability.SeekerWeapon) *Seeker {
	heading := owner.position.BearingTo(target.position)
	body := newBody(id, owner.side, SeekerMass, SeekerHitPoints, w.TurnRate, owner.position, heading)
	body.velocity = shared.FromHeading(heading).Scale(w.ProjectileSpeed)
	return &Seeker{
		body:      body,
		owner:     owner,
		target:    target,
		speed:     w.ProjectileSpeed,
		turnRate:  w.TurnRate,
		damage:    w.Damage,
		remaining: w.Endurance,
		state:     SeekerFlying,
	}
}

// Body returns the seeker's targetable body
func (s *Seeker) Body() *Combatant {
	return s.body
}

func (s *Seeker) ID() string {
	return s.body.id
}

func (s *Seeker) State() SeekerState {
	return s.state
}

func (s *Seeker) Target() *Combatant {
	return s.target
}

// Remaining returns the seconds of endurance left
func (s *Seeker) Remaining() float64 {
	return s.remaining
}

// step steers toward the target by at most turnRate*dt degrees, moves, and resolves impact or
// expiry. It returns true when the seeker hit its target this tick.
func (s *Seeker) step(dt float64) bool {
	if s.state != SeekerFlying {
		return false
	}
	if s.body.destroyed {
		s.state = SeekerIntercepted
		return false
	}

	if !s.target.destroyed {
		desired := s.body.position.BearingTo(s.target.position)
		maxTurn := s.turnRate * dt
		turn := shared.Clamp(shared.AngleDelta(s.body.heading, desired), -maxTurn, maxTurn)
		s.body.heading = shared.NormalizeDegrees(s.body.heading + turn)
	}
	s.body.velocity = shared.FromHeading(s.body.heading).Scale(s.speed)
	s.body.move(dt)
	s.remaining = math.Max(0, s.remaining-dt)

	if !s.target.destroyed && sweptHit(s.body.lastPosition, s.body.position, s.target.lastPosition, s.target.position, s.target.radius) {
		s.state = SeekerImpacted
		return true
	}
	if s.remaining <= 0 {
		s.state = SeekerExpired
	}
	return false
}
