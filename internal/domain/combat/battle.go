// Package combat runs fixed-timestep engagements between ship designs.
//
// A Battle is single-threaded. Step is the only writer of ledger levels, shields, cooldowns and
// positions, and every random draw comes from the battle's Resolver.
package combat

import (
	"fmt"
)

// Tally accumulates what happened over a battle
type Tally struct {
	Outcomes map[FireOutcome]int

	Shots     int // activations that fired, all weapon kinds
	Hits      int // beam hits plus projectile and seeker impacts
	BeamShots int
	BeamHits  int

	ShieldDamage  float64
	ReducedDamage float64
	HullDamage    float64

	ProjectilesFired   int
	ProjectileImpacts  int
	SeekersLaunched    int
	SeekersImpacted    int
	SeekersExpired     int
	SeekersIntercepted int
	VehiclesLaunched   int
}

// HitRate is hits over shots, 0 before the first shot
func (t Tally) HitRate() float64 {
	if t.Shots == 0 {
		return 0
	}
	return float64(t.Hits) / float64(t.Shots)
}

// BeamHitRate is beam hits over beam shots, 0 before the first beam shot
func (t Tally) BeamHitRate() float64 {
	if t.BeamShots == 0 {
		return 0
	}
	return float64(t.BeamHits) / float64(t.BeamShots)
}

type participant struct {
	combatant  *Combatant
	controller Controller
}

// Battle is one engagement
type Battle struct {
	resolver     *Resolver
	participants []participant
	projectiles  []*Projectile
	seekers      []*Seeker
	elapsed      float64
	ticks        int
	tally        Tally
}

// NewBattle creates an empty battle whose random stream is seeded from seed
func NewBattle(seed uint64) *Battle {
	return &Battle{
		resolver: NewResolver(seed),
		tally:    Tally{Outcomes: make(map[FireOutcome]int)},
	}
}

// Add enters a combatant. A nil controller leaves it passive: it can be shot but never fires.
// Combatants act in the order they were added.
func (b *Battle) Add(c *Combatant, controller Controller) error {
	for _, p := range b.participants {
		if p.combatant.id == c.id {
			return fmt.Errorf("combatant %s already in battle", c.id)
		}
	}
	b.participants = append(b.participants, participant{combatant: c, controller: controller})
	return nil
}

// Combatants returns the ships in the battle, in the order they were added
func (b *Battle) Combatants() []*Combatant {
	out := make([]*Combatant, 0, len(b.participants))
	for _, p := range b.participants {
		out = append(out, p.combatant)
	}
	return out
}

// Seekers returns the seekers still in flight
func (b *Battle) Seekers() []*Seeker {
	return append([]*Seeker(nil), b.seekers...)
}

// Projectiles returns the projectiles still in flight
func (b *Battle) Projectiles() []*Projectile {
	return append([]*Projectile(nil), b.projectiles...)
}

func (b *Battle) Elapsed() float64 {
	return b.elapsed
}

func (b *Battle) Ticks() int {
	return b.ticks
}

// Tally returns the running totals
func (b *Battle) Tally() Tally {
	t := b.tally
	t.Outcomes = make(map[FireOutcome]int, len(b.tally.Outcomes))
	for k, v := range b.tally.Outcomes {
		t.Outcomes[k] = v
	}
	return t
}

// Over reports whether fewer than two sides still have a ship standing
func (b *Battle) Over() bool {
	sides := make(map[string]bool)
	for _, p := range b.participants {
		if !p.combatant.destroyed {
			sides[p.combatant.side] = true
		}
	}
	return len(sides) < 2
}

// Step advances the battle by dt seconds:
//  1. upkeep: ledgers flow, shields regenerate, cooldowns count down
//  2. every armed combatant tries each mount and bay against its controller's target
//  3. ships, projectiles and seekers move; impacts and expiries resolve
//
// It returns the fire results of this tick in combatant then mount order.
func (b *Battle) Step(dt float64) []FireResult {
	b.elapsed += dt
	b.ticks++

	for _, p := range b.participants {
		if !p.combatant.destroyed {
			p.combatant.advance(dt)
		}
	}

	var results []FireResult
	for _, p := range b.participants {
		c := p.combatant
		if c.destroyed || p.controller == nil || !p.controller.Trigger(c) {
			continue
		}
		target := p.controller.Target(c)
		for _, m := range c.mounts {
			res := b.resolver.TryFire(m, c, target)
			b.record(res)
			results = append(results, res)
		}
		for _, bay := range c.bays {
			if b.resolver.TryLaunch(bay, c) == OutcomeFired {
				b.tally.VehiclesLaunched++
			}
		}
	}

	for _, p := range b.participants {
		if !p.combatant.destroyed {
			p.combatant.move(dt)
		}
	}
	b.stepProjectiles(dt)
	b.stepSeekers(dt)

	return results
}

// Run steps until the battle is over or maxTicks have elapsed, and returns the tally
func (b *Battle) Run(dt float64, maxTicks int) Tally {
	for i := 0; i < maxTicks && !b.Over(); i++ {
		b.Step(dt)
	}
	return b.Tally()
}

func (b *Battle) record(res FireResult) {
	b.tally.Outcomes[res.Outcome]++
	if res.Outcome != OutcomeFired {
		return
	}
	b.tally.Shots++
	switch {
	case res.Projectile != nil:
		b.tally.ProjectilesFired++
		b.projectiles = append(b.projectiles, res.Projectile)
	case res.Seeker != nil:
		b.tally.SeekersLaunched++
		b.seekers = append(b.seekers, res.Seeker)
	default:
		b.tally.BeamShots++
		if res.Hit {
			b.tally.BeamHits++
			b.tally.Hits++
			b.addDamage(res.Damage)
		}
	}
}

func (b *Battle) addDamage(d DamageResult) {
	b.tally.ShieldDamage += d.Shield
	b.tally.ReducedDamage += d.Reduced
	b.tally.HullDamage += d.Hull
}

func (b *Battle) stepProjectiles(dt float64) {
	live := b.projectiles[:0]
	for _, p := range b.projectiles {
		if p.step(dt) {
			b.tally.ProjectileImpacts++
			b.tally.Hits++
			b.addDamage(p.target.ApplyDamage(p.damage))
		}
		if !p.done {
			live = append(live, p)
		}
	}
	b.projectiles = live
}

func (b *Battle) stepSeekers(dt float64) {
	live := b.seekers[:0]
	for _, s := range b.seekers {
		if s.step(dt) {
			b.addDamage(s.target.ApplyDamage(s.damage))
		}
		switch s.state {
		case SeekerFlying:
			live = append(live, s)
		case SeekerImpacted:
			b.tally.SeekersImpacted++
			b.tally.Hits++
		case SeekerExpired:
			b.tally.SeekersExpired++
		case SeekerIntercepted:
			b.tally.SeekersIntercepted++
		}
	}
	b.seekers = live
}
