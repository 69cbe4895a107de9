package combat

import (
	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
	"github.com/andrescamacho/shipforge-go/internal/domain/shared"
)

// Projectile is an unguided slug flying at constant velocity toward where its target was
// when it was fired. It lives for range / speed seconds.
type Projectile struct {
	id        string
	owner     *Combatant
	target    *Combatant
	position  shared.Vec2
	velocity  shared.Vec2
	damage    float64
	remaining float64
	done      bool
}

func newProjectile(id string, owner, target *Combatant, w ability.ProjectileWeapon) *Projectile {
	dir := target.position.Sub(owner.position)
	if l := dir.Len(); l > 0 {
		dir = dir.Scale(1 / l)
	} else {
		dir = shared.FromHeading(owner.heading)
	}
	lifetime := 0.0
	if w.ProjectileSpeed > 0 {
		lifetime = w.Range / w.ProjectileSpeed
	}
	return &Projectile{
		id:        id,
		owner:     owner,
		target:    target,
		position:  owner.position,
		velocity:  dir.Scale(w.ProjectileSpeed),
		damage:    w.Damage,
		remaining: lifetime,
	}
}

func (p *Projectile) ID() string {
	return p.id
}

func (p *Projectile) Position() shared.Vec2 {
	return p.position
}

func (p *Projectile) Done() bool {
	return p.done
}

// step moves the projectile and reports whether it struck its target this tick.
// The hit test sweeps the projectile path against the target's motion over the same tick.
func (p *Projectile) step(dt float64) bool {
	if p.done {
		return false
	}
	from := p.position
	p.position = p.position.Add(p.velocity.Scale(dt))
	p.remaining -= dt

	if !p.target.destroyed && sweptHit(from, p.position, p.target.lastPosition, p.target.position, p.target.radius) {
		p.done = true
		return true
	}
	if p.remaining <= 0 {
		p.done = true
	}
	return false
}

// sweptHit tests a moving point against a moving circle over one tick. Working in the target's
// frame turns it into a static segment-circle test.
func sweptHit(from, to, targetFrom, targetTo shared.Vec2, radius float64) bool {
	a := from.Sub(targetFrom)
	b := to.Sub(targetTo)
	return segmentHitsCircle(a, b, radius)
}

// segmentHitsCircle reports whether segment a-b passes within radius of the origin
func segmentHitsCircle(a, b shared.Vec2, radius float64) bool {
	d := b.Sub(a)
	dd := d.Dot(d)
	if dd == 0 {
		return a.Len() <= radius
	}
	t := shared.Clamp(-a.Dot(d)/dd, 0, 1)
	closest := a.Add(d.Scale(t))
	return closest.Len() <= radius
}
