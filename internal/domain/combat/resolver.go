package combat

import (
	"fmt"
	"math/rand/v2"

	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
	"github.com/andrescamacho/shipforge-go/internal/domain/tohit"
)

// pcgIncrement is the fixed second word of the PCG state; the battle seed supplies the first
const pcgIncrement = 0xda3e39cb94b95bdb

// Resolver decides every weapon activation in one battle. It owns the battle's only random
// stream, so a battle replays exactly from its seed.
type Resolver struct {
	rng      *rand.Rand
	munition int
}

// NewResolver creates a resolver whose random stream is seeded from seed
func NewResolver(seed uint64) *Resolver {
	return &Resolver{rng: rand.New(rand.NewPCG(seed, pcgIncrement))}
}

// TryFire attempts one activation of mount against target. Checks run in a fixed order:
// cooldown, range, arc, resource debit. Only a beam that passes all of them consumes a random
// draw. Resources are debited all-or-nothing; a refused activation leaves every ledger as it was.
func (r *Resolver) TryFire(m *Mount, attacker, target *Combatant) FireResult {
	res := FireResult{
		AttackerID: attacker.id,
		MountID:    m.InstanceID,
		WeaponKind: string(m.Weapon.Kind()),
	}
	if target != nil {
		res.TargetID = target.id
	}

	if m.cooldown > 0 {
		res.Outcome = OutcomeOnCooldown
		return res
	}

	if target == nil || target.destroyed {
		res.Outcome = OutcomeOutOfRange
		return res
	}
	distance := attacker.position.DistanceTo(target.position)
	if tohit.SurfaceDistance(distance, target.radius) > m.Weapon.WeaponRange() {
		res.Outcome = OutcomeOutOfRange
		return res
	}

	if !m.InArc(attacker.heading, attacker.position.BearingTo(target.position)) {
		res.Outcome = OutcomeOutOfArc
		return res
	}

	if !attacker.ledgers.TryConsumeAll(m.Costs) {
		res.Outcome = OutcomeResourceDenied
		return res
	}

	m.cooldown = m.Weapon.ActivationPeriod()
	res.Outcome = OutcomeFired

	switch w := m.Weapon.(type) {
	case ability.BeamWeapon:
		b := tohit.Evaluate(tohit.Shot{
			BaseAccuracy:    w.BaseAccuracy,
			AccuracyFalloff: w.AccuracyFalloff,
			SensorScore:     attacker.sensorScore,
			CenterDistance:  distance,
			TargetMass:      target.mass,
			TargetDefense:   target.defenseScore,
		})
		res.Probability = b.Probability
		if r.rng.Float64() < b.Probability {
			res.Hit = true
			res.Damage = target.ApplyDamage(w.Damage)
		}

	case ability.ProjectileWeapon:
		res.Projectile = newProjectile(r.nextID("projectile"), attacker, target, w)

	case ability.SeekerWeapon:
		res.Seeker = newSeeker(r.nextID("seeker"), attacker, target, w)
	}
	return res
}

// TryLaunch attempts one vehicle launch from a bay: cooldown, then resource debit
func (r *Resolver) TryLaunch(b *Bay, carrier *Combatant) FireOutcome {
	if b.cooldown > 0 {
		return OutcomeOnCooldown
	}
	if !carrier.ledgers.TryConsumeAll(b.Costs) {
		return OutcomeResourceDenied
	}
	b.cooldown = b.Launch.CycleTime
	b.launched++
	return OutcomeFired
}

func (r *Resolver) nextID(prefix string) string {
	r.munition++
	return fmt.Sprintf("%s-%d", prefix, r.munition)
}
