package combat

// FireOutcome is what happened when a mount was asked to fire
type FireOutcome string

const (
	OutcomeFired          FireOutcome = "FIRED"
	OutcomeOutOfRange     FireOutcome = "OUT_OF_RANGE"
	OutcomeOutOfArc       FireOutcome = "OUT_OF_ARC"
	OutcomeResourceDenied FireOutcome = "RESOURCE_DENIED"
	OutcomeOnCooldown     FireOutcome = "ON_COOLDOWN"
)

// Outcomes lists every outcome in report order
var Outcomes = []FireOutcome{
	OutcomeFired,
	OutcomeOutOfRange,
	OutcomeOutOfArc,
	OutcomeResourceDenied,
	OutcomeOnCooldown,
}

func (o FireOutcome) String() string {
	return string(o)
}

// DamageResult splits one hit into what each defense layer stopped
type DamageResult struct {
	Shield  float64 // absorbed by shields
	Reduced float64 // removed by emissive armor
	Hull    float64 // applied to hit points
}

// FireResult is the result of one TryFire call. Only beams resolve a hit immediately; projectile
// and seeker shots return the spawned munition instead.
type FireResult struct {
	Outcome     FireOutcome
	AttackerID  string
	TargetID    string
	MountID     string
	WeaponKind  string
	Probability float64
	Hit         bool
	Damage      DamageResult
	Projectile  *Projectile
	Seeker      *Seeker
}
