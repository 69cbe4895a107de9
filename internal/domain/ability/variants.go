package ability

// Resource abilities

type ResourceStorage struct {
	Resource string
	Capacity float64
}

func (ResourceStorage) Kind() Kind { return KindResourceStorage }
func (ResourceStorage) isAbility() {}

type ResourceGeneration struct {
	Resource string
	Rate     float64
}

func (ResourceGeneration) Kind() Kind { return KindResourceGeneration }
func (ResourceGeneration) isAbility() {}

type ResourceConsumption struct {
	Resource string
	Amount   float64
	Trigger  Trigger
}

func (ResourceConsumption) Kind() Kind { return KindResourceConsumption }
func (ResourceConsumption) isAbility() {}

// Weapons

type BeamWeapon struct {
	Damage          float64
	Range           float64
	Reload          float64
	BaseAccuracy    float64
	AccuracyFalloff float64
	FiringArc       float64
}

func (BeamWeapon) Kind() Kind                  { return KindBeamWeapon }
func (BeamWeapon) isAbility()                  {}
func (w BeamWeapon) ActivationPeriod() float64 { return w.Reload }
func (w BeamWeapon) WeaponDamage() float64     { return w.Damage }
func (w BeamWeapon) WeaponRange() float64      { return w.Range }
func (w BeamWeapon) ArcDegrees() float64       { return w.FiringArc }

type ProjectileWeapon struct {
	Damage          float64
	ProjectileSpeed float64
	Range           float64
	Reload          float64
	FiringArc       float64
}

func (ProjectileWeapon) Kind() Kind                  { return KindProjectileWeapon }
func (ProjectileWeapon) isAbility()                  {}
func (w ProjectileWeapon) ActivationPeriod() float64 { return w.Reload }
func (w ProjectileWeapon) WeaponDamage() float64     { return w.Damage }
func (w ProjectileWeapon) WeaponRange() float64      { return w.Range }
func (w ProjectileWeapon) ArcDegrees() float64       { return w.FiringArc }

// SeekerWeapon launches guided munitions. Seekers steer after launch, so the launcher has no arc.
type SeekerWeapon struct {
	Damage          float64
	ProjectileSpeed float64
	TurnRate        float64
	Endurance       float64
	Range           float64
	Reload          float64
}

func (SeekerWeapon) Kind() Kind                  { return KindSeekerWeapon }
func (SeekerWeapon) isAbility()                  {}
func (w SeekerWeapon) ActivationPeriod() float64 { return w.Reload }
func (w SeekerWeapon) WeaponDamage() float64     { return w.Damage }
func (w SeekerWeapon) WeaponRange() float64      { return w.Range }
func (w SeekerWeapon) ArcDegrees() float64       { return 360 }

// Movement

type CombatPropulsion struct {
	ThrustForce float64
}

func (CombatPropulsion) Kind() Kind { return KindCombatPropulsion }
func (CombatPropulsion) isAbility() {}

type ManeuveringThruster struct {
	TurnTorque float64
}

func (ManeuveringThruster) Kind() Kind { return KindManeuveringThruster }
func (ManeuveringThruster) isAbility() {}

// Defense

type ShieldProjection struct {
	Capacity float64
}

func (ShieldProjection) Kind() Kind { return KindShieldProjection }
func (ShieldProjection) isAbility() {}

type ShieldRegeneration struct {
	Rate float64
}

func (ShieldRegeneration) Kind() Kind { return KindShieldRegeneration }
func (ShieldRegeneration) isAbility() {}

type ToHitAttackModifier struct {
	Value      float64
	StackGroup string
}

func (ToHitAttackModifier) Kind() Kind { return KindToHitAttackModifier }
func (ToHitAttackModifier) isAbility() {}

type ToHitDefenseModifier struct {
	Value      float64
	StackGroup string
}

func (ToHitDefenseModifier) Kind() Kind { return KindToHitDefenseModifier }
func (ToHitDefenseModifier) isAbility() {}

type EmissiveArmor struct {
	DamageReductionThreshold float64
}

func (EmissiveArmor) Kind() Kind { return KindEmissiveArmor }
func (EmissiveArmor) isAbility() {}

// Hangar

type VehicleLaunch struct {
	CycleTime float64
	Payload   string
}

func (VehicleLaunch) Kind() Kind                  { return KindVehicleLaunch }
func (VehicleLaunch) isAbility()                  {}
func (v VehicleLaunch) ActivationPeriod() float64 { return v.CycleTime }

// Crew

type CrewCapacity struct {
	Amount int
}

func (CrewCapacity) Kind() Kind { return KindCrewCapacity }
func (CrewCapacity) isAbility() {}

type LifeSupportCapacity struct {
	Amount int
}

func (LifeSupportCapacity) Kind() Kind { return KindLifeSupportCapacity }
func (LifeSupportCapacity) isAbility() {}

type CrewRequired struct {
	Amount int
}

func (CrewRequired) Kind() Kind { return KindCrewRequired }
func (CrewRequired) isAbility() {}

// Marker is a payload-free ability such as CommandAndControl or Armor
type Marker struct {
	Tag Kind
}

func (m Marker) Kind() Kind { return m.Tag }
func (Marker) isAbility()   {}

// NewMarker returns a marker ability, or false when k is not a marker kind
func NewMarker(k Kind) (Marker, bool) {
	if !IsMarker(k) {
		return Marker{}, false
	}
	return Marker{Tag: k}, true
}
