package ability

// Kind identifies an ability variant. The set of kinds is closed: adding a kind means adding a
// variant struct here and one handler branch in the ship aggregator.
type Kind string

const (
	KindResourceStorage      Kind = "ResourceStorage"
	KindResourceGeneration   Kind = "ResourceGeneration"
	KindResourceConsumption  Kind = "ResourceConsumption"
	KindBeamWeapon           Kind = "BeamWeapon"
	KindProjectileWeapon     Kind = "ProjectileWeapon"
	KindSeekerWeapon         Kind = "SeekerWeapon"
	KindCombatPropulsion     Kind = "CombatPropulsion"
	KindManeuveringThruster  Kind = "ManeuveringThruster"
	KindShieldProjection     Kind = "ShieldProjection"
	KindShieldRegeneration   Kind = "ShieldRegeneration"
	KindToHitAttackModifier  Kind = "ToHitAttackModifier"
	KindToHitDefenseModifier Kind = "ToHitDefenseModifier"
	KindEmissiveArmor        Kind = "EmissiveArmor"
	KindVehicleLaunch        Kind = "VehicleLaunch"
	KindCrewCapacity         Kind = "CrewCapacity"
	KindLifeSupportCapacity  Kind = "LifeSupportCapacity"
	KindCrewRequired         Kind = "CrewRequired"

	// Marker kinds carry no payload
	KindCommandAndControl         Kind = "CommandAndControl"
	KindRequiresCommandAndControl Kind = "RequiresCommandAndControl"
	KindRequiresCombatMovement    Kind = "RequiresCombatMovement"
	KindStructuralIntegrity       Kind = "StructuralIntegrity"
	KindArmor                     Kind = "Armor"
)

var markerKinds = map[Kind]bool{
	KindCommandAndControl:         true,
	KindRequiresCommandAndControl: true,
	KindRequiresCombatMovement:    true,
	KindStructuralIntegrity:       true,
	KindArmor:                     true,
}

// IsMarker reports whether k is a payload-free marker kind
func IsMarker(k Kind) bool {
	return markerKinds[k]
}

// Trigger selects when a ResourceConsumption is charged
type Trigger string

const (
	// TriggerConstant charges Amount per second of simulated time
	TriggerConstant Trigger = "constant"
	// TriggerActivation charges Amount once per discrete use (one shot, one launch)
	TriggerActivation Trigger = "activation"
)

// Ability is a declared capability of a component. Implementations are the variant structs
// in this package; the unexported method keeps the set closed.
type Ability interface {
	Kind() Kind
	isAbility()
}

// Periodic is implemented by abilities that are used in discrete cycles. The period converts
// per-use activation costs into a steady-state rate.
type Periodic interface {
	Ability
	ActivationPeriod() float64
}

// Weapon is implemented by every weapon variant
type Weapon interface {
	Periodic
	WeaponDamage() float64
	WeaponRange() float64
	// ArcDegrees is the full firing arc centred on the mount's facing; 360 means any bearing.
	ArcDegrees() float64
}
