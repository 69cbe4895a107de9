package ability

import (
	"fmt"
	"math"
)

// Validate rejects malformed ability payloads. It runs once, when a catalog is loaded;
// the aggregator assumes every ability it sees has passed.
func Validate(a Ability) error {
	switch v := a.(type) {
	case ResourceStorage:
		return firstError(
			requireResource(v.Resource),
			nonNegative("capacity", v.Capacity),
		)
	case ResourceGeneration:
		return firstError(
			requireResource(v.Resource),
			nonNegative("rate", v.Rate),
		)
	case ResourceConsumption:
		if v.Trigger != TriggerConstant && v.Trigger != TriggerActivation {
			return fmt.Errorf("unknown trigger %q", v.Trigger)
		}
		return firstError(
			requireResource(v.Resource),
			nonNegative("amount", v.Amount),
		)
	case BeamWeapon:
		return firstError(
			nonNegative("damage", v.Damage),
			positive("range", v.Range),
			nonNegative("reload", v.Reload),
			finite("base_accuracy", v.BaseAccuracy),
			nonNegative("accuracy_falloff", v.AccuracyFalloff),
			arc(v.FiringArc),
		)
	case ProjectileWeapon:
		return firstError(
			nonNegative("damage", v.Damage),
			positive("projectile_speed", v.ProjectileSpeed),
			positive("range", v.Range),
			nonNegative("reload", v.Reload),
			arc(v.FiringArc),
		)
	case SeekerWeapon:
		return firstError(
			nonNegative("damage", v.Damage),
			positive("projectile_speed", v.ProjectileSpeed),
			nonNegative("turn_rate", v.TurnRate),
			positive("endurance", v.Endurance),
			positive("range", v.Range),
			nonNegative("reload", v.Reload),
		)
	case CombatPropulsion:
		return nonNegative("thrust_force", v.ThrustForce)
	case ManeuveringThruster:
		return nonNegative("turn_torque", v.TurnTorque)
	case ShieldProjection:
		return nonNegative("capacity", v.Capacity)
	case ShieldRegeneration:
		return nonNegative("rate", v.Rate)
	case ToHitAttackModifier:
		return firstError(finite("value", v.Value), stackGroup(v.StackGroup))
	case ToHitDefenseModifier:
		return firstError(finite("value", v.Value), stackGroup(v.StackGroup))
	case EmissiveArmor:
		return nonNegative("damage_reduction_threshold", v.DamageReductionThreshold)
	case VehicleLaunch:
		if v.Payload == "" {
			return fmt.Errorf("payload cannot be empty")
		}
		return positive("cycle_time", v.CycleTime)
	case CrewCapacity:
		return nonNegative("amount", float64(v.Amount))
	case LifeSupportCapacity:
		return nonNegative("amount", float64(v.Amount))
	case CrewRequired:
		return nonNegative("amount", float64(v.Amount))
	case Marker:
		if !IsMarker(v.Tag) {
			return fmt.Errorf("unknown marker %q", v.Tag)
		}
		return nil
	case nil:
		return fmt.Errorf("ability cannot be nil")
	}
	return fmt.Errorf("unsupported ability kind %s", a.Kind())
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be finite", field)
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if err := finite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("%s cannot be negative", field)
	}
	return nil
}

func positive(field string, v float64) error {
	if err := finite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return fmt.Errorf("%s must be positive", field)
	}
	return nil
}

func arc(v float64) error {
	if err := finite("firing_arc", v); err != nil {
		return err
	}
	if v < 0 || v > 360 {
		return fmt.Errorf("firing_arc must be within [0, 360]")
	}
	return nil
}

func requireResource(resource string) error {
	if resource == "" {
		return fmt.Errorf("resource kind cannot be empty")
	}
	return nil
}

func stackGroup(group string) error {
	if group == "" {
		return fmt.Errorf("stack_group cannot be empty")
	}
	return nil
}
