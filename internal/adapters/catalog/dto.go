package catalog

import (
	"fmt"
	"math"

	"github.com/andrescamacho/shipforge-go/internal/domain/ability"
	"github.com/andrescamacho/shipforge-go/internal/domain/component"
	"github.com/andrescamacho/shipforge-go/internal/domain/ship"
)

// fileDTO is the on-disk catalog layout, shared by the YAML and TOML formats
type fileDTO struct {
	Components []componentDTO `yaml:"components" toml:"components"`
	Classes    []classDTO     `yaml:"classes" toml:"classes"`
}

type componentDTO struct {
	ID            string       `yaml:"id" toml:"id" validate:"required"`
	Name          string       `yaml:"name" toml:"name"`
	Mass          float64      `yaml:"mass" toml:"mass" validate:"gte=0"`
	HitPoints     float64      `yaml:"hit_points" toml:"hit_points" validate:"gte=0"`
	Family        string       `yaml:"family" toml:"family"`
	Unique        bool         `yaml:"unique" toml:"unique"`
	AllowedLayers []string     `yaml:"allowed_layers" toml:"allowed_layers" validate:"dive,layer"`
	Abilities     []abilityDTO `yaml:"abilities" toml:"abilities" validate:"dive"`
}

// abilityDTO is a flat union: Type selects the variant and only that variant's fields are read
type abilityDTO struct {
	Type string `yaml:"type" toml:"type" validate:"required"`

	Resource string  `yaml:"resource" toml:"resource" validate:"resource_kind"`
	Capacity float64 `yaml:"capacity" toml:"capacity"`
	Rate     float64 `yaml:"rate" toml:"rate"`
	Amount   float64 `yaml:"amount" toml:"amount"`
	Trigger  string  `yaml:"trigger" toml:"trigger"`

	Damage          float64 `yaml:"damage" toml:"damage"`
	Range           float64 `yaml:"range" toml:"range"`
	Reload          float64 `yaml:"reload" toml:"reload"`
	BaseAccuracy    float64 `yaml:"base_accuracy" toml:"base_accuracy"`
	AccuracyFalloff float64 `yaml:"accuracy_falloff" toml:"accuracy_falloff"`
	FiringArc       float64 `yaml:"firing_arc" toml:"firing_arc"`
	ProjectileSpeed float64 `yaml:"projectile_speed" toml:"projectile_speed"`
	TurnRate        float64 `yaml:"turn_rate" toml:"turn_rate"`
	Endurance       float64 `yaml:"endurance" toml:"endurance"`

	ThrustForce              float64 `yaml:"thrust_force" toml:"thrust_force"`
	TurnTorque               float64 `yaml:"turn_torque" toml:"turn_torque"`
	Value                    float64 `yaml:"value" toml:"value"`
	StackGroup               string  `yaml:"stack_group" toml:"stack_group"`
	DamageReductionThreshold float64 `yaml:"damage_reduction_threshold" toml:"damage_reduction_threshold"`
	CycleTime                float64 `yaml:"cycle_time" toml:"cycle_time"`
	Payload                  string  `yaml:"payload" toml:"payload"`
}

type classDTO struct {
	Name    string     `yaml:"name" toml:"name" validate:"required"`
	MaxMass float64    `yaml:"max_mass" toml:"max_mass" validate:"gte=0"`
	Layers  []layerDTO `yaml:"layers" toml:"layers" validate:"required,min=1,dive"`
}

type layerDTO struct {
	Layer        string  `yaml:"layer" toml:"layer" validate:"required,layer"`
	MassFraction float64 `yaml:"mass_fraction" toml:"mass_fraction" validate:"gte=0,lte=1"`
	Family       string  `yaml:"family" toml:"family"`
	IDPrefix     string  `yaml:"id_prefix" toml:"id_prefix"`
}

func (d abilityDTO) toAbility() (ability.Ability, error) {
	kind := ability.Kind(d.Type)
	if ability.IsMarker(kind) {
		m, _ := ability.NewMarker(kind)
		return m, nil
	}

	switch kind {
	case ability.KindResourceStorage:
		return ability.ResourceStorage{Resource: d.Resource, Capacity: d.Capacity}, nil
	case ability.KindResourceGeneration:
		return ability.ResourceGeneration{Resource: d.Resource, Rate: d.Rate}, nil
	case ability.KindResourceConsumption:
		trigger := ability.Trigger(d.Trigger)
		if trigger == "" {
			trigger = ability.TriggerConstant
		}
		return ability.ResourceConsumption{Resource: d.Resource, Amount: d.Amount, Trigger: trigger}, nil
	case ability.KindBeamWeapon:
		return ability.BeamWeapon{
			Damage: d.Damage, Range: d.Range, Reload: d.Reload,
			BaseAccuracy: d.BaseAccuracy, AccuracyFalloff: d.AccuracyFalloff, FiringArc: d.FiringArc,
		}, nil
	case ability.KindProjectileWeapon:
		return ability.ProjectileWeapon{
			Damage: d.Damage, ProjectileSpeed: d.ProjectileSpeed, Range: d.Range,
			Reload: d.Reload, FiringArc: d.FiringArc,
		}, nil
	case ability.KindSeekerWeapon:
		return ability.SeekerWeapon{
			Damage: d.Damage, ProjectileSpeed: d.ProjectileSpeed, TurnRate: d.TurnRate,
			Endurance: d.Endurance, Range: d.Range, Reload: d.Reload,
		}, nil
	case ability.KindCombatPropulsion:
		return ability.CombatPropulsion{ThrustForce: d.ThrustForce}, nil
	case ability.KindManeuveringThruster:
		return ability.ManeuveringThruster{TurnTorque: d.TurnTorque}, nil
	case ability.KindShieldProjection:
		return ability.ShieldProjection{Capacity: d.Capacity}, nil
	case ability.KindShieldRegeneration:
		return ability.ShieldRegeneration{Rate: d.Rate}, nil
	case ability.KindToHitAttackModifier:
		return ability.ToHitAttackModifier{Value: d.Value, StackGroup: d.StackGroup}, nil
	case ability.KindToHitDefenseModifier:
		return ability.ToHitDefenseModifier{Value: d.Value, StackGroup: d.StackGroup}, nil
	case ability.KindEmissiveArmor:
		return ability.EmissiveArmor{DamageReductionThreshold: d.DamageReductionThreshold}, nil
	case ability.KindVehicleLaunch:
		return ability.VehicleLaunch{CycleTime: d.CycleTime, Payload: d.Payload}, nil
	case ability.KindCrewCapacity, ability.KindLifeSupportCapacity, ability.KindCrewRequired:
		n, err := wholeAmount(d.Amount)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		switch kind {
		case ability.KindCrewCapacity:
			return ability.CrewCapacity{Amount: n}, nil
		case ability.KindLifeSupportCapacity:
			return ability.LifeSupportCapacity{Amount: n}, nil
		default:
			return ability.CrewRequired{Amount: n}, nil
		}
	}
	return nil, fmt.Errorf("unknown ability type %q", d.Type)
}

func wholeAmount(v float64) (int, error) {
	if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("amount must be a whole number, got %v", v)
	}
	return int(v), nil
}

func (d componentDTO) toDefinition() (*component.Definition, error) {
	abilities := make([]ability.Ability, 0, len(d.Abilities))
	for i, a := range d.Abilities {
		converted, err := a.toAbility()
		if err != nil {
			return nil, fmt.Errorf("ability %d: %w", i, err)
		}
		abilities = append(abilities, converted)
	}

	var opts []component.DefinitionOption
	if d.Family != "" {
		opts = append(opts, component.WithFamily(d.Family))
	}
	if d.Unique {
		opts = append(opts, component.AsUnique())
	}
	if len(d.AllowedLayers) > 0 {
		layers := make([]component.Layer, 0, len(d.AllowedLayers))
		for _, name := range d.AllowedLayers {
			l, err := component.ParseLayer(name)
			if err != nil {
				return nil, err
			}
			layers = append(layers, l)
		}
		opts = append(opts, component.AllowedIn(layers...))
	}

	return component.NewDefinition(d.ID, d.Name, d.Mass, d.HitPoints, abilities, opts...)
}

func (d classDTO) toClass() (*ship.Class, error) {
	specs := make([]ship.LayerSpec, 0, len(d.Layers))
	for _, l := range d.Layers {
		layer, err := component.ParseLayer(l.Layer)
		if err != nil {
			return nil, err
		}
		specs = append(specs, ship.LayerSpec{
			Layer:        layer,
			MassFraction: l.MassFraction,
			Restriction:  ship.LayerRestriction{Family: l.Family, IDPrefix: l.IDPrefix},
		})
	}
	return ship.NewClass(d.Name, d.MaxMass, specs)
}
