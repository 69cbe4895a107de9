package persistence

import (
	"time"
)

// ShipDesignModel represents the ship_designs table
type ShipDesignModel struct {
	ID         string                     `gorm:"column:id;primaryKey;not null"`
	Name       string                     `gorm:"column:name;not null;index"`
	ClassName  string                     `gorm:"column:class_name;not null"`
	Components []ShipDesignComponentModel `gorm:"foreignKey:DesignID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt  time.Time                  `gorm:"column:created_at;not null"`
	UpdatedAt  time.Time                  `gorm:"column:updated_at;not null"`
}

func (ShipDesignModel) TableName() string {
	return "ship_designs"
}

// ShipDesignComponentModel represents the ship_design_components table.
// Position preserves installation order within the design.
type ShipDesignComponentModel struct {
	DesignID    string `gorm:"column:design_id;primaryKey;not null"`
	Position    int    `gorm:"column:position;primaryKey;not null"`
	InstanceID  string `gorm:"column:instance_id;not null"`
	ComponentID string `gorm:"column:component_id;not null;index"`
	Layer       string `gorm:"column:layer;not null"`
	Modifiers   string `gorm:"column:modifiers;type:text"` // JSON object as text
}

func (ShipDesignComponentModel) TableName() string {
	return "ship_design_components"
}

// BattleReportModel represents the battle_reports table
type BattleReportModel struct {
	ID                 string    `gorm:"column:id;primaryKey;not null"`
	AttackerDesignID   string    `gorm:"column:attacker_design_id;not null;index"`
	TargetDesignID     string    `gorm:"column:target_design_id;not null;index"`
	Seed               string    `gorm:"column:seed;not null"` // uint64 does not fit a signed BIGINT
	Distance           float64   `gorm:"column:distance;not null"`
	TickSeconds        float64   `gorm:"column:tick_seconds;not null"`
	Ticks              int       `gorm:"column:ticks;not null"`
	Elapsed            float64   `gorm:"column:elapsed;not null"`
	Result             string    `gorm:"column:result;not null"`
	AttackerHitPoints  float64   `gorm:"column:attacker_hit_points"`
	TargetHitPoints    float64   `gorm:"column:target_hit_points"`
	TargetShields      float64   `gorm:"column:target_shields"`
	Shots              int       `gorm:"column:shots"`
	Hits               int       `gorm:"column:hits"`
	BeamShots          int       `gorm:"column:beam_shots"`
	BeamHits           int       `gorm:"column:beam_hits"`
	ShieldDamage       float64   `gorm:"column:shield_damage"`
	ReducedDamage      float64   `gorm:"column:reduced_damage"`
	HullDamage         float64   `gorm:"column:hull_damage"`
	ProjectilesFired   int       `gorm:"column:projectiles_fired"`
	ProjectileImpacts  int       `gorm:"column:projectile_impacts"`
	SeekersLaunched    int       `gorm:"column:seekers_launched"`
	SeekersImpacted    int       `gorm:"column:seekers_impacted"`
	SeekersExpired     int       `gorm:"column:seekers_expired"`
	SeekersIntercepted int       `gorm:"column:seekers_intercepted"`
	VehiclesLaunched   int       `gorm:"column:vehicles_launched"`
	Outcomes           string    `gorm:"column:outcomes;type:text"` // JSON object as text
	CreatedAt          time.Time `gorm:"column:created_at;not null;index"`
}

func (BattleReportModel) TableName() string {
	return "battle_reports"
}

// AllModels lists every model for auto-migration
func AllModels() []interface{} {
	return []interface{}{
		&ShipDesignModel{},
		&ShipDesignComponentModel{},
		&BattleReportModel{},
	}
}
