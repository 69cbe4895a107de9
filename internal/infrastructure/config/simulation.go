package config

// SimulationConfig holds battle defaults used when a command leaves a field unset
type SimulationConfig struct {
	// Fixed timestep in seconds
	TickSeconds float64 `mapstructure:"tick_seconds" yaml:"tick_seconds" validate:"gt=0,lte=10"`

	// Seed for the battle random stream
	Seed uint64 `mapstructure:"seed" yaml:"seed"`

	// Upper bound on ticks per battle
	MaxTicks int `mapstructure:"max_ticks" yaml:"max_ticks" validate:"min=1"`

	// Starting separation between attacker and target
	Distance float64 `mapstructure:"distance" yaml:"distance" validate:"gte=0"`
}
