package config

// ServeConfig holds settings for the long-running serve command
type ServeConfig struct {
	// PIDFile keeps a second serve from starting; empty disables the check
	PIDFile string `mapstructure:"pid_file" yaml:"pid_file"`
}
