package config

// CatalogConfig locates the component catalog file
type CatalogConfig struct {
	// Path to a .yaml, .yml or .toml catalog file
	Path string `mapstructure:"path" yaml:"path" validate:"required,catalog_file"`

	// Watch reloads the catalog when the file changes
	Watch bool `mapstructure:"watch" yaml:"watch"`
}
