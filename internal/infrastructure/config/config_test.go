package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/shipforge-go/internal/infrastructure/config"
)

func TestLoadConfig_FileThenEnvOverrides(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
catalog:
  path: ships/catalog.toml
  watch: true
simulation:
  tick_seconds: 0.05
  max_ticks: 1000
logging:
  level: debug
`), 0o644))
	t.Setenv("SF_SIMULATION_SEED", "42")
	t.Setenv("SF_DATABASE_TYPE", "sqlite")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ships/catalog.toml", cfg.Catalog.Path)
	assert.True(t, cfg.Catalog.Watch)
	assert.Equal(t, 0.05, cfg.Simulation.TickSeconds)
	assert.Equal(t, 1000, cfg.Simulation.MaxTicks)
	assert.Equal(t, uint64(42), cfg.Simulation.Seed)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "shipforge.db", cfg.Database.Path)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: chatty\n"), 0o644))

	_, err := config.LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Level")
}

func TestSetDefaults(t *testing.T) {
	cfg := &config.Config{}

	config.SetDefaults(cfg)

	assert.NoError(t, config.ValidateConfig(cfg))
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "catalog.yaml", cfg.Catalog.Path)
	assert.Equal(t, 0.1, cfg.Simulation.TickSeconds)
	assert.Equal(t, 500, cfg.Simulation.MaxTicks)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "shipforge-serve.pid", cfg.Serve.PIDFile)
}

func TestLoadConfig_RejectsUnknownCatalogFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog:\n  path: ships.json\n"), 0o644))

	_, err := config.LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Catalog.Path")
}

func TestUserConfigHandler_DefaultDesign(t *testing.T) {
	h, err := config.NewUserConfigHandlerAt(filepath.Join(t.TempDir(), "nested", "config.json"))
	require.NoError(t, err)

	cfg, err := h.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.DefaultDesignID)

	require.NoError(t, h.SetDefaultDesign("d-1"))
	cfg, err = h.Load()
	require.NoError(t, err)
	assert.Equal(t, "d-1", cfg.DefaultDesignID)

	require.NoError(t, h.ClearDefaultDesign())
	cfg, err = h.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.DefaultDesignID)
}
