package cli

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogAdapter "github.com/andrescamacho/shipforge-go/internal/adapters/catalog"
	"github.com/andrescamacho/shipforge-go/internal/infrastructure/config"
)

func serveApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	cfg.Serve.PIDFile = filepath.Join(t.TempDir(), "serve.pid")
	return &App{Config: cfg, Logger: &recordingLogger{}}
}

func TestServe_HoldsPIDFileUntilShutdown(t *testing.T) {
	// Arrange
	app := serveApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	err := serve(ctx, app)

	// Assert
	require.NoError(t, err)
	_, statErr := os.Stat(app.Config.Serve.PIDFile)
	assert.True(t, os.IsNotExist(statErr), "PID file is released on shutdown")
}

func TestServe_RefusesSecondInstance(t *testing.T) {
	app := serveApp(t)
	require.NoError(t, os.WriteFile(app.Config.Serve.PIDFile, []byte(strconv.Itoa(os.Getppid())), 0644))

	err := serve(context.Background(), app)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")
}

func TestServe_WatchFailureReleasesEverything(t *testing.T) {
	// Arrange: the catalog's directory does not exist, so it cannot be watched
	app := serveApp(t)
	app.Config.Catalog.Watch = true
	app.Loader = catalogAdapter.NewFileLoader(filepath.Join(t.TempDir(), "missing", "catalog.yaml"))

	// Act
	err := serve(context.Background(), app)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch catalog")
	_, statErr := os.Stat(app.Config.Serve.PIDFile)
	assert.True(t, os.IsNotExist(statErr))
}
