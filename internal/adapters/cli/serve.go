package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	catalogAdapter "github.com/andrescamacho/shipforge-go/internal/adapters/catalog"
	"github.com/andrescamacho/shipforge-go/internal/adapters/metrics"
	"github.com/andrescamacho/shipforge-go/internal/application/logging"
	"github.com/andrescamacho/shipforge-go/internal/infrastructure/config"
	"github.com/andrescamacho/shipforge-go/internal/infrastructure/pidfile"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var watch, withMetrics bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose metrics and hot-reload the catalog until interrupted",
		Long: `Run in the foreground, serving Prometheus metrics on metrics.host:metrics.port
and reloading the catalog whenever catalog.path changes.

A reload that fails keeps the previous catalog in place.

Examples:
  shipforge serve
  shipforge serve --watch --metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cmd.Flags().Changed("watch") {
				cfg.Catalog.Watch = watch
			}
			if cmd.Flags().Changed("metrics") {
				cfg.Metrics.Enabled = withMetrics
			}

			app, err := NewApp(cmd.Context(), cfg, cfg.Metrics.Enabled)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, stop := signal.NotifyContext(app.Context(cmd.Context()), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, app)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Reload the catalog on file change (default: catalog.watch)")
	cmd.Flags().BoolVar(&withMetrics, "metrics", false, "Serve Prometheus metrics (default: metrics.enabled)")

	return cmd
}

// serve runs the watcher and metrics server until ctx is cancelled
func serve(ctx context.Context, app *App) error {
	logger := logging.LoggerFromContext(ctx)
	cfg := app.Config

	if cfg.Serve.PIDFile != "" {
		pf := pidfile.New(cfg.Serve.PIDFile)
		if err := pf.Acquire(); err != nil {
			return err
		}
		defer func() {
			if err := pf.Release(); err != nil {
				logger.Log(logging.LevelWarn, "failed to release PID file", map[string]interface{}{
					"path":  pf.Path(),
					"error": err.Error(),
				})
			}
		}()
	}

	if cfg.Catalog.Watch {
		watcher, err := catalogAdapter.NewWatcher(app.Loader.Path(), func() {
			// Failures are logged by the store; the old snapshot stays current
			_, _ = app.Store.Reload(ctx, app.Loader)
		})
		if err != nil {
			return err
		}
		defer watcher.Stop()
		if err := watcher.Start(); err != nil {
			return fmt.Errorf("failed to watch catalog: %w", err)
		}
		logger.Log(logging.LevelInfo, "watching catalog", map[string]interface{}{
			"path": watcher.Path,
		})
	}

	errChan := make(chan error, 1)
	var server *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
		server = &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Metrics.Host, cfg.Metrics.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("metrics server error: %w", err)
			}
		}()
		logger.Log(logging.LevelInfo, "serving metrics", map[string]interface{}{
			"address": server.Addr,
			"path":    cfg.Metrics.Path,
		})
	}

	// Wait for shutdown signal or error
	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	logger.Log(logging.LevelInfo, "shutting down", nil)
	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
	return nil
}
