package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	catalogAdapter "github.com/andrescamacho/shipforge-go/internal/adapters/catalog"
	"github.com/andrescamacho/shipforge-go/internal/adapters/metrics"
	"github.com/andrescamacho/shipforge-go/internal/adapters/persistence"
	"github.com/andrescamacho/shipforge-go/internal/application/battle"
	"github.com/andrescamacho/shipforge-go/internal/application/catalog"
	"github.com/andrescamacho/shipforge-go/internal/application/logging"
	"github.com/andrescamacho/shipforge-go/internal/application/mediator"
	"github.com/andrescamacho/shipforge-go/internal/application/setup"
	"github.com/andrescamacho/shipforge-go/internal/domain/shared"
	"github.com/andrescamacho/shipforge-go/internal/infrastructure/config"
	"github.com/andrescamacho/shipforge-go/internal/infrastructure/database"
)

// App is everything one CLI invocation needs: configuration, storage, the loaded catalog and a
// mediator with every handler registered
type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Store    *catalog.Store
	Loader   *catalogAdapter.FileLoader
	Mediator mediator.Mediator
	Logger   logging.Logger

	logOutput io.Closer
}

// NewApp wires the application from cfg. With withMetrics the Prometheus collectors are
// registered and the command middleware installed.
func NewApp(ctx context.Context, cfg *config.Config, withMetrics bool) (*App, error) {
	logger, closer, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Logger: logger, logOutput: closer}
	ctx = logging.WithLogger(ctx, logger)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	if err := database.AutoMigrate(db); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	app.Store = catalog.NewStore()
	app.Loader = catalogAdapter.NewFileLoader(cfg.Catalog.Path)
	if _, err := app.Store.Reload(ctx, app.Loader); err != nil {
		app.Close()
		return nil, err
	}

	middleware := []mediator.Middleware{setup.LoggingMiddleware()}
	if withMetrics {
		collector, err := metrics.Setup()
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to set up metrics: %w", err)
		}
		middleware = append(middleware, metrics.PrometheusMiddleware(collector))
	}

	clock := shared.NewRealClock()
	registry := setup.NewHandlerRegistry(
		app.Store,
		persistence.NewGormDesignRepository(db, clock),
		persistence.NewGormBattleReportRepository(db),
		battle.Defaults{
			TickSeconds: cfg.Simulation.TickSeconds,
			MaxTicks:    cfg.Simulation.MaxTicks,
			Seed:        cfg.Simulation.Seed,
		},
		clock,
	)
	m, err := registry.CreateConfiguredMediator(middleware...)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}
	app.Mediator = m

	return app, nil
}

// Context returns ctx carrying the application logger
func (a *App) Context(ctx context.Context) context.Context {
	return logging.WithLogger(ctx, a.Logger)
}

// Send dispatches a request through the mediator with the application logger attached
func (a *App) Send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	return a.Mediator.Send(a.Context(ctx), request)
}

// Close releases the database and any log file
func (a *App) Close() {
	if a.DB != nil {
		_ = database.Close(a.DB)
	}
	if a.logOutput != nil {
		_ = a.logOutput.Close()
	}
}

func newLogger(cfg config.LoggingConfig) (logging.Logger, io.Closer, error) {
	level := cfg.Level
	if verbose {
		level = "debug"
	}

	switch cfg.Output {
	case "stdout":
		return logging.NewStdLogger(os.Stdout, level, cfg.Format), nil, nil
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return logging.NewStdLogger(f, level, cfg.Format), f, nil
	default:
		return logging.NewStdLogger(os.Stderr, level, cfg.Format), nil, nil
	}
}

// loadApp loads configuration from the --config flag and wires the application
func loadApp(cmd *cobra.Command) (*App, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewApp(cmd.Context(), cfg, false)
}
