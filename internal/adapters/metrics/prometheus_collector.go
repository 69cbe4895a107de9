package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/shipforge-go/internal/domain/combat"
	"github.com/andrescamacho/shipforge-go/internal/domain/design"
)

const (
	// Namespace for all metrics
	namespace = "shipforge"

	subsystemCatalog  = "catalog"
	subsystemDesign   = "design"
	subsystemCombat   = "combat"
	subsystemMediator = "mediator"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// Set by the SetGlobal* functions when metrics are enabled
	globalCatalogCollector CatalogMetricsRecorder
	globalDesignCollector  DesignMetricsRecorder
	globalCombatCollector  CombatMetricsRecorder
)

// CatalogMetricsRecorder records catalog reloads
type CatalogMetricsRecorder interface {
	RecordCatalogReload(status string, components int, skipped int)
}

// DesignMetricsRecorder records design edits and validation verdicts
type DesignMetricsRecorder interface {
	RecordVerdicts(verdicts []design.Verdict)
	RecordDesignChange(operation string, accepted bool)
}

// CombatMetricsRecorder records finished battles
type CombatMetricsRecorder interface {
	RecordBattle(result string, ticks int, tally combat.Tally)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry, nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// ResetGlobals clears the registry and every global collector
func ResetGlobals() {
	Registry = nil
	globalCatalogCollector = nil
	globalDesignCollector = nil
	globalCombatCollector = nil
}

// SetGlobalCatalogCollector sets the global catalog metrics collector
func SetGlobalCatalogCollector(collector CatalogMetricsRecorder) {
	globalCatalogCollector = collector
}

// RecordCatalogReload records a catalog reload globally
func RecordCatalogReload(status string, components int, skipped int) {
	if globalCatalogCollector != nil {
		globalCatalogCollector.RecordCatalogReload(status, components, skipped)
	}
}

// SetGlobalDesignCollector sets the global design metrics collector
func SetGlobalDesignCollector(collector DesignMetricsRecorder) {
	globalDesignCollector = collector
}

// RecordVerdicts records a validation pass globally
func RecordVerdicts(verdicts []design.Verdict) {
	if globalDesignCollector != nil {
		globalDesignCollector.RecordVerdicts(verdicts)
	}
}

// RecordDesignChange records an add or remove on a design globally
func RecordDesignChange(operation string, accepted bool) {
	if globalDesignCollector != nil {
		globalDesignCollector.RecordDesignChange(operation, accepted)
	}
}

// SetGlobalCombatCollector sets the global combat metrics collector
func SetGlobalCombatCollector(collector CombatMetricsRecorder) {
	globalCombatCollector = collector
}

// RecordBattle records a finished battle globally
func RecordBattle(result string, ticks int, tally combat.Tally) {
	if globalCombatCollector != nil {
		globalCombatCollector.RecordBattle(result, ticks, tally)
	}
}

// Setup creates the registry and every collector, registers them and installs the globals.
// It returns the command collector for PrometheusMiddleware.
func Setup() (*CommandMetricsCollector, error) {
	InitRegistry()

	commands := NewCommandMetricsCollector()
	catalog := NewCatalogMetricsCollector()
	designs := NewDesignMetricsCollector()
	battles := NewCombatMetricsCollector()

	for _, c := range []interface{ Register() error }{commands, catalog, designs, battles} {
		if err := c.Register(); err != nil {
			return nil, err
		}
	}

	SetGlobalCatalogCollector(catalog)
	SetGlobalDesignCollector(designs)
	SetGlobalCombatCollector(battles)
	return commands, nil
}
