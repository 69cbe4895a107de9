package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetricsCollector handles catalog reload metrics
type CatalogMetricsCollector struct {
	reloadsTotal *prometheus.CounterVec
	components   prometheus.Gauge
	skipped      prometheus.Gauge
}

// NewCatalogMetricsCollector creates a new catalog metrics collector
func NewCatalogMetricsCollector() *CatalogMetricsCollector {
	return &CatalogMetricsCollector{
		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystemCatalog,
				Name:      "reloads_total",
				Help:      "Total number of catalog reloads by status",
			},
			[]string{"status"},
		),

		components: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystemCatalog,
				Name:      "components",
				Help:      "Number of component definitions in the live catalog",
			},
		),

		skipped: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystemCatalog,
				Name:      "skipped_entries",
				Help:      "Number of entries skipped by the last successful reload",
			},
		),
	}
}

// Register registers all catalog metrics with the Prometheus registry
func (c *CatalogMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.reloadsTotal,
		c.components,
		c.skipped,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordCatalogReload records one reload. Gauges only move on success so a failed reload
// leaves them describing the snapshot still being served.
func (c *CatalogMetricsCollector) RecordCatalogReload(status string, components int, skipped int) {
	c.reloadsTotal.WithLabelValues(status).Inc()
	if status != "success" {
		return
	}
	c.components.Set(float64(components))
	c.skipped.Set(float64(skipped))
}
