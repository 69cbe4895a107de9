package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/shipforge-go/internal/domain/design"
)

// DesignMetricsCollector handles design validation metrics
type DesignMetricsCollector struct {
	verdictsTotal *prometheus.CounterVec
	changesTotal  *prometheus.CounterVec
}

// NewDesignMetricsCollector creates a new design metrics collector
func NewDesignMetricsCollector() *DesignMetricsCollector {
	return &DesignMetricsCollector{
		// Verdicts by rule and status
		verdictsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystemDesign,
				Name:      "verdicts_total",
				Help:      "Total number of rule verdicts by rule and status",
			},
			[]string{"rule", "status"},
		),

		// Add/remove requests by outcome
		changesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystemDesign,
				Name:      "changes_total",
				Help:      "Total number of design edits by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
	}
}

// Register registers all design metrics with the Prometheus registry
func (c *DesignMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	for _, metric := range []prometheus.Collector{c.verdictsTotal, c.changesTotal} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordVerdicts counts every verdict of one validation pass
func (c *DesignMetricsCollector) RecordVerdicts(verdicts []design.Verdict) {
	for _, v := range verdicts {
		c.verdictsTotal.WithLabelValues(v.Rule, string(v.Status)).Inc()
	}
}

// RecordDesignChange counts one edit
func (c *DesignMetricsCollector) RecordDesignChange(operation string, accepted bool) {
	outcome := "accepted"
	if !accepted {
		outcome = "rejected"
	}
	c.changesTotal.WithLabelValues(operation, outcome).Inc()
}
