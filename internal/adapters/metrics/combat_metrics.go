package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/shipforge-go/internal/domain/combat"
)

// CombatMetricsCollector handles battle metrics
type CombatMetricsCollector struct {
	battlesTotal *prometheus.CounterVec
	battleTicks  prometheus.Histogram
	fireOutcomes *prometheus.CounterVec
	damageTotal  *prometheus.CounterVec
	seekersTotal *prometheus.CounterVec
	beamHitRate  prometheus.Histogram
}

// NewCombatMetricsCollector creates a new combat metrics collector
func NewCombatMetricsCollector() *CombatMetricsCollector {
	return &CombatMetricsCollector{
		battlesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystemCombat,
				Name:      "battles_total",
				Help:      "Total number of battles by result",
			},
			[]string{"result"},
		),

		battleTicks: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystemCombat,
				Name:      "battle_ticks",
				Help:      "Number of ticks battles ran for",
				Buckets:   []float64{10, 50, 100, 250, 500, 1000, 5000},
			},
		),

		fireOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystemCombat,
				Name:      "fire_outcomes_total",
				Help:      "Total number of weapon activation attempts by outcome",
			},
			[]string{"outcome"},
		),

		damageTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystemCombat,
				Name:      "damage_total",
				Help:      "Total damage dealt by where it landed",
			},
			[]string{"layer"},
		),

		seekersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystemCombat,
				Name:      "seekers_total",
				Help:      "Total number of seekers by final state",
			},
			[]string{"state"},
		),

		beamHitRate: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystemCombat,
				Name:      "beam_hit_rate",
				Help:      "Per-battle beam hit rate distribution",
				Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
			},
		),
	}
}

// Register registers all combat metrics with the Prometheus registry
func (c *CombatMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.battlesTotal,
		c.battleTicks,
		c.fireOutcomes,
		c.damageTotal,
		c.seekersTotal,
		c.beamHitRate,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordBattle records the totals of one finished battle
func (c *CombatMetricsCollector) RecordBattle(result string, ticks int, tally combat.Tally) {
	c.battlesTotal.WithLabelValues(result).Inc()
	c.battleTicks.Observe(float64(ticks))

	for outcome, n := range tally.Outcomes {
		c.fireOutcomes.WithLabelValues(string(outcome)).Add(float64(n))
	}

	c.damageTotal.WithLabelValues("shield").Add(tally.ShieldDamage)
	c.damageTotal.WithLabelValues("reduced").Add(tally.ReducedDamage)
	c.damageTotal.WithLabelValues("hull").Add(tally.HullDamage)

	c.seekersTotal.WithLabelValues(string(combat.SeekerImpacted)).Add(float64(tally.SeekersImpacted))
	c.seekersTotal.WithLabelValues(string(combat.SeekerExpired)).Add(float64(tally.SeekersExpired))
	c.seekersTotal.WithLabelValues(string(combat.SeekerIntercepted)).Add(float64(tally.SeekersIntercepted))

	if tally.BeamShots > 0 {
		c.beamHitRate.Observe(tally.BeamHitRate())
	}
}
