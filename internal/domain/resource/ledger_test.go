package resource_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/shipforge-go/internal/domain/resource"
)

func TestLedger_EnduranceIsInfiniteWhenGenerationKeepsPace(t *testing.T) {
	cases := []struct {
		name       string
		generation float64
		constant   float64
	}{
		{"equal", 5, 5},
		{"surplus", 10, 2},
		{"idle", 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := resource.NewLedger("energy", 100, tc.generation, tc.constant, tc.constant)

			assert.True(t, math.IsInf(l.EnduranceAtConstantRate(), 1))
		})
	}
}

func TestLedger_EnduranceFinite(t *testing.T) {
	// 100 units, draining 5/s constant against 1/s generation, 21/s at max
	l := resource.NewLedger("fuel", 100, 1, 5, 21)

	assert.InDelta(t, 25.0, l.EnduranceAtConstantRate(), 1e-9)
	assert.InDelta(t, 5.0, l.EnduranceAtMaxRate(), 1e-9)
}

func TestLedger_MaxRateNeverBelowConstant(t *testing.T) {
	l := resource.NewLedger("fuel", 10, 0, 4, 1)

	assert.Equal(t, 4.0, l.MaxConsumptionRate())
}

func TestLedger_AdvanceClampsToCapacityAndZero(t *testing.T) {
	// Arrange
	surplus := resource.NewLedger("energy", 50, 10, 0, 0)
	deficit := resource.NewLedger("fuel", 50, 0, 10, 10)

	// Act
	surplus.Advance(100)
	deficit.Advance(100)

	// Assert
	assert.Equal(t, 50.0, surplus.Current())
	assert.Equal(t, 0.0, deficit.Current())
}

func TestLedger_AdvanceAppliesNetRate(t *testing.T) {
	l := resource.NewLedger("energy", 100, 2, 6, 6)

	l.Advance(5)

	assert.InDelta(t, 80.0, l.Current(), 1e-9)
}

func TestLedger_TryConsumeRefusesWithoutPartialDebit(t *testing.T) {
	l := resource.NewLedger("ammo", 3, 0, 0, 0)

	require.True(t, l.TryConsume(2))
	assert.Equal(t, 1.0, l.Current())

	assert.False(t, l.TryConsume(2))
	assert.Equal(t, 1.0, l.Current(), "refused activation must not debit")
}

func TestLedgerSet_TryConsumeAllIsAtomic(t *testing.T) {
	energy := resource.NewLedger("energy", 10, 0, 0, 0)
	ammo := resource.NewLedger("ammo", 1, 0, 0, 0)
	set := resource.NewLedgerSet(energy, ammo)

	ok := set.TryConsumeAll([]resource.Cost{{Resource: "energy", Amount: 5}, {Resource: "ammo", Amount: 2}})

	assert.False(t, ok)
	assert.Equal(t, 10.0, energy.Current())
	assert.Equal(t, 1.0, ammo.Current())

	ok = set.TryConsumeAll([]resource.Cost{{Resource: "energy", Amount: 5}, {Resource: "ammo", Amount: 1}})
	assert.True(t, ok)
	assert.Equal(t, 5.0, energy.Current())
	assert.Equal(t, 0.0, ammo.Current())
}

func TestLedgerSet_UnknownKindCannotBeAfforded(t *testing.T) {
	set := resource.NewLedgerSet(resource.NewLedger("energy", 10, 0, 0, 0))

	assert.False(t, set.CanAfford([]resource.Cost{{Resource: "antimatter", Amount: 1}}))
	assert.True(t, set.CanAfford([]resource.Cost{{Resource: "antimatter", Amount: 0}}))
}

func TestLedgerSet_RowsAndClone(t *testing.T) {
	set := resource.NewLedgerSet(
		resource.NewLedger("fuel", 100, 0, 2, 2),
		resource.NewLedger("energy", 0, 0, 0, 50),
	)

	rows := set.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "energy", rows[0].Resource)
	assert.Equal(t, 50.0, rows[0].MaxUsage)
	assert.Equal(t, 0.0, rows[0].MaxEndurance)
	assert.Equal(t, "fuel", rows[1].Resource)
	assert.InDelta(t, 50.0, rows[1].ConstantEndurance, 1e-9)

	clone := set.Clone()
	fuel, _ := clone.Get("fuel")
	fuel.Advance(10)
	original, _ := set.Get("fuel")
	assert.Equal(t, 100.0, original.Current())
	assert.Equal(t, 80.0, fuel.Current())
}

func TestActivationRate(t *testing.T) {
	assert.Equal(t, 2.5, resource.ActivationRate(5, 2, 0.1))
	assert.InDelta(t, 10.0, resource.ActivationRate(1, 0, 0.1), 1e-9, "no reload fires once per tick")
	assert.InDelta(t, 100.0, resource.ActivationRate(1, 0, 0.01), 1e-9)
}

func TestEffectivePeriod(t *testing.T) {
	tests := []struct {
		name   string
		period float64
		tick   float64
		want   float64
	}{
		{"whole number of ticks is kept", 1.5, 0.1, 1.5},
		{"zero reload waits one tick", 0, 0.1, 0.1},
		{"shorter than a tick waits one tick", 0.04, 0.1, 0.1},
		{"fractional ticks round up", 0.3, 0.25, 0.5},
		{"non-positive tick uses the default", 0, 0, resource.DefaultTickSeconds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, resource.EffectivePeriod(tt.period, tt.tick), 1e-12)
		})
	}
}
