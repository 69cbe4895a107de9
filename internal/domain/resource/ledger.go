package resource

import (
	"fmt"
	"math"
)

// DefaultTickSeconds is the simulation step assumed when none is configured
const DefaultTickSeconds = 0.1

// tickEpsilon absorbs float drift when a period is a whole number of ticks
const tickEpsilon = 1e-9

// EffectivePeriod returns the seconds between uses of an ability with the given period when a
// fixed tick drives it. Cooldowns are checked once per tick, so the period rounds up to a whole
// number of ticks and is never shorter than one tick.
func EffectivePeriod(period, tick float64) float64 {
	if tick <= 0 {
		tick = DefaultTickSeconds
	}
	if period <= tick {
		return tick
	}
	ticks := period / tick
	if whole := math.Round(ticks); math.Abs(ticks-whole) < tickEpsilon {
		return period
	}
	return math.Ceil(ticks) * tick
}

// ActivationRate converts a per-use cost into its steady-state maximum rate at the given tick
func ActivationRate(amount, period, tick float64) float64 {
	return amount / EffectivePeriod(period, tick)
}

// Ledger is the accounting record for one resource kind on one ship
//
// Invariants:
// - 0 <= current <= capacity
// - maxConsumptionRate >= constantConsumptionRate
// - current only changes through Advance and TryConsume
type Ledger struct {
	kind                    string
	capacity                float64
	current                 float64
	generationRate          float64
	constantConsumptionRate float64
	maxConsumptionRate      float64
}

// NewLedger creates a full ledger (current = capacity)
func NewLedger(kind string, capacity, generationRate, constantConsumptionRate, maxConsumptionRate float64) *Ledger {
	if capacity < 0 {
		capacity = 0
	}
	return &Ledger{
		kind:                    kind,
		capacity:                capacity,
		current:                 capacity,
		generationRate:          generationRate,
		constantConsumptionRate: constantConsumptionRate,
		maxConsumptionRate:      math.Max(maxConsumptionRate, constantConsumptionRate),
	}
}

// Getters

func (l *Ledger) Kind() string {
	return l.kind
}

func (l *Ledger) Capacity() float64 {
	return l.capacity
}

func (l *Ledger) Current() float64 {
	return l.current
}

func (l *Ledger) GenerationRate() float64 {
	return l.generationRate
}

func (l *Ledger) ConstantConsumptionRate() float64 {
	return l.constantConsumptionRate
}

func (l *Ledger) MaxConsumptionRate() float64 {
	return l.maxConsumptionRate
}

// NetRate is generation minus constant consumption
func (l *Ledger) NetRate() float64 {
	return l.generationRate - l.constantConsumptionRate
}

// EnduranceAtConstantRate returns how long current lasts at the constant drain.
// It is +Inf whenever generation keeps pace.
func (l *Ledger) EnduranceAtConstantRate() float64 {
	return endurance(l.current, l.constantConsumptionRate, l.generationRate)
}

// EnduranceAtMaxRate returns how long current lasts if everything runs flat out
func (l *Ledger) EnduranceAtMaxRate() float64 {
	return endurance(l.current, l.maxConsumptionRate, l.generationRate)
}

func endurance(current, consumption, generation float64) float64 {
	if consumption <= generation {
		return math.Inf(1)
	}
	return current / (consumption - generation)
}

// Advance applies generation and constant drain for dt seconds, clamped to [0, capacity].
// Only the simulation tick calls this.
func (l *Ledger) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	l.current += l.NetRate() * dt
	l.clamp()
}

// CanConsume reports whether amount is available without debiting it
func (l *Ledger) CanConsume(amount float64) bool {
	return amount <= l.current
}

// TryConsume debits amount when enough is available. A refused activation leaves current
// untouched; there is no partial debit.
func (l *Ledger) TryConsume(amount float64) bool {
	if amount < 0 || !l.CanConsume(amount) {
		return false
	}
	l.current -= amount
	l.clamp()
	return true
}

// Fill sets current to capacity. Every combatant starts a battle full.
func (l *Ledger) Fill() {
	l.current = l.capacity
}

// Percentage returns current as a percentage of capacity
func (l *Ledger) Percentage() float64 {
	if l.capacity == 0 {
		return 0.0
	}
	return l.current / l.capacity * 100.0
}

func (l *Ledger) clamp() {
	if l.current < 0 {
		l.current = 0
	}
	if l.current > l.capacity {
		l.current = l.capacity
	}
}

func (l *Ledger) clone() *Ledger {
	c := *l
	return &c
}

func (l *Ledger) String() string {
	return fmt.Sprintf("Ledger(%s %.1f/%.1f gen=%.2f const=%.2f max=%.2f)",
		l.kind, l.current, l.capacity, l.generationRate, l.constantConsumptionRate, l.maxConsumptionRate)
}
