package resource

// LogisticsRow is the read-only per-resource summary shown by display code
type LogisticsRow struct {
	Resource          string
	Capacity          float64
	Current           float64
	Level             float64 // current as a percentage of capacity, 0 with no capacity
	Generation        float64
	ConstantUsage     float64
	MaxUsage          float64
	ConstantEndurance float64 // +Inf when generation keeps pace
	MaxEndurance      float64 // +Inf when generation keeps pace
}

// Rows builds one logistics row per ledger, in kind order
func (s *LedgerSet) Rows() []LogisticsRow {
	rows := make([]LogisticsRow, 0, len(s.kinds))
	for _, l := range s.Ledgers() {
		rows = append(rows, LogisticsRow{
			Resource:          l.kind,
			Capacity:          l.capacity,
			Current:           l.current,
			Level:             l.Percentage(),
			Generation:        l.generationRate,
			ConstantUsage:     l.constantConsumptionRate,
			MaxUsage:          l.maxConsumptionRate,
			ConstantEndurance: l.EnduranceAtConstantRate(),
			MaxEndurance:      l.EnduranceAtMaxRate(),
		})
	}
	return rows
}
