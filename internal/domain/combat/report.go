package combat

import (
	"context"
	"time"
)

// Result names who was left standing when a battle ended
type Result string

const (
	ResultAttacker Result = "ATTACKER" // target destroyed
	ResultTarget   Result = "TARGET"   // attacker destroyed
	ResultDraw     Result = "DRAW"     // both destroyed
	ResultTimeout  Result = "TIMEOUT"  // tick limit reached with both standing
)

// Report is the persisted summary of one simulated engagement
type Report struct {
	ID               string
	AttackerDesignID string
	TargetDesignID   string
	Seed             uint64
	Distance         float64
	TickSeconds      float64
	Ticks            int
	Elapsed          float64
	Result           Result

	AttackerHitPoints float64
	TargetHitPoints   float64
	TargetShields     float64

	Tally     Tally
	CreatedAt time.Time
}

// ResultOf decides the result from the two principal combatants
func ResultOf(attacker, target *Combatant) Result {
	switch {
	case attacker.destroyed && target.destroyed:
		return ResultDraw
	case target.destroyed:
		return ResultAttacker
	case attacker.destroyed:
		return ResultTarget
	}
	return ResultTimeout
}

// ReportRepository stores battle reports
type ReportRepository interface {
	Save(ctx context.Context, report *Report) error
	FindByID(ctx context.Context, id string) (*Report, error)
	List(ctx context.Context, limit int) ([]*Report, error)
}
