// Package battle runs simulated engagements between stored designs.
package battle

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/shipforge-go/internal/adapters/metrics"
	"github.com/andrescamacho/shipforge-go/internal/application/catalog"
	"github.com/andrescamacho/shipforge-go/internal/application/logging"
	"github.com/andrescamacho/shipforge-go/internal/application/mediator"
	"github.com/andrescamacho/shipforge-go/internal/domain/combat"
	"github.com/andrescamacho/shipforge-go/internal/domain/shared"
	"github.com/andrescamacho/shipforge-go/internal/domain/ship"
	"github.com/andrescamacho/shipforge-go/pkg/utils"
)

// Defaults fill zero-valued fields of RunBattleCommand
type Defaults struct {
	TickSeconds float64
	MaxTicks    int
	Seed        uint64
}

// RunBattleCommand simulates the attacker engaging the target. The attacker starts at the
// origin facing the target, which sits Distance units away facing back. The target always
// runs point defense against seekers; with ReturnFire it also shoots back at the attacker.
type RunBattleCommand struct {
	AttackerDesignID string
	TargetDesignID   string
	Distance         float64
	Ticks            int
	Seed             uint64
	TickSeconds      float64
	ReturnFire       bool
}

type RunBattleResponse struct {
	Report *combat.Report
}

// RunBattleHandler handles RunBattleCommand
type RunBattleHandler struct {
	designs  ship.DesignRepository
	reports  combat.ReportRepository
	store    *catalog.Store
	defaults Defaults
	clock    shared.Clock
}

func NewRunBattleHandler(designs ship.DesignRepository, reports combat.ReportRepository, store *catalog.Store, defaults Defaults, clock shared.Clock) *RunBattleHandler {
	if defaults.TickSeconds <= 0 {
		defaults.TickSeconds = 0.1
	}
	if defaults.MaxTicks <= 0 {
		defaults.MaxTicks = 500
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &RunBattleHandler{designs: designs, reports: reports, store: store, defaults: defaults, clock: clock}
}

// Handle executes the run battle command
func (h *RunBattleHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RunBattleCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}
	if cmd.Distance < 0 {
		return nil, shared.NewValidationError("distance", "must not be negative")
	}
	h.applyDefaults(cmd)

	attackerShip, err := h.assemble(ctx, cmd.AttackerDesignID, cmd.TickSeconds)
	if err != nil {
		return nil, fmt.Errorf("attacker: %w", err)
	}
	targetShip, err := h.assemble(ctx, cmd.TargetDesignID, cmd.TickSeconds)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	b := combat.NewBattle(cmd.Seed)
	attacker := combat.NewCombatant("attacker", "attacker", attackerShip, shared.Vec2{}, 0)
	target := combat.NewCombatant("target", "target", targetShip, shared.Vec2{X: cmd.Distance}, 180)

	var fallback combat.Controller
	if cmd.ReturnFire {
		fallback = combat.NewFixedTargetController(attacker)
	}
	if err := b.Add(attacker, combat.NewFixedTargetController(target)); err != nil {
		return nil, err
	}
	if err := b.Add(target, combat.NewPointDefenseController(b, fallback)); err != nil {
		return nil, err
	}

	tally := b.Run(cmd.TickSeconds, cmd.Ticks)

	report := &combat.Report{
		ID:                utils.GenerateReportID("battle", attackerShip.Name()+" vs "+targetShip.Name()),
		AttackerDesignID:  cmd.AttackerDesignID,
		TargetDesignID:    cmd.TargetDesignID,
		Seed:              cmd.Seed,
		Distance:          cmd.Distance,
		TickSeconds:       cmd.TickSeconds,
		Ticks:             b.Ticks(),
		Elapsed:           b.Elapsed(),
		Result:            combat.ResultOf(attacker, target),
		AttackerHitPoints: attacker.HitPoints(),
		TargetHitPoints:   target.HitPoints(),
		TargetShields:     target.Shields(),
		Tally:             tally,
		CreatedAt:         h.clock.Now(),
	}

	if h.reports != nil {
		if err := h.reports.Save(ctx, report); err != nil {
			return nil, fmt.Errorf("failed to save battle report: %w", err)
		}
	}
	metrics.RecordBattle(string(report.Result), report.Ticks, tally)

	logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "battle finished", map[string]interface{}{
		"report_id": report.ID,
		"result":    string(report.Result),
		"ticks":     report.Ticks,
		"shots":     tally.Shots,
		"hits":      tally.Hits,
		"hit_rate":  tally.HitRate(),
		"simulated": time.Duration(report.Elapsed * float64(time.Second)).String(),
	})

	return &RunBattleResponse{Report: report}, nil
}

func (h *RunBattleHandler) applyDefaults(cmd *RunBattleCommand) {
	if cmd.TickSeconds <= 0 {
		cmd.TickSeconds = h.defaults.TickSeconds
	}
	if cmd.Ticks <= 0 {
		cmd.Ticks = h.defaults.MaxTicks
	}
	if cmd.Seed == 0 {
		cmd.Seed = h.defaults.Seed
	}
}

func (h *RunBattleHandler) assemble(ctx context.Context, designID string, tickSeconds float64) (*ship.Ship, error) {
	if designID == "" {
		return nil, shared.NewValidationError("design_id", "is required")
	}
	bp, err := h.designs.FindByID(ctx, designID)
	if err != nil {
		return nil, err
	}
	snap := h.store.Current()
	s, err := ship.Assemble(*bp, snap.Components, snap.Classes)
	if err != nil {
		return nil, err
	}
	s.SetTickSeconds(tickSeconds)
	return s, nil
}
