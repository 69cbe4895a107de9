package battle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/shipforge-go/internal/application/battle"
	"github.com/andrescamacho/shipforge-go/internal/application/design"
	"github.com/andrescamacho/shipforge-go/internal/application/mediator"
	"github.com/andrescamacho/shipforge-go/internal/domain/combat"
	"github.com/andrescamacho/shipforge-go/internal/domain/shared"
	"github.com/andrescamacho/shipforge-go/test/helpers"
)

type fixture struct {
	ctx      context.Context
	mediator mediator.Mediator
	reports  *helpers.MockBattleReportRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	designs := helpers.NewMockDesignRepository()
	reports := helpers.NewMockBattleReportRepository()
	store := helpers.NewFixtureStore(t)
	clock := shared.NewMockClock(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	m := mediator.NewMediator()
	require.NoError(t, design.RegisterHandlers(m, designs, store, 0))
	run := battle.NewRunBattleHandler(designs, reports, store, battle.Defaults{TickSeconds: 0.1, MaxTicks: 300, Seed: 7}, clock)
	require.NoError(t, battle.RegisterHandlers(m, run, reports))
	return &fixture{ctx: context.Background(), mediator: m, reports: reports}
}

func (f *fixture) design(t *testing.T, name string, parts ...[2]string) string {
	t.Helper()
	resp, err := f.mediator.Send(f.ctx, &design.CreateDesignCommand{Name: name})
	require.NoError(t, err)
	id := resp.(*design.CreateDesignResponse).Design.ID
	for _, p := range parts {
		_, err := f.mediator.Send(f.ctx, &design.AddComponentCommand{DesignID: id, ComponentID: p[0], Layer: p[1]})
		require.NoError(t, err)
	}
	return id
}

func (f *fixture) gunboat(t *testing.T) string {
	return f.design(t, "Gunboat",
		[2]string{helpers.ReactorID, "core"},
		[2]string{helpers.BridgeID, "core"},
		[2]string{helpers.LaserID, "outer"},
		[2]string{helpers.LaserID, "outer"},
	)
}

func TestRunBattle_ProducesAndPersistsReport(t *testing.T) {
	// Arrange
	f := newFixture(t)
	attacker := f.gunboat(t)
	target := f.design(t, "Hulk", [2]string{helpers.ArmorPlateID, "armor"})

	// Act
	resp, err := f.mediator.Send(f.ctx, &battle.RunBattleCommand{AttackerDesignID: attacker, TargetDesignID: target, Distance: 300})

	// Assert
	require.NoError(t, err)
	report := resp.(*battle.RunBattleResponse).Report
	assert.Equal(t, uint64(7), report.Seed)
	assert.Equal(t, 0.1, report.TickSeconds)
	assert.Greater(t, report.Tally.Shots, 0)
	assert.Equal(t, report.Tally.Shots, report.Tally.BeamShots)
	assert.Contains(t, []combat.Result{combat.ResultAttacker, combat.ResultTimeout}, report.Result)
	assert.LessOrEqual(t, report.Ticks, 300)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), report.CreatedAt)

	stored, err := f.reports.FindByID(f.ctx, report.ID)
	require.NoError(t, err)
	assert.Same(t, report, stored)

	listed, err := f.mediator.Send(f.ctx, &battle.ListReportsQuery{})
	require.NoError(t, err)
	assert.Len(t, listed.(*battle.ReportsResponse).Reports, 1)
}

func TestRunBattle_SameSeedSameTally(t *testing.T) {
	f := newFixture(t)
	attacker := f.gunboat(t)
	target := f.design(t, "Hulk", [2]string{helpers.ArmorPlateID, "armor"})
	cmd := func() *battle.RunBattleCommand {
		return &battle.RunBattleCommand{AttackerDesignID: attacker, TargetDesignID: target, Distance: 450, Seed: 99, Ticks: 120}
	}

	first, err := f.mediator.Send(f.ctx, cmd())
	require.NoError(t, err)
	second, err := f.mediator.Send(f.ctx, cmd())
	require.NoError(t, err)

	a := first.(*battle.RunBattleResponse).Report
	b := second.(*battle.RunBattleResponse).Report
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.Tally, b.Tally)
	assert.Equal(t, a.TargetHitPoints, b.TargetHitPoints)
}

func TestRunBattle_OutOfRangeNeverFires(t *testing.T) {
	f := newFixture(t)
	attacker := f.gunboat(t)
	target := f.design(t, "Hulk", [2]string{helpers.ArmorPlateID, "armor"})

	resp, err := f.mediator.Send(f.ctx, &battle.RunBattleCommand{AttackerDesignID: attacker, TargetDesignID: target, Distance: 5000, Ticks: 20})

	require.NoError(t, err)
	report := resp.(*battle.RunBattleResponse).Report
	assert.Equal(t, 0, report.Tally.Shots)
	assert.Equal(t, 40, report.Tally.Outcomes[combat.OutcomeOutOfRange])
	assert.Equal(t, combat.ResultTimeout, report.Result)
}

func TestRunBattle_Errors(t *testing.T) {
	f := newFixture(t)
	attacker := f.gunboat(t)

	_, err := f.mediator.Send(f.ctx, &battle.RunBattleCommand{AttackerDesignID: attacker, TargetDesignID: "missing"})
	var notFound *shared.DesignNotFoundError
	assert.ErrorAs(t, err, &notFound)

	_, err = f.mediator.Send(f.ctx, &battle.RunBattleCommand{AttackerDesignID: attacker, TargetDesignID: attacker, Distance: -1})
	var invalid *shared.ValidationError
	assert.ErrorAs(t, err, &invalid)
}
