package steps

import (
	"context"
	"fmt"
	"reflect"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/shipforge-go/internal/application/battle"
	"github.com/andrescamacho/shipforge-go/internal/application/design"
	"github.com/andrescamacho/shipforge-go/internal/domain/combat"
)

type battleContext struct {
	shipyard *shipyardContext
	reports  []*combat.Report
	err      error
}

func (c *battleContext) reset() {
	c.reports = nil
	c.err = nil
}

func (c *battleContext) last() (*combat.Report, error) {
	if c.err != nil {
		return nil, fmt.Errorf("battle failed: %w", c.err)
	}
	if len(c.reports) == 0 {
		return nil, fmt.Errorf("no battle was run")
	}
	return c.reports[len(c.reports)-1], nil
}

// Given steps

func (c *battleContext) aStoredDesignWithComponents(className, name string, table *godog.Table) error {
	resp, err := c.shipyard.send(&design.CreateDesignCommand{Name: name, ClassName: className})
	if err != nil {
		return fmt.Errorf("failed to create design %s: %w", name, err)
	}
	id := resp.(*design.CreateDesignResponse).Design.ID
	c.shipyard.addDesign(name, id)

	// Skip header row
	for _, row := range table.Rows[1:] {
		componentID, layer := row.Cells[0].Value, row.Cells[1].Value
		if _, err := c.shipyard.send(&design.AddComponentCommand{DesignID: id, ComponentID: componentID, Layer: layer}); err != nil {
			return fmt.Errorf("failed to add %s to %s: %w", componentID, name, err)
		}
	}
	return nil
}

// When steps

func (c *battleContext) fightsAtDistanceForTicksWithSeed(attacker, target string, distance float64, ticks, seed int) error {
	resp, err := c.shipyard.send(&battle.RunBattleCommand{
		AttackerDesignID: c.shipyard.designID(attacker),
		TargetDesignID:   c.shipyard.designID(target),
		Distance:         distance,
		Ticks:            ticks,
		Seed:             uint64(seed),
	})
	c.err = err
	if err == nil {
		c.reports = append(c.reports, resp.(*battle.RunBattleResponse).Report)
	}
	return nil
}

// Then steps

func (c *battleContext) bothBattlesShouldHaveTheSameTally() error {
	if c.err != nil {
		return c.err
	}
	if len(c.reports) < 2 {
		return fmt.Errorf("expected two battles, got %d", len(c.reports))
	}
	a, b := c.reports[len(c.reports)-2], c.reports[len(c.reports)-1]
	if !reflect.DeepEqual(a.Tally, b.Tally) {
		return fmt.Errorf("tallies differ:\n%+v\n%+v", a.Tally, b.Tally)
	}
	if a.Result != b.Result || a.TargetHitPoints != b.TargetHitPoints {
		return fmt.Errorf("results differ: %s/%.2f vs %s/%.2f", a.Result, a.TargetHitPoints, b.Result, b.TargetHitPoints)
	}
	return nil
}

func (c *battleContext) battleReportsShouldBeStored(count int) error {
	resp, err := c.shipyard.send(&battle.ListReportsQuery{Limit: 100})
	if err != nil {
		return err
	}
	if got := len(resp.(*battle.ReportsResponse).Reports); got != count {
		return fmt.Errorf("expected %d stored reports, got %d", count, got)
	}
	return nil
}

func (c *battleContext) theBattleShouldRecordHits(hits int) error {
	report, err := c.last()
	if err != nil {
		return err
	}
	if report.Tally.Hits != hits {
		return fmt.Errorf("expected %d hits, got %d", hits, report.Tally.Hits)
	}
	return nil
}

func (c *battleContext) theBattleShouldRecordOutcomes(outcome string) error {
	report, err := c.last()
	if err != nil {
		return err
	}
	if report.Tally.Outcomes[combat.FireOutcome(outcome)] == 0 {
		return fmt.Errorf("expected %s outcomes, got %v", outcome, report.Tally.Outcomes)
	}
	return nil
}

func (c *battleContext) theBattleResultShouldBe(result string) error {
	report, err := c.last()
	if err != nil {
		return err
	}
	if string(report.Result) != result {
		return fmt.Errorf("expected result %s, got %s", result, report.Result)
	}
	return nil
}

func (c *battleContext) theBattleShouldFail() error {
	if c.err == nil {
		return fmt.Errorf("expected the battle to fail")
	}
	return nil
}

// InitializeBattleScenario registers the battle steps. Catalog and design setup steps come
// from InitializeDesignEditingScenario.
func InitializeBattleScenario(ctx *godog.ScenarioContext) {
	c := &battleContext{shipyard: globalShipyard}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		c.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a stored "([^"]*)" design "([^"]*)" with components:$`, c.aStoredDesignWithComponents)

	// When steps
	ctx.Step(`^"([^"]*)" fights "([^"]*)" at distance ([0-9.]+) for (\d+) ticks with seed (\d+)$`, c.fightsAtDistanceForTicksWithSeed)

	// Then steps
	ctx.Step(`^both battles should have the same tally$`, c.bothBattlesShouldHaveTheSameTally)
	ctx.Step(`^(\d+) battle reports should be stored$`, c.battleReportsShouldBeStored)
	ctx.Step(`^the battle should record (\d+) hits$`, c.theBattleShouldRecordHits)
	ctx.Step(`^the battle should record "([^"]*)" outcomes$`, c.theBattleShouldRecordOutcomes)
	ctx.Step(`^the battle result should be "([^"]*)"$`, c.theBattleResultShouldBe)
	ctx.Step(`^the battle should fail$`, c.theBattleShouldFail)
}
