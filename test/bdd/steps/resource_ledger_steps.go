package steps

import (
	"context"
	"fmt"
	"math"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/shipforge-go/internal/domain/resource"
)

type resourceLedgerContext struct {
	ledger   *resource.Ledger
	consumed bool
	rate     float64
}

func (c *resourceLedgerContext) reset() {
	c.ledger = nil
	c.consumed = false
	c.rate = 0
}

// Given steps

func (c *resourceLedgerContext) aLedgerWith(kind string, capacity, generation, constantUse, maxUse float64) error {
	c.ledger = resource.NewLedger(kind, capacity, generation, constantUse, maxUse)
	return nil
}

// When steps

func (c *resourceLedgerContext) theLedgerAdvances(seconds float64) error {
	c.ledger.Advance(seconds)
	return nil
}

func (c *resourceLedgerContext) unitsAreConsumed(amount float64) error {
	c.consumed = c.ledger.TryConsume(amount)
	return nil
}

func (c *resourceLedgerContext) anActivationCostIsConverted(amount, period, tick float64) error {
	c.rate = resource.ActivationRate(amount, period, tick)
	return nil
}

// Then steps

func (c *resourceLedgerContext) theConstantEnduranceShouldBeInfinite() error {
	if e := c.ledger.EnduranceAtConstantRate(); !math.IsInf(e, 1) {
		return fmt.Errorf("expected infinite constant endurance, got %.4f", e)
	}
	return nil
}

func (c *resourceLedgerContext) theMaxEnduranceShouldBe(seconds float64) error {
	return assertFloat("max endurance", seconds, c.ledger.EnduranceAtMaxRate())
}

func (c *resourceLedgerContext) theLedgerShouldHold(amount float64) error {
	return assertFloat("ledger current", amount, c.ledger.Current())
}

func (c *resourceLedgerContext) theConsumptionShouldSucceed() error {
	if !c.consumed {
		return fmt.Errorf("expected consumption to succeed")
	}
	return nil
}

func (c *resourceLedgerContext) theConsumptionShouldBeRefused() error {
	if c.consumed {
		return fmt.Errorf("expected consumption to be refused")
	}
	return nil
}

func (c *resourceLedgerContext) theActivationRateShouldBe(rate float64) error {
	return assertFloat("activation rate", rate, c.rate)
}

// InitializeResourceLedgerScenario registers the ledger steps
func InitializeResourceLedgerScenario(ctx *godog.ScenarioContext) {
	c := &resourceLedgerContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		c.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a "([^"]*)" ledger with capacity ([0-9.]+), generation ([0-9.]+), constant use ([0-9.]+) and max use ([0-9.]+)$`, c.aLedgerWith)

	// When steps
	ctx.Step(`^the ledger advances ([0-9.]+) seconds$`, c.theLedgerAdvances)
	ctx.Step(`^([0-9.]+) units are consumed$`, c.unitsAreConsumed)
	ctx.Step(`^an activation cost of ([0-9.]+) every ([0-9.]+) seconds is converted at a ([0-9.]+) second tick$`, c.anActivationCostIsConverted)

	// Then steps
	ctx.Step(`^the constant endurance should be infinite$`, c.theConstantEnduranceShouldBeInfinite)
	ctx.Step(`^the max endurance should be ([0-9.]+) seconds$`, c.theMaxEnduranceShouldBe)
	ctx.Step(`^the ledger should hold ([0-9.]+)$`, c.theLedgerShouldHold)
	ctx.Step(`^the consumption should succeed$`, c.theConsumptionShouldSucceed)
	ctx.Step(`^the consumption should be refused$`, c.theConsumptionShouldBeRefused)
	ctx.Step(`^the activation rate should be ([0-9.]+)$`, c.theActivationRateShouldBe)
}
