package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/shipforge-go/internal/domain/tohit"
)

type hitProbabilityContext struct {
	shot      tohit.Shot
	breakdown tohit.Breakdown
	defense   float64
}

func (c *hitProbabilityContext) reset() {
	c.shot = tohit.Shot{}
	c.breakdown = tohit.Breakdown{}
	c.defense = 0
}

func (c *hitProbabilityContext) aBeamWith(baseAccuracy, falloff float64) error {
	c.shot.BaseAccuracy = baseAccuracy
	c.shot.AccuracyFalloff = falloff
	return nil
}

func (c *hitProbabilityContext) aTargetWith(mass, defense float64) error {
	c.shot.TargetMass = mass
	c.shot.TargetDefense = defense
	return nil
}

func (c *hitProbabilityContext) theShotIsPricedAtDistance(distance float64) error {
	c.shot.CenterDistance = distance
	c.breakdown = tohit.Evaluate(c.shot)
	return nil
}

func (c *hitProbabilityContext) iComputeTheDefenseScoreOfAHullAtRest(mass float64) error {
	c.defense = tohit.DefenseScore(mass, 0, 0, 0)
	return nil
}

func (c *hitProbabilityContext) theHitProbabilityShouldBe(p float64) error {
	return assertFloat("hit probability", p, c.breakdown.Probability)
}

func (c *hitProbabilityContext) theHitProbabilityShouldBeBelow(p float64) error {
	if c.breakdown.Probability >= p {
		return fmt.Errorf("expected hit probability below %.4f, got %.4f", p, c.breakdown.Probability)
	}
	return nil
}

func (c *hitProbabilityContext) theSurfaceDistanceShouldBe(d float64) error {
	return assertFloat("surface distance", d, c.breakdown.SurfaceDistance)
}

func (c *hitProbabilityContext) theNetScoreShouldBe(score float64) error {
	return assertFloat("net score", score, c.breakdown.NetScore)
}

func (c *hitProbabilityContext) theDefenseScoreShouldBe(score float64) error {
	return assertFloat("defense score", score, c.defense)
}

// InitializeHitProbabilityScenario registers the beam accuracy steps
func InitializeHitProbabilityScenario(ctx *godog.ScenarioContext) {
	c := &hitProbabilityContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		c.reset()
		return ctx, nil
	})

	ctx.Step(`^a beam with base accuracy (-?[0-9.]+) and falloff ([0-9.]+)$`, c.aBeamWith)
	ctx.Step(`^a target of mass ([0-9.]+) with defense score (-?[0-9.]+)$`, c.aTargetWith)
	ctx.Step(`^the shot is priced at distance ([0-9.]+)$`, c.theShotIsPricedAtDistance)
	ctx.Step(`^I compute the defense score of a ([0-9.]+) mass hull at rest$`, c.iComputeTheDefenseScoreOfAHullAtRest)

	ctx.Step(`^the hit probability should be ([0-9.]+)$`, c.theHitProbabilityShouldBe)
	ctx.Step(`^the hit probability should be below ([0-9.]+)$`, c.theHitProbabilityShouldBeBelow)
	ctx.Step(`^the surface distance should be ([0-9.]+)$`, c.theSurfaceDistanceShouldBe)
	ctx.Step(`^the net score should be (-?[0-9.]+)$`, c.theNetScoreShouldBe)
	ctx.Step(`^the defense score should be (-?[0-9.]+)$`, c.theDefenseScoreShouldBe)
}
