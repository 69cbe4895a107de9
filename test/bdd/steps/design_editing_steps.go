package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/shipforge-go/internal/application/design"
	domainDesign "github.com/andrescamacho/shipforge-go/internal/domain/design"
	"github.com/andrescamacho/shipforge-go/internal/domain/shared"
)

type designEditingContext struct {
	shipyard   *shipyardContext
	lastAdd    *design.AddComponentResponse
	lastErr    error
	removeErr  error
	validation *design.ValidateDesignResponse
}

func (c *designEditingContext) reset() {
	c.lastAdd = nil
	c.lastErr = nil
	c.removeErr = nil
	c.validation = nil
}

// Given steps

func (c *designEditingContext) theStandardComponentCatalog() error {
	return c.shipyard.useStandardCatalog()
}

func (c *designEditingContext) anEmptyDesignNamed(className, name string) error {
	resp, err := c.shipyard.send(&design.CreateDesignCommand{Name: name, ClassName: className})
	if err != nil {
		return fmt.Errorf("failed to create design %s: %w", name, err)
	}
	c.shipyard.addDesign(name, resp.(*design.CreateDesignResponse).Design.ID)
	return nil
}

// When steps

func (c *designEditingContext) iAddToTheLayerOf(componentID, layer, name string) error {
	resp, err := c.shipyard.send(&design.AddComponentCommand{
		DesignID:    c.shipyard.designID(name),
		ComponentID: componentID,
		Layer:       layer,
	})
	c.lastErr = err
	c.lastAdd = nil
	if err == nil {
		c.lastAdd = resp.(*design.AddComponentResponse)
	}
	return nil
}

func (c *designEditingContext) iRemoveFrom(componentID, name string) error {
	stats, err := c.designStats(name)
	if err != nil {
		return err
	}
	for _, installed := range stats.Design.Components {
		if installed.ComponentID == componentID {
			_, c.removeErr = c.shipyard.send(&design.RemoveComponentCommand{
				DesignID:   stats.Design.ID,
				InstanceID: installed.InstanceID,
			})
			return nil
		}
	}
	return fmt.Errorf("design %s has no %s installed", name, componentID)
}

func (c *designEditingContext) iValidateDesign(name string) error {
	resp, err := c.shipyard.send(&design.ValidateDesignQuery{DesignID: c.shipyard.designID(name)})
	if err != nil {
		return err
	}
	c.validation = resp.(*design.ValidateDesignResponse)
	return nil
}

// Then steps

func (c *designEditingContext) theAdditionShouldBeAccepted() error {
	if c.lastErr != nil {
		return fmt.Errorf("expected addition to be accepted, got: %v", c.lastErr)
	}
	return nil
}

func (c *designEditingContext) theAdditionShouldBeRejectedMentioning(text string) error {
	var rejected *shared.DesignRejectedError
	if !errors.As(c.lastErr, &rejected) {
		return fmt.Errorf("expected a design rejection, got: %v", c.lastErr)
	}
	if !strings.Contains(rejected.Error(), text) {
		return fmt.Errorf("expected rejection to mention %q, got: %s", text, rejected.Error())
	}
	return nil
}

func (c *designEditingContext) theAdditionShouldCarryAWarning(rule string) error {
	if c.lastAdd == nil {
		return fmt.Errorf("no accepted addition to inspect")
	}
	for _, v := range c.lastAdd.Verdicts {
		if v.Rule == rule && v.Status == domainDesign.StatusWarning {
			return nil
		}
	}
	return fmt.Errorf("expected a %s warning among %v", rule, c.lastAdd.Verdicts)
}

func (c *designEditingContext) designShouldHaveComponents(name string, count int) error {
	stats, err := c.designStats(name)
	if err != nil {
		return err
	}
	if got := len(stats.Design.Components); got != count {
		return fmt.Errorf("expected %d components, got %d", count, got)
	}
	return nil
}

func (c *designEditingContext) designShouldHaveMass(name string, mass float64) error {
	stats, err := c.designStats(name)
	if err != nil {
		return err
	}
	return assertFloat("design mass", mass, stats.Stats.Mass)
}

func (c *designEditingContext) theRemovalShouldSucceed() error {
	if c.removeErr != nil {
		return fmt.Errorf("expected removal to succeed, got: %v", c.removeErr)
	}
	return nil
}

func (c *designEditingContext) theDesignShouldBeValid() error {
	if c.validation == nil || !c.validation.Valid {
		return fmt.Errorf("expected a valid design, got %+v", c.validation)
	}
	return nil
}

func (c *designEditingContext) theDesignShouldBeInvalid() error {
	if c.validation == nil || c.validation.Valid {
		return fmt.Errorf("expected an invalid design, got %+v", c.validation)
	}
	return nil
}

func (c *designEditingContext) theRuleShouldReport(rule, status string) error {
	if c.validation == nil {
		return fmt.Errorf("design was not validated")
	}
	for _, v := range c.validation.Verdicts {
		if v.Rule == rule {
			if string(v.Status) != status {
				return fmt.Errorf("expected %s to report %s, got %s: %s", rule, status, v.Status, v.Message)
			}
			return nil
		}
	}
	return fmt.Errorf("no verdict for rule %s", rule)
}

func (c *designEditingContext) designStats(name string) (*design.GetDesignStatsResponse, error) {
	resp, err := c.shipyard.send(&design.GetDesignStatsQuery{DesignID: c.shipyard.designID(name)})
	if err != nil {
		return nil, err
	}
	return resp.(*design.GetDesignStatsResponse), nil
}

// InitializeDesignEditingScenario registers the design editing steps
func InitializeDesignEditingScenario(ctx *godog.ScenarioContext) {
	c := &designEditingContext{shipyard: globalShipyard}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		c.shipyard.reset()
		c.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the standard component catalog$`, c.theStandardComponentCatalog)
	ctx.Step(`^an empty "([^"]*)" design named "([^"]*)"$`, c.anEmptyDesignNamed)

	// When steps
	ctx.Step(`^I add "([^"]*)" to the "([^"]*)" layer of "([^"]*)"$`, c.iAddToTheLayerOf)
	ctx.Step(`^I remove "([^"]*)" from "([^"]*)"$`, c.iRemoveFrom)
	ctx.Step(`^I validate design "([^"]*)"$`, c.iValidateDesign)

	// Then steps
	ctx.Step(`^the addition should be accepted$`, c.theAdditionShouldBeAccepted)
	ctx.Step(`^the addition should be rejected mentioning "([^"]*)"$`, c.theAdditionShouldBeRejectedMentioning)
	ctx.Step(`^the addition should carry a "([^"]*)" warning$`, c.theAdditionShouldCarryAWarning)
	ctx.Step(`^design "([^"]*)" should have (\d+) components$`, c.designShouldHaveComponents)
	ctx.Step(`^design "([^"]*)" should have mass ([0-9.]+)$`, c.designShouldHaveMass)
	ctx.Step(`^the removal should succeed$`, c.theRemovalShouldSucceed)
	ctx.Step(`^the design should be valid$`, c.theDesignShouldBeValid)
	ctx.Step(`^the design should be invalid$`, c.theDesignShouldBeInvalid)
	ctx.Step(`^the "([^"]*)" rule should report "([^"]*)"$`, c.theRuleShouldReport)
}
