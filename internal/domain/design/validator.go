// Package design checks ship designs against construction rules.
//
// Validation always judges the installed components together with the component about to be
// added.
package design

import (
	"github.com/andrescamacho/shipforge-go/internal/domain/component"
	"github.com/andrescamacho/shipforge-go/internal/domain/ship"
)

// Validator runs an ordered rule set
type Validator struct {
	rules []Rule
}

// NewValidator creates a validator; with no rules it uses DefaultRules
func NewValidator(rules ...Rule) *Validator {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Validator{rules: rules}
}

// Validate runs every rule against s plus candidate and returns one verdict per rule.
// candidate may be nil. The ship is never modified.
func (v *Validator) Validate(s *ship.Ship, candidate *component.Instance) []Verdict {
	snap := NewSnapshot(s, candidate)
	verdicts := make([]Verdict, 0, len(v.rules))
	for _, rule := range v.rules {
		verdicts = append(verdicts, rule.Check(snap))
	}
	return verdicts
}
