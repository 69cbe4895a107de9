package design

import "fmt"

// Status is the outcome of one design rule
type Status string

const (
	StatusPass    Status = "PASS"
	StatusWarning Status = "WARNING"
	StatusFail    Status = "FAIL"
)

// Verdict is the result of running one rule against a design
type Verdict struct {
	Rule    string
	Status  Status
	Message string
}

func pass(rule, message string) Verdict {
	return Verdict{Rule: rule, Status: StatusPass, Message: message}
}

func warn(rule, message string) Verdict {
	return Verdict{Rule: rule, Status: StatusWarning, Message: message}
}

func fail(rule, message string) Verdict {
	return Verdict{Rule: rule, Status: StatusFail, Message: message}
}

func (v Verdict) String() string {
	return fmt.Sprintf("[%s] %s: %s", v.Status, v.Rule, v.Message)
}

// HasFailures reports whether any verdict failed
func HasFailures(verdicts []Verdict) bool {
	for _, v := range verdicts {
		if v.Status == StatusFail {
			return true
		}
	}
	return false
}

// Failures returns the messages of failed verdicts, in rule order
func Failures(verdicts []Verdict) []string {
	return messagesWith(verdicts, StatusFail)
}

// Warnings returns the messages of warning verdicts, in rule order
func Warnings(verdicts []Verdict) []string {
	return messagesWith(verdicts, StatusWarning)
}

func messagesWith(verdicts []Verdict, status Status) []string {
	var out []string
	for _, v := range verdicts {
		if v.Status == status {
			out = append(out, fmt.Sprintf("%s: %s", v.Rule, v.Message))
		}
	}
	return out
}
