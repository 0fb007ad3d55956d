package scenario

import (
	"errors"
	"fmt"
	"time"

	"github.com/bookstore-qa/bookstore-contract-tests/framework"
	"github.com/bookstore-qa/bookstore-contract-tests/framework/harness"
)

// RunState is the state of a scenario run.
type RunState string

const (
	StatePending   RunState = "Pending"
	StateRunning   RunState = "Running"
	StateCompleted RunState = "Completed"
	StateAborted   RunState = "Aborted"
)

// Assertion is the outcome of one expectation within a step.
type Assertion struct {
	Description string
	Expected    string
	Actual      string
	Passed      bool
}

func (a Assertion) String() string {
	if a.Expected == "" && a.Actual == "" {
		return a.Description
	}
	return fmt.Sprintf("%s: expected %s, got %s", a.Description, a.Expected, a.Actual)
}

// StepResult is the outcome of one step.
type StepResult struct {
	ID         framework.TestID
	Name       string
	Ordinal    int
	Status     framework.Status
	Response   *harness.ResponseSummary
	Assertions []Assertion
	Err        error
	SkipReason string
	Debug      framework.CapturedOutput
	Duration   time.Duration
}

// FailedAssertions returns the assertions that did not pass.
func (r StepResult) FailedAssertions() []Assertion {
	var ret []Assertion
	for _, a := range r.Assertions {
		if !a.Passed {
			ret = append(ret, a)
		}
	}
	return ret
}

func (r StepResult) errors() []error {
	var ret []error
	for _, a := range r.FailedAssertions() {
		ret = append(ret, errors.New(a.String()))
	}
	if r.Err != nil {
		ret = append(ret, r.Err)
	}
	return ret
}

// ScenarioResult is the outcome of one scenario.
type ScenarioResult struct {
	ID       framework.TestID
	Name     string
	State    RunState
	Steps    []StepResult
	AbortErr error
}

// OK is true if the scenario completed and no step failed.
func (r ScenarioResult) OK() bool {
	if r.State != StateCompleted {
		return false
	}
	for _, s := range r.Steps {
		if s.Status == framework.StatusFailed || s.Status == framework.StatusAborted {
			return false
		}
	}
	return true
}

// FailedAssertions counts failed assertions across all steps.
func (r ScenarioResult) FailedAssertions() int {
	n := 0
	for _, s := range r.Steps {
		n += len(s.FailedAssertions())
	}
	return n
}

// Step returns the result of the named step, if it exists.
func (r ScenarioResult) Step(name string) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return StepResult{}, false
}

// Results converts the scenario outcome into generic test results. An abort that
// happened before any step ran is reported against the scenario itself.
func (r ScenarioResult) Results() framework.Results {
	var ret framework.Results
	if r.State == StateAborted && len(r.Steps) == 0 {
		ret.Add(framework.TestResult{TestID: r.ID, Status: framework.StatusAborted, Errors: []error{r.AbortErr}})
		return ret
	}
	for _, s := range r.Steps {
		ret.Add(framework.TestResult{TestID: s.ID, Status: s.Status, Errors: s.errors(), SkipReason: s.SkipReason})
	}
	return ret
}
