package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/bookstore-qa/bookstore-contract-tests/framework"
	"github.com/bookstore-qa/bookstore-contract-tests/framework/harness"
)

const filteredOutReason = "excluded by filter parameters"

// Config contains options for running scenarios.
type Config struct {
	// ParentID is prepended to the scenario name to form test IDs.
	ParentID framework.TestID

	// Filter, if not nil, decides which steps run. A step it rejects is skipped.
	Filter framework.Filter

	// TestLogger receives progress events. If nil, events are discarded.
	TestLogger framework.TestLogger
}

// Run executes one scenario with a fresh State and returns its outcome.
//
// The scenario moves from Pending to Running once its declarations have been validated
// and its Setup has succeeded, and ends either Completed, when every step ran or was
// legitimately skipped, or Aborted, when a configuration-class error stopped it.
func Run(ctx context.Context, sc Scenario, config Config) ScenarioResult {
	testLogger := config.TestLogger
	if testLogger == nil {
		testLogger = framework.NullTestLogger()
	}
	id := config.ParentID.Plus(sc.Name)
	result := ScenarioResult{ID: id, Name: sc.Name, State: StatePending}

	abortBeforeStart := func(err error) ScenarioResult {
		result.State = StateAborted
		result.AbortErr = err
		testLogger.TestStarted(id)
		testLogger.TestError(id, err)
		testLogger.TestFinished(id, framework.StatusAborted, nil)
		return result
	}

	steps, err := sc.orderedSteps()
	if err != nil {
		return abortBeforeStart(err)
	}
	state := NewState()
	if sc.Setup != nil {
		if err := sc.Setup(state); err != nil {
			if !IsFatal(err) {
				err = &harness.ConfigurationError{Message: "scenario setup failed", Err: err}
			}
			return abortBeforeStart(err)
		}
	}

	result.State = StateRunning
	statuses := make(map[string]framework.Status, len(steps))

	for i, step := range steps {
		stepID := id.Plus(step.Name)

		if result.State == StateAborted {
			result.Steps = append(result.Steps, StepResult{
				ID: stepID, Name: step.Name, Ordinal: step.Ordinal,
				Status: framework.StatusAborted, SkipReason: "scenario was aborted",
			})
			statuses[step.Name] = framework.StatusAborted
			continue
		}
		if err := ctx.Err(); err != nil {
			result.State = StateAborted
			result.AbortErr = err
			result.Steps = append(result.Steps, StepResult{
				ID: stepID, Name: step.Name, Ordinal: step.Ordinal,
				Status: framework.StatusAborted, Err: err,
			})
			statuses[step.Name] = framework.StatusAborted
			testLogger.TestError(stepID, err)
			continue
		}

		testLogger.TestStarted(stepID)

		if reason := skipReason(config.Filter, stepID, steps, i, statuses); reason != "" {
			testLogger.TestSkipped(stepID, reason)
			result.Steps = append(result.Steps, StepResult{
				ID: stepID, Name: step.Name, Ordinal: step.Ordinal,
				Status: framework.StatusSkipped, SkipReason: reason,
			})
			statuses[step.Name] = framework.StatusSkipped
			continue
		}

		start := time.Now()
		t := newT(ctx, stepID, step.Name, state, testLogger)
		t.run(step.Action)
		sr := t.result(step.Ordinal)
		sr.Duration = time.Since(start)

		result.Steps = append(result.Steps, sr)
		statuses[step.Name] = sr.Status
		if sr.Status == framework.StatusSkipped {
			testLogger.TestSkipped(stepID, sr.SkipReason)
		} else {
			testLogger.TestFinished(stepID, sr.Status, sr.Debug)
		}
		if sr.Status == framework.StatusAborted {
			result.State = StateAborted
			result.AbortErr = sr.Err
		}
	}

	if result.State == StateRunning {
		result.State = StateCompleted
	}
	return result
}

func skipReason(filter framework.Filter, id framework.TestID, steps []Step, i int, statuses map[string]framework.Status) string {
	if filter != nil && !filter(id) {
		return filteredOutReason
	}
	if !steps[i].DependsOnPriorSuccess {
		return ""
	}
	pred := requiredPredecessor(steps, i)
	if pred == "" {
		return ""
	}
	if status := statuses[pred]; status != framework.StatusPassed {
		return fmt.Sprintf("depends on %q, which was %s", pred, status)
	}
	return ""
}
