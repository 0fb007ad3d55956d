package scenario

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/bookstore-qa/bookstore-contract-tests/framework"
	"github.com/bookstore-qa/bookstore-contract-tests/framework/harness"
)

// T is the test context for one step.
//
// It implements the same basic functionality as Go's testing.T, but outside of the Go
// test runner. To make test assertions, you can use the Expect methods, or the assert
// and require packages passing the *T as if it were a *testing.T. Either way, a failed
// assertion is recorded and the step goes on; FailNow, which the require package calls,
// stops the step immediately.
type T struct {
	ctx         context.Context
	id          framework.TestID
	name        string
	state       *State
	testLogger  framework.TestLogger
	debugLogger framework.CapturingLogger
	assertions  []Assertion
	response    *harness.ResponseSummary
	err         error
	failed      bool
	aborted     bool
	skipped     bool
	skipReason  string
}

func newT(ctx context.Context, id framework.TestID, name string, state *State, testLogger framework.TestLogger) *T {
	return &T{ctx: ctx, id: id, name: name, state: state, testLogger: testLogger}
}

func (t *T) run(action func(*T)) {
	defer func() {
		if r := recover(); r != nil {
			if t.skipped || t.aborted {
				return
			}
			if err, ok := r.(error); ok && IsFatal(err) {
				t.aborted = true
				t.err = err
				t.testLogger.TestError(t.id, err)
				return
			}
			t.failed = true
			if _, ok := r.(*T); ok {
				if !t.hasFailureDetail() {
					t.fail(Assertion{Description: "step failed with no failure message"})
				}
				return
			}
			t.err = fmt.Errorf("unexpected panic in step: %+v\n%s", r, string(debug.Stack()))
			t.testLogger.TestError(t.id, t.err)
		}
	}()
	action(t)
}

func (t *T) hasFailureDetail() bool {
	if t.err != nil {
		return true
	}
	for _, a := range t.assertions {
		if !a.Passed {
			return true
		}
	}
	return false
}

func (t *T) status() framework.Status {
	switch {
	case t.aborted:
		return framework.StatusAborted
	case t.failed:
		return framework.StatusFailed
	case t.skipped:
		return framework.StatusSkipped
	default:
		return framework.StatusPassed
	}
}

// ID returns the full identifier of the step, including the scenario name.
func (t *T) ID() framework.TestID {
	return t.id
}

// Context returns the context to use for calls made by the step.
func (t *T) Context() context.Context {
	return t.ctx
}

// State returns the session state shared by all steps of the scenario.
func (t *T) State() *State {
	return t.state
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.fail(Assertion{Description: strings.TrimSpace(fmt.Sprintf(format, args...))})
}

// FailNow stops the step and marks it as failed. The methods in the require package call
// FailNow.
func (t *T) FailNow() {
	t.failed = true
	panic(t)
}

// Skip stops the step and marks it as skipped.
func (t *T) Skip() {
	t.skipped = true
	panic(t)
}

func (t *T) SkipWithReason(reason string) {
	t.skipReason = reason
	t.Skip()
}

// Abort stops the step and the rest of the scenario. It is for errors in the test
// declaration, not for failures of the service under test.
func (t *T) Abort(err error) {
	t.aborted = true
	t.err = err
	t.testLogger.TestError(t.id, err)
	panic(t)
}

// Debug logs some debug output for the step. The output will be passed to the test
// logger at the end of the step.
func (t *T) Debug(format string, args ...interface{}) {
	t.debugLogger.Printf(format, args...)
}

func (t *T) DebugLogger() framework.Logger {
	return &t.debugLogger
}

// RequireResponse checks the result of a call to the service.
//
// If there was no error, the response is recorded as the step's response and returned.
// A configuration-class error aborts the scenario. Any other error, such as a
// *harness.TransportError, fails the step immediately with no further assertions.
func (t *T) RequireResponse(resp harness.Response, err error) harness.Response {
	if err != nil {
		if IsFatal(err) {
			t.Abort(err)
		}
		t.failed = true
		t.err = err
		t.testLogger.TestError(t.id, err)
		t.FailNow()
	}
	summary := resp.Summary()
	t.response = &summary
	t.state.RecordResponse(t.name, summary)
	return resp
}

// RequireState aborts the scenario if a read from the session state failed.
func (t *T) RequireState(err error) {
	if err != nil {
		t.Abort(err)
	}
}

// Identity returns the scenario's credentials, aborting if they were never set.
func (t *T) Identity() Identity {
	id, err := t.state.Identity()
	t.RequireState(err)
	return id
}

// CreatedResourceID returns the ID of the live resource created earlier in the scenario,
// aborting if there is none.
func (t *T) CreatedResourceID() string {
	id, err := t.state.CreatedResourceID()
	t.RequireState(err)
	return id
}

// DeletedResourceID returns the ID of the resource deleted earlier in the scenario,
// aborting if there is none.
func (t *T) DeletedResourceID() string {
	id, err := t.state.DeletedResourceID()
	t.RequireState(err)
	return id
}

// Fields returns a field map from the session state, aborting if it was never set.
func (t *T) Fields(key string) harness.FieldMap {
	m, err := t.state.Fields(key)
	t.RequireState(err)
	return m
}

// ExpectedFields returns the field values the service should report for the current
// resource, aborting if no earlier step recorded them.
func (t *T) ExpectedFields() harness.FieldMap {
	return t.Fields(KeyExpectedFields)
}

// TrackedResources returns the labels of the live resources created earlier in the
// scenario, aborting if none were ever tracked.
func (t *T) TrackedResources() map[string]string {
	live, err := t.state.TrackedResources()
	t.RequireState(err)
	return live
}

func (t *T) record(a Assertion) bool {
	if !a.Passed {
		t.fail(a)
		return false
	}
	t.assertions = append(t.assertions, a)
	return true
}

func (t *T) fail(a Assertion) {
	a.Passed = false
	t.failed = true
	t.assertions = append(t.assertions, a)
	t.testLogger.TestError(t.id, fmt.Errorf("%s", a))
}

func (t *T) result(ordinal int) StepResult {
	return StepResult{
		ID:         t.id,
		Name:       t.name,
		Ordinal:    ordinal,
		Status:     t.status(),
		Response:   t.response,
		Assertions: t.assertions,
		Err:        t.err,
		SkipReason: t.skipReason,
		Debug:      t.debugLogger.Output(),
	}
}
