// Package scenario runs ordered chains of dependent test steps that share one session
// state.
//
// A Scenario is a list of Steps with unique ordinals. Steps run strictly in ascending
// ordinal order, one at a time, because each one may depend on state written by the
// ones before it: a login step stores a token that a create step uses, a create step
// stores an ID that a delete step uses, and so on.
//
// Each step receives a *T, which works like Go's *testing.T: assertion failures are
// recorded without stopping the step, FailNow stops it, and the assert and require
// packages from testify can be used with it directly. A step marked
// DependsOnPriorSuccess is skipped if the step it depends on did not pass, so that one
// failure is reported once rather than cascading into misleading failures later in the
// chain. Errors that indicate a mistake in the test declaration itself, such as reading
// state that nothing wrote, abort the whole scenario.
package scenario
