package framework

import (
	"strings"
)

// Status is the terminal state of a single test step.
type Status string

const (
	StatusPassed  Status = "Passed"
	StatusFailed  Status = "Failed"
	StatusSkipped Status = "Skipped"
	StatusAborted Status = "Aborted"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Aborted  []TestResult
}

type TestResult struct {
	TestID     TestID
	Status     Status
	Errors     []error
	SkipReason string
}

func (r Results) OK() bool {
	return len(r.Failures) == 0 && len(r.Aborted) == 0
}

// Add appends a result and files it under Failures or Aborted if appropriate.
func (r *Results) Add(result TestResult) {
	r.Tests = append(r.Tests, result)
	switch result.Status {
	case StatusFailed:
		r.Failures = append(r.Failures, result)
	case StatusAborted:
		r.Aborted = append(r.Aborted, result)
	}
}

// Merge appends all results from another Results.
func (r *Results) Merge(other Results) {
	for _, t := range other.Tests {
		r.Add(t)
	}
}

// Count returns the number of results with the given status.
func (r Results) Count(status Status) int {
	n := 0
	for _, t := range r.Tests {
		if t.Status == status {
			n++
		}
	}
	return n
}

type TestID struct {
	Path []string
}

// Plus returns a new TestID with one more path component.
func (t TestID) Plus(name string) TestID {
	return TestID{Path: append(append([]string(nil), t.Path...), name)}
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}
