package framework

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsAddAndMerge(t *testing.T) {
	var r1, r2 Results
	r1.Add(TestResult{TestID: TestID{Path: []string{"a"}}, Status: StatusPassed})
	r1.Add(TestResult{TestID: TestID{Path: []string{"b"}}, Status: StatusFailed})
	r2.Add(TestResult{TestID: TestID{Path: []string{"c"}}, Status: StatusSkipped})
	r2.Add(TestResult{TestID: TestID{Path: []string{"d"}}, Status: StatusAborted})

	assert.False(t, r1.OK())
	r1.Merge(r2)
	assert.Len(t, r1.Tests, 4)
	assert.Len(t, r1.Failures, 1)
	assert.Len(t, r1.Aborted, 1)
	assert.Equal(t, 1, r1.Count(StatusSkipped))

	var skippedOnly Results
	skippedOnly.Add(TestResult{Status: StatusSkipped})
	assert.True(t, skippedOnly.OK())
}

func TestTestIDPlusDoesNotShareStorage(t *testing.T) {
	base := TestID{Path: []string{"scenario"}}
	a := base.Plus("a")
	b := base.Plus("b")
	assert.Equal(t, "scenario/a", a.String())
	assert.Equal(t, "scenario/b", b.String())
	assert.Equal(t, "scenario", base.String())
}

func TestRegexFilters(t *testing.T) {
	var f RegexFilters
	assert.True(t, f.AsFilter(TestID{Path: []string{"anything"}}))

	require.NoError(t, f.MustMatch.Set("^books"))
	require.NoError(t, f.MustNotMatch.Set("delete"))
	assert.True(t, f.AsFilter(TestID{Path: []string{"books CRUD", "log in"}}))
	assert.False(t, f.AsFilter(TestID{Path: []string{"books CRUD", "delete the book"}}))
	assert.False(t, f.AsFilter(TestID{Path: []string{"user auth", "log in"}}))
	assert.Equal(t, []string{"^books"}, f.MustMatch.Patterns())

	assert.Error(t, f.MustMatch.Set("("))
}

func TestPrintResults(t *testing.T) {
	var r Results
	r.Add(TestResult{TestID: TestID{Path: []string{"s", "ok"}}, Status: StatusPassed})
	r.Add(TestResult{TestID: TestID{Path: []string{"s", "bad"}}, Status: StatusFailed,
		Errors: []error{errors.New("status code: expected 200, got 500")}})

	var buf bytes.Buffer
	PrintResults(&buf, r)
	assert.Equal(t, "Ran 2 steps: 1 passed, 1 failed, 0 skipped, 0 aborted\n"+
		"FAILED (1):\n"+
		"  s/bad\n"+
		"    status code: expected 200, got 500\n", buf.String())
}

func TestBufferedTestLoggerReplaysInOrder(t *testing.T) {
	var b BufferedTestLogger
	id := TestID{Path: []string{"x"}}
	b.TestStarted(id)
	b.TestSkipped(id, "because")

	var captured CapturingLogger
	target := &loggingTestLogger{logger: &captured}
	b.Replay(target)
	out := captured.Output()
	require.Len(t, out, 2)
	assert.Equal(t, "started x", out[0].Message)
	assert.Equal(t, "skipped x: because", out[1].Message)
}

type loggingTestLogger struct {
	logger Logger
}

func (l *loggingTestLogger) TestStarted(id TestID)          { l.logger.Printf("started %s", id) }
func (l *loggingTestLogger) TestError(id TestID, err error) { l.logger.Printf("error %s: %s", id, err) }
func (l *loggingTestLogger) TestFinished(id TestID, status Status, _ CapturedOutput) {
	l.logger.Printf("%s %s", status, id)
}
func (l *loggingTestLogger) TestSkipped(id TestID, reason string) {
	l.logger.Printf("skipped %s: %s", id, reason)
}
