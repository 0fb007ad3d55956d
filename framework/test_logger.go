package framework

import "sync"

type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, status Status, debugOutput CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                          {}
func (n nullTestLogger) TestError(TestID, error)                     {}
func (n nullTestLogger) TestFinished(TestID, Status, CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                  {}

func NullTestLogger() TestLogger { return nullTestLogger{} }

// BufferedTestLogger records test events so that they can be replayed later to another
// TestLogger. This lets scenarios that run concurrently produce readable output, since
// each one's events can be replayed as a unit.
type BufferedTestLogger struct {
	events []func(TestLogger)
	lock   sync.Mutex
}

func (b *BufferedTestLogger) add(event func(TestLogger)) {
	b.lock.Lock()
	b.events = append(b.events, event)
	b.lock.Unlock()
}

func (b *BufferedTestLogger) TestStarted(id TestID) {
	b.add(func(l TestLogger) { l.TestStarted(id) })
}

func (b *BufferedTestLogger) TestError(id TestID, err error) {
	b.add(func(l TestLogger) { l.TestError(id, err) })
}

func (b *BufferedTestLogger) TestFinished(id TestID, status Status, debugOutput CapturedOutput) {
	b.add(func(l TestLogger) { l.TestFinished(id, status, debugOutput) })
}

func (b *BufferedTestLogger) TestSkipped(id TestID, reason string) {
	b.add(func(l TestLogger) { l.TestSkipped(id, reason) })
}

// Replay sends all recorded events, in order, to the target.
func (b *BufferedTestLogger) Replay(target TestLogger) {
	b.lock.Lock()
	events := make([]func(TestLogger), len(b.events))
	copy(events, b.events)
	b.lock.Unlock()
	for _, e := range events {
		e(target)
	}
}
