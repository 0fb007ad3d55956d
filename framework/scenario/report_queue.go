package scenario

import (
	"sort"
	"sync"

	"github.com/bookstore-qa/bookstore-contract-tests/framework"
)

// reportQueue replays the buffered output of finished scenarios to a test logger in the
// order the scenarios were declared. A scenario that finishes early is held until every
// scenario listed before it has been replayed.
type reportQueue struct {
	target  framework.TestLogger
	next    int
	pending map[int]*framework.BufferedTestLogger
	lock    sync.Mutex
}

func newReportQueue(target framework.TestLogger) *reportQueue {
	return &reportQueue{target: target, pending: make(map[int]*framework.BufferedTestLogger)}
}

// finished accepts the output of the scenario at the given index, counting from zero.
func (q *reportQueue) finished(index int, output *framework.BufferedTestLogger) {
	q.lock.Lock()
	defer q.lock.Unlock()
	q.pending[index] = output
	for {
		out, ok := q.pending[q.next]
		if !ok {
			return
		}
		delete(q.pending, q.next)
		out.Replay(q.target)
		q.next++
	}
}

// held returns the indexes of finished scenarios whose output is still waiting.
func (q *reportQueue) held() []int {
	q.lock.Lock()
	defer q.lock.Unlock()
	ret := make([]int, 0, len(q.pending))
	for i := range q.pending {
		ret = append(ret, i)
	}
	sort.Ints(ret)
	return ret
}
