package scenario

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeScenarios(n int, running *int32, maxRunning *int32) []Scenario {
	var ret []Scenario
	for i := 0; i < n; i++ {
		delay := time.Duration(n-i) * 10 * time.Millisecond
		ret = append(ret, Scenario{
			Name: fmt.Sprintf("scenario%d", i),
			Steps: []Step{{Name: "only", Ordinal: 1, Action: func(t *T) {
				now := atomic.AddInt32(running, 1)
				for {
					prev := atomic.LoadInt32(maxRunning)
					if now <= prev || atomic.CompareAndSwapInt32(maxRunning, prev, now) {
						break
					}
				}
				time.Sleep(delay)
				atomic.AddInt32(running, -1)
				t.State().SetAuthToken(t.ID().String())
			}}},
		})
	}
	return ret
}

func TestRunAllSequential(t *testing.T) {
	var running, maxRunning int32
	logger := &recordingTestLogger{}
	results := RunAll(context.Background(), makeScenarios(3, &running, &maxRunning), Config{TestLogger: logger}, false)
	require.Len(t, results, 3)
	assert.Equal(t, int32(1), maxRunning)
	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("scenario%d", i), r.Name)
		assert.True(t, r.OK())
	}
}

func TestRunAllParallelKeepsOutputInOrder(t *testing.T) {
	var running, maxRunning int32
	logger := &recordingTestLogger{}
	results := RunAll(context.Background(), makeScenarios(3, &running, &maxRunning), Config{TestLogger: logger}, true)
	require.Len(t, results, 3)
	assert.Greater(t, maxRunning, int32(1))
	assert.Equal(t, []string{
		"start scenario0/only", "Passed scenario0/only",
		"start scenario1/only", "Passed scenario1/only",
		"start scenario2/only", "Passed scenario2/only",
	}, logger.events)
	assert.True(t, CombinedResults(results).OK())
	assert.Len(t, CombinedResults(results).Tests, 3)
}
