package scenario

import (
	"context"
	"sync"

	"github.com/bookstore-qa/bookstore-contract-tests/framework"
)

// RunAll runs a list of scenarios and returns their results in the same order.
//
// If parallel is true, the scenarios run concurrently; each still has its own State, and
// steps within a scenario are still sequential. Either way, the test logger sees each
// scenario's events as an uninterrupted block, in the order the scenarios were listed.
func RunAll(ctx context.Context, scenarios []Scenario, config Config, parallel bool) []ScenarioResult {
	target := config.TestLogger
	if target == nil {
		target = framework.NullTestLogger()
	}

	results := make([]ScenarioResult, len(scenarios))
	queue := newReportQueue(target)

	runOne := func(i int) {
		buffered := &framework.BufferedTestLogger{}
		c := config
		c.TestLogger = buffered
		results[i] = Run(ctx, scenarios[i], c)
		queue.finished(i, buffered)
	}

	if parallel {
		var wg sync.WaitGroup
		for i := range scenarios {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				runOne(i)
			}(i)
		}
		wg.Wait()
	} else {
		for i := range scenarios {
			runOne(i)
		}
	}

	return results
}

// CombinedResults merges the generic results of several scenarios.
func CombinedResults(results []ScenarioResult) framework.Results {
	var ret framework.Results
	for _, r := range results {
		ret.Merge(r.Results())
	}
	return ret
}
