package booktests

import (
	"context"

	"github.com/bookstore-qa/bookstore-contract-tests/framework"
	"github.com/bookstore-qa/bookstore-contract-tests/framework/scenario"
)

// AllScenarios returns new instances of every scenario, in the order they are reported.
func AllScenarios(env Env) []scenario.Scenario {
	return []scenario.Scenario{
		userAuthScenario(env),
		booksCRUDScenario(env),
		bookUpdateScenario(env),
	}
}

func RunTestSuite(
	ctx context.Context,
	env Env,
	filter framework.Filter,
	testLogger framework.TestLogger,
	parallel bool,
) []scenario.ScenarioResult {
	config := scenario.Config{Filter: filter, TestLogger: testLogger}
	return scenario.RunAll(ctx, AllScenarios(env), config, parallel)
}
