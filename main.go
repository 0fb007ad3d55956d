package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/bookstore-qa/bookstore-contract-tests/booktests"
	"github.com/bookstore-qa/bookstore-contract-tests/bookstore"
	"github.com/bookstore-qa/bookstore-contract-tests/framework"
	"github.com/bookstore-qa/bookstore-contract-tests/framework/harness"
	"github.com/bookstore-qa/bookstore-contract-tests/framework/scenario"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}
	transport := harness.NewHTTPTransport(params.requestTimeout, framework.PrefixedLogger(mainDebugLogger, "[http] "))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !params.skipHealthCheck {
		err := harness.WaitForService(ctx, transport, bookstore.HealthURL(params.serviceURL), params.healthTimeout, os.Stdout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Book store service error: %s\n", err)
			os.Exit(1)
		}
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		Out:                  os.Stdout,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	env := booktests.Env{
		BaseURL:           params.serviceURL,
		Transport:         transport,
		UpdateFixturePath: params.updateFixture,
	}
	scenarioResults := booktests.RunTestSuite(ctx, env, params.filters.AsFilter, testLogger, params.parallel)
	results := scenario.CombinedResults(scenarioResults)

	fmt.Println()
	printScenarioSummary(os.Stdout, scenarioResults)
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		fmt.Printf("\nTo rerun the scenarios that did not pass:\n  %s\n", params.rerunCommand(os.Args[0], scenarioResults))
		os.Exit(1)
	}
}

func printScenarioSummary(out io.Writer, results []scenario.ScenarioResult) {
	for _, r := range results {
		line := fmt.Sprintf("%s: %s, %d failed assertion(s)", r.Name, r.State, r.FailedAssertions())
		if r.AbortErr != nil {
			line += fmt.Sprintf(" (%s)", r.AbortErr)
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out)
}
