package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/bookstore-qa/bookstore-contract-tests/framework"
	"github.com/bookstore-qa/bookstore-contract-tests/framework/harness"
	"github.com/bookstore-qa/bookstore-contract-tests/framework/scenario"

	"github.com/alessio/shellescape"
	"github.com/caarlos0/env/v11"
)

const defaultUpdateFixture = "booktests/testdata/UpdateBooksApi.json"

// envConfig holds the defaults that can be set in the environment. Command-line flags
// take precedence over them.
type envConfig struct {
	ServiceURL     string        `env:"BOOKSTORE_URL"`
	RequestTimeout time.Duration `env:"BOOKSTORE_REQUEST_TIMEOUT" envDefault:"10s"`
	HealthTimeout  time.Duration `env:"BOOKSTORE_HEALTH_TIMEOUT" envDefault:"10s"`
	UpdateFixture  string        `env:"BOOKSTORE_UPDATE_FIXTURE" envDefault:"booktests/testdata/UpdateBooksApi.json"`
}

type commandParams struct {
	serviceURL      string
	requestTimeout  time.Duration
	healthTimeout   time.Duration
	updateFixture   string
	filters         framework.RegexFilters
	parallel        bool
	skipHealthCheck bool
	debug           bool
	debugAll        bool
}

func (c *commandParams) Read(args []string) bool {
	var defaults envConfig
	if err := env.Parse(&defaults); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid environment: %s\n", err)
		return false
	}
	if defaults.RequestTimeout <= 0 {
		defaults.RequestTimeout = harness.DefaultRequestTimeout
	}

	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.StringVar(&c.serviceURL, "url", defaults.ServiceURL, "base URL of the book store service (or $BOOKSTORE_URL)")
	fs.DurationVar(&c.requestTimeout, "timeout", defaults.RequestTimeout, "timeout for each request")
	fs.DurationVar(&c.healthTimeout, "health-timeout", defaults.HealthTimeout, "how long to wait for the service to become healthy")
	fs.StringVar(&c.updateFixture, "fixture", defaults.UpdateFixture, "JSON or YAML file with book update data")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.parallel, "parallel", false, "run scenarios concurrently")
	fs.BoolVar(&c.skipHealthCheck, "skip-health-check", false, "do not wait for the health endpoint before running tests")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if c.serviceURL == "" {
		fmt.Fprintln(os.Stderr, "-url is required")
		fs.Usage()
		return false
	}
	return true
}

// rerunCommand builds a command line that runs only the scenarios that did not pass,
// with debug output turned on. Whole scenarios are selected, since their steps depend
// on each other.
func (c commandParams) rerunCommand(program string, results []scenario.ScenarioResult) string {
	cmd := commandBuilder{}
	cmd.add(program, "-url", c.serviceURL)
	if c.updateFixture != defaultUpdateFixture {
		cmd.add("-fixture", c.updateFixture)
	}
	for _, r := range results {
		if !r.OK() {
			cmd.add("-run", "^"+regexp.QuoteMeta(r.Name)+"/")
		}
	}
	for _, p := range c.filters.MustNotMatch.Patterns() {
		cmd.add("-skip", p)
	}
	cmd.add("-debug")
	return cmd.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
