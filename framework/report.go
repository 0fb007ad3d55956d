package framework

import (
	"fmt"
	"io"
	"strings"
)

// PrintResults writes a summary of a test run: totals by status, followed by every
// failed or aborted test and its errors.
func PrintResults(out io.Writer, results Results) {
	fmt.Fprintf(out, "Ran %d steps: %d passed, %d failed, %d skipped, %d aborted\n",
		len(results.Tests),
		results.Count(StatusPassed),
		results.Count(StatusFailed),
		results.Count(StatusSkipped),
		results.Count(StatusAborted),
	)
	if results.OK() {
		fmt.Fprintln(out, "All tests passed")
		return
	}
	printGroup(out, "FAILED", results.Failures)
	printGroup(out, "ABORTED", results.Aborted)
}

func printGroup(out io.Writer, label string, tests []TestResult) {
	if len(tests) == 0 {
		return
	}
	fmt.Fprintf(out, "%s (%d):\n", label, len(tests))
	for _, t := range tests {
		fmt.Fprintf(out, "  %s\n", t.TestID)
		for _, err := range t.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(out, "    %s\n", line)
			}
		}
	}
}
