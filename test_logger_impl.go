package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/bookstore-qa/bookstore-contract-tests/framework"

	"github.com/fatih/color"
)

var (
	failedLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	abortedLabel = color.New(color.FgMagenta, color.Bold).SprintFunc()
	skippedLabel = color.New(color.FgYellow).SprintFunc()
	errorText    = color.New(color.FgRed).SprintFunc()
)

type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Fprintf(c.Out, "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.Out, "  %s\n", errorText(line))
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, status framework.Status, debugOutput framework.CapturedOutput) {
	failed := false
	switch status {
	case framework.StatusFailed:
		fmt.Fprintf(c.Out, "  %s: %s\n", failedLabel("FAILED"), id)
		failed = true
	case framework.StatusAborted:
		fmt.Fprintf(c.Out, "  %s: %s\n", abortedLabel("ABORTED"), id)
		failed = true
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		fmt.Fprintf(c.Out, "  %s: %s\n", skippedLabel("SKIPPED"), id)
	} else {
		fmt.Fprintf(c.Out, "  %s: %s (%s)\n", skippedLabel("SKIPPED"), id, reason)
	}
}
