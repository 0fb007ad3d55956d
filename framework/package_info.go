// Package framework contains the low-level implementation of test harness infrastructure
// that can be reused for different kinds of tests. The base package contains shared
// types such as Logger, TestID and Results; other components are in the subpackages
// harness and scenario.
//
// The general model is:
//
// 1. The test harness talks to a live service over HTTP. Requests are built generically
// from a path template and a field map (harness package), and sent through a Transport
// that reports network failures separately from HTTP error statuses.
//
// 2. Tests are organized as scenarios: ordered chains of steps that share one mutable
// session state, so that a later step can use a token or resource ID produced by an
// earlier one (scenario package).
//
// 3. Each step gets a test context which is similar to Go's *testing.T, allowing pieces
// of test logic to accumulate assertion results and debug output.
//
// The domain-specific code that knows what is being tested is responsible for providing
// the endpoint templates, the recognized payload fields, and the scenarios themselves.
package framework
