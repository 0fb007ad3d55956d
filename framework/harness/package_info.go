// Package harness contains the parts of the test harness that talk to the service under
// test: the generic request builder, the HTTP transport, fixture loading, and the
// service readiness check. None of it knows anything about specific endpoints; those
// are supplied by the domain-specific test packages.
package harness
