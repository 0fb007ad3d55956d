// Package booktests contains the contract test scenarios for the book store service.
//
// Each scenario is a chain of steps that share one session: a user signs up and logs in,
// and later steps use the resulting token and the IDs of the books they create. A
// scenario is built fresh for every run, so nothing is carried over between runs.
package booktests
