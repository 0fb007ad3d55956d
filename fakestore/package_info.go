// Package fakestore is an in-memory implementation of the book store API. It behaves like
// the real service for everything the contract tests check, so the tests can be verified
// without a live deployment.
package fakestore
