// Package bookstore contains the clients for the book store service's endpoints. Each
// client call builds a request, sends it, and, if the service reports success, writes
// what it learned into the scenario's session state.
package bookstore
