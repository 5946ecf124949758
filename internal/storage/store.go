// Package storage provides the endpoint registry backing the mock engine:
// a concurrency-safe mapping from (path, method) to a canned response with
// first-registration-wins semantics.
package storage

import "github.com/jjs98/easy-server-mock/pkg/mock"

// Endpoint is one registered (path, method) pair with its response.
// Snapshot returns these for export and inspection.
type Endpoint struct {
	Path     string
	Method   string
	Response *mock.Response
}

// EndpointStore is the contract for endpoint registries.
//
// Register inserts only if the (path, method) pair is absent and reports
// whether it inserted; a second registration for the same pair is a silent
// no-op, so idempotent test setup helpers can re-run safely.
type EndpointStore interface {
	Register(path, method string, resp *mock.Response) bool
	Lookup(path, method string) *mock.Response
	Clear()
	Len() int
	Snapshot() []Endpoint
}
