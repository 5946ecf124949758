// Package requestlog captures inbound calls for later inspection by test
// code. Every request the engine accepts is appended here, matched or not:
// the log's job is call capture, not a verification gate.
//
// This is a leaf package with no dependency on the engine, so both the
// engine and assertion helpers can import it freely.
package requestlog

import (
	"time"

	"github.com/jjs98/easy-server-mock/pkg/mock"
)

// Entry is one captured request together with how the engine handled it.
type Entry struct {
	// ID uniquely identifies the log entry.
	ID string `json:"id"`

	// Timestamp is when the request body had been fully read.
	Timestamp time.Time `json:"timestamp"`

	// Request is the immutable captured call.
	Request mock.Request `json:"request"`

	// RemoteAddr is the client address as reported by the listener.
	RemoteAddr string `json:"remoteAddr,omitempty"`

	// Matched reports whether a registered endpoint served this call.
	Matched bool `json:"matched"`

	// ResponseStatus is the status code written for this call.
	ResponseStatus int `json:"responseStatus"`
}

// Filter selects entries by path and/or method. Zero-value fields match
// everything, so the zero Filter returns the complete log.
type Filter struct {
	// Path, when non-empty, selects entries whose path equals it exactly.
	Path string

	// Method, when non-empty, selects entries with that verb
	// (case-insensitive).
	Method string
}

// Store is the contract for request capture storage.
//
// Append must be safe under unbounded concurrent callers and must publish
// each entry atomically: a List that races an in-flight Append either sees
// the complete entry or does not see it at all.
type Store interface {
	Append(entry *Entry)

	// List returns a point-in-time snapshot in arrival order, optionally
	// filtered. Concurrent appends during iteration do not affect it.
	List(filter *Filter) []*Entry

	Clear()
	Count() int
}
