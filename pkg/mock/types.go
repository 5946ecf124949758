// Package mock defines the value types exchanged between the engine, the
// endpoint registry, and the request log: the canned Response served for a
// configured endpoint and the Request captured for every inbound call.
package mock

import (
	"encoding/json"
	"fmt"
	"time"
)

// BodyValue is an opaque JSON-serializable response body. It holds the
// already-encoded bytes, so encoding happens exactly once at configuration
// time and dispatch only ever writes bytes. A nil *BodyValue means the
// endpoint has no body configured.
type BodyValue struct {
	raw json.RawMessage
}

// JSONValue encodes v as JSON and wraps it as a BodyValue.
// Encoding errors surface here, at configuration time, not during dispatch.
func JSONValue(v any) (*BodyValue, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding response body: %w", err)
	}
	return &BodyValue{raw: data}, nil
}

// RawJSON wraps pre-encoded JSON bytes as a BodyValue without validation.
func RawJSON(data []byte) *BodyValue {
	raw := make(json.RawMessage, len(data))
	copy(raw, data)
	return &BodyValue{raw: raw}
}

// Bytes returns the encoded JSON bytes. Returns nil for a nil BodyValue.
func (b *BodyValue) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.raw
}

// MarshalJSON implements json.Marshaler.
func (b *BodyValue) MarshalJSON() ([]byte, error) {
	if b == nil || len(b.raw) == 0 {
		return []byte("null"), nil
	}
	return b.raw, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *BodyValue) UnmarshalJSON(data []byte) error {
	b.raw = make(json.RawMessage, len(data))
	copy(b.raw, data)
	return nil
}

// Response is the canned response served for a matched endpoint.
// Instances are treated as immutable once registered; the engine never
// mutates a stored Response.
type Response struct {
	// StatusCode is the HTTP status to write. Zero is normalized to 200
	// by the builder before registration.
	StatusCode int `json:"statusCode"`

	// Headers are written onto the response verbatim.
	Headers map[string]string `json:"headers,omitempty"`

	// Body is the optional JSON body. When set, dispatch writes it with
	// Content-Type application/json; when nil, no body and no content type.
	Body *BodyValue `json:"body,omitempty"`

	// Delay suspends completion of the response. Non-positive means no delay.
	Delay time.Duration `json:"-"`
}

// Request is one captured inbound call. Created exactly once, after the
// request body has been fully read, and never mutated afterwards.
type Request struct {
	// Method is the HTTP verb as received.
	Method string `json:"method"`

	// Path is the URL path with no query component.
	Path string `json:"path"`

	// Payload is the raw request body. Nil when the request carried no
	// body (or an empty one), as opposed to an empty string.
	Payload *string `json:"payload,omitempty"`

	// Headers holds the request headers, last value wins on duplicates.
	Headers map[string]string `json:"headers,omitempty"`

	// Query holds the query parameters, last value wins on duplicate keys.
	Query map[string]string `json:"queryParameters,omitempty"`
}

// HasPayload reports whether the request carried a body.
func (r *Request) HasPayload() bool {
	return r.Payload != nil
}
