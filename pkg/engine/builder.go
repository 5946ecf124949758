package engine

import (
	"net/http"
	"time"

	"github.com/jjs98/easy-server-mock/pkg/mock"
)

// EndpointBuilder accumulates the configuration for one (path, method)
// registration. Nothing reaches the registry until Provide is called;
// Provide materializes an immutable mock.Response and commits it through
// the registry's insert-if-absent rule, so calling Provide twice (or
// re-running the same setup helper) is a silent no-op.
//
// The builder accepts whatever it is given: no range checks on status,
// no rejection of negative delays (the engine treats those as no delay).
type EndpointBuilder struct {
	srv        *Server
	path       string
	method     string
	statusCode int
	headers    map[string]string
	body       *mock.BodyValue
	delay      time.Duration
	err        error // first encoding error, surfaced by Provide
}

// Endpoint starts a builder for an arbitrary verb. The per-verb helpers
// below delegate here.
func (s *Server) Endpoint(method, path string) *EndpointBuilder {
	return &EndpointBuilder{
		srv:        s,
		path:       path,
		method:     method,
		statusCode: http.StatusOK,
	}
}

// Get starts a builder for GET requests to path.
func (s *Server) Get(path string) *EndpointBuilder { return s.Endpoint(http.MethodGet, path) }

// Post starts a builder for POST requests to path.
func (s *Server) Post(path string) *EndpointBuilder { return s.Endpoint(http.MethodPost, path) }

// Put starts a builder for PUT requests to path.
func (s *Server) Put(path string) *EndpointBuilder { return s.Endpoint(http.MethodPut, path) }

// Delete starts a builder for DELETE requests to path.
func (s *Server) Delete(path string) *EndpointBuilder { return s.Endpoint(http.MethodDelete, path) }

// Patch starts a builder for PATCH requests to path.
func (s *Server) Patch(path string) *EndpointBuilder { return s.Endpoint(http.MethodPatch, path) }

// Head starts a builder for HEAD requests to path.
func (s *Server) Head(path string) *EndpointBuilder { return s.Endpoint(http.MethodHead, path) }

// Options starts a builder for OPTIONS requests to path.
func (s *Server) Options(path string) *EndpointBuilder { return s.Endpoint(http.MethodOptions, path) }

// Trace starts a builder for TRACE requests to path.
func (s *Server) Trace(path string) *EndpointBuilder { return s.Endpoint(http.MethodTrace, path) }

// setErr records the first error encountered while building.
func (b *EndpointBuilder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// WithResponse sets the response body to the JSON encoding of body.
// Encoding happens here; an unencodable value surfaces from Provide.
func (b *EndpointBuilder) WithResponse(body any) *EndpointBuilder {
	v, err := mock.JSONValue(body)
	if err != nil {
		b.setErr(err)
		return b
	}
	b.body = v
	return b
}

// WithRawJSON sets the response body to pre-encoded JSON bytes.
func (b *EndpointBuilder) WithRawJSON(data []byte) *EndpointBuilder {
	b.body = mock.RawJSON(data)
	return b
}

// WithHeader adds one response header.
func (b *EndpointBuilder) WithHeader(name, value string) *EndpointBuilder {
	if b.headers == nil {
		b.headers = make(map[string]string)
	}
	b.headers[name] = value
	return b
}

// WithHeaders merges headers into the response headers.
func (b *EndpointBuilder) WithHeaders(headers map[string]string) *EndpointBuilder {
	for name, value := range headers {
		b.WithHeader(name, value)
	}
	return b
}

// WithStatusCode sets the response status. Default is 200.
func (b *EndpointBuilder) WithStatusCode(code int) *EndpointBuilder {
	b.statusCode = code
	return b
}

// WithDelay sets an artificial response delay in milliseconds.
func (b *EndpointBuilder) WithDelay(ms int) *EndpointBuilder {
	b.delay = time.Duration(ms) * time.Millisecond
	return b
}

// WithDelayDuration sets an artificial response delay.
func (b *EndpointBuilder) WithDelayDuration(d time.Duration) *EndpointBuilder {
	b.delay = d
	return b
}

// Provide commits the accumulated configuration into the engine's registry.
// It returns the first encoding error recorded by WithResponse, if any;
// otherwise it always succeeds, whether or not the registration took
// effect (first registration wins).
func (b *EndpointBuilder) Provide() error {
	if b.err != nil {
		return b.err
	}

	resp := &mock.Response{
		StatusCode: b.statusCode,
		Body:       b.body,
		Delay:      b.delay,
	}
	// Copy the header map so later builder mutation cannot reach the
	// registered response.
	if len(b.headers) > 0 {
		resp.Headers = make(map[string]string, len(b.headers))
		for name, value := range b.headers {
			resp.Headers[name] = value
		}
	}

	b.srv.Register(b.path, b.method, resp)
	return nil
}
