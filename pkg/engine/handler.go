// Per-request dispatch path: capture, match, delay, respond.

package engine

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jjs98/easy-server-mock/internal/storage"
	"github.com/jjs98/easy-server-mock/pkg/httputil"
	"github.com/jjs98/easy-server-mock/pkg/mock"
	"github.com/jjs98/easy-server-mock/pkg/requestlog"
)

// MaxRequestBodySize caps how much of a request body is read (10MB).
const MaxRequestBodySize = 10 << 20

// notConfiguredBody is the literal body served for unregistered endpoints.
const notConfiguredBody = "Not configured"

// handler serves every inbound request for one Server. Handlers run
// concurrently; the registry and the log are the only shared state and are
// internally synchronized.
type handler struct {
	endpoints storage.EndpointStore
	requests  requestlog.Store
	log       *slog.Logger
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// A failure while handling one request must never take down the
	// listener or touch other in-flight requests.
	defer func() {
		if rec := recover(); rec != nil {
			h.log.Error("panic in dispatch", "method", r.Method, "path", r.URL.Path, "panic", rec)
			// Best effort; if headers are already out the client just
			// sees a broken response for this one call.
			httputil.WriteError(w, http.StatusInternalServerError, "dispatch_failure", "internal error")
		}
	}()

	// Read the full body before anything else; the capture log records
	// requests in the order their bodies finish reading.
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		h.log.Warn("failed to read request body", "method", r.Method, "path", r.URL.Path, "error", err)
		httputil.WriteError(w, http.StatusBadRequest, "body_read_failure", "failed to read request body")
		return
	}

	resp := h.endpoints.Lookup(r.URL.Path, r.Method)

	// Capture unconditionally, matched or not: the log's job is call
	// capture, not a verification gate. The entry is complete before it is
	// appended and never mutated afterwards.
	entry := &requestlog.Entry{
		Request:        captureRequest(r, bodyBytes),
		RemoteAddr:     r.RemoteAddr,
		Matched:        resp != nil,
		ResponseStatus: responseStatus(resp),
	}
	h.requests.Append(entry)

	if resp == nil {
		httputil.WriteText(w, http.StatusNotFound, notConfiguredBody)
		return
	}
	h.writeResponse(w, resp)
}

// captureRequest builds the immutable request record. Header and query
// duplicates collapse to the last value.
func captureRequest(r *http.Request, bodyBytes []byte) mock.Request {
	headers := make(map[string]string, len(r.Header))
	for name, values := range r.Header {
		if len(values) > 0 {
			headers[name] = values[len(values)-1]
		}
	}

	query := make(map[string]string)
	for name, values := range r.URL.Query() {
		if len(values) > 0 {
			query[name] = values[len(values)-1]
		}
	}

	req := mock.Request{
		Method:  r.Method,
		Path:    r.URL.Path,
		Headers: headers,
		Query:   query,
	}
	// An absent or empty body yields a nil payload, not an empty string.
	if len(bodyBytes) > 0 {
		payload := string(bodyBytes)
		req.Payload = &payload
	}
	return req
}

// writeResponse renders a matched response: configured delay first, then
// headers, status, and the pre-encoded JSON body if one was configured.
func (h *handler) writeResponse(w http.ResponseWriter, resp *mock.Response) {
	// The delay must show up in client-observed latency, so it happens
	// before the response is written. Negative delay means no delay.
	if resp.Delay > 0 {
		time.Sleep(resp.Delay)
	}

	hasContentType := false
	for name, value := range resp.Headers {
		w.Header().Set(name, value)
		if strings.EqualFold(name, "Content-Type") {
			hasContentType = true
		}
	}

	body := resp.Body.Bytes()
	if body != nil && !hasContentType {
		w.Header().Set("Content-Type", "application/json")
	}

	w.WriteHeader(responseStatus(resp))
	if body != nil {
		_, _ = w.Write(body)
	}
}

// responseStatus normalizes the status written for a lookup result:
// 404 for no match, 200 for a response registered without a status.
func responseStatus(resp *mock.Response) int {
	if resp == nil {
		return http.StatusNotFound
	}
	if resp.StatusCode == 0 {
		return http.StatusOK
	}
	return resp.StatusCode
}
