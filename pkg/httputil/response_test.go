package httputil

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteJSON(rec, 200, map[string]string{"status": "ok"})

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestWriteJSONNilData(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteJSON(rec, 204, nil)

	assert.Equal(t, 204, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestWriteRawJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteRawJSON(rec, 201, []byte(`{"id":"x"}`))

	assert.Equal(t, 201, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, `{"id":"x"}`, rec.Body.String())
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteText(rec, 404, "Not configured")

	assert.Equal(t, 404, rec.Code)
	assert.Equal(t, "Not configured", rec.Body.String())
	assert.NotEqual(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteError(rec, 400, "bad_request", "missing field")

	assert.Equal(t, 400, rec.Code)
	assert.JSONEq(t, `{"error":"bad_request","message":"missing field"}`, rec.Body.String())
}
