// Package portability shares endpoint fixtures between test suites: a
// Collection document holds registered endpoints in a format-neutral shape
// and round-trips through JSON or YAML. Import feeds a collection back into
// an engine through the same first-wins registration the builder uses.
package portability

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jjs98/easy-server-mock/internal/storage"
	"github.com/jjs98/easy-server-mock/pkg/mock"
)

// Format identifies a collection serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// CollectionVersion is the current document version.
const CollectionVersion = 1

// Collection is a serializable set of endpoint configurations.
type Collection struct {
	Version   int              `json:"version" yaml:"version"`
	ID        string           `json:"id,omitempty" yaml:"id,omitempty"`
	Name      string           `json:"name,omitempty" yaml:"name,omitempty"`
	Endpoints []EndpointConfig `json:"endpoints" yaml:"endpoints"`
}

// EndpointConfig is one endpoint in wire form.
type EndpointConfig struct {
	Path       string            `json:"path" yaml:"path"`
	Method     string            `json:"method" yaml:"method"`
	StatusCode int               `json:"statusCode,omitempty" yaml:"statusCode,omitempty"`
	Headers    map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body       any               `json:"body,omitempty" yaml:"body,omitempty"`
	DelayMs    int               `json:"delayMs,omitempty" yaml:"delayMs,omitempty"`
}

// Source is anything that can enumerate its registered endpoints.
// engine.Server satisfies it.
type Source interface {
	Endpoints() []storage.Endpoint
}

// Registrar is anything accepting first-wins endpoint registrations.
// engine.Server satisfies it.
type Registrar interface {
	Register(path, method string, resp *mock.Response) bool
}

// Export snapshots src into a named Collection.
func Export(src Source, name string) (*Collection, error) {
	endpoints := src.Endpoints()
	c := &Collection{
		Version:   CollectionVersion,
		ID:        uuid.NewString(),
		Name:      name,
		Endpoints: make([]EndpointConfig, 0, len(endpoints)),
	}

	for _, ep := range endpoints {
		cfg := EndpointConfig{
			Path:       ep.Path,
			Method:     ep.Method,
			StatusCode: ep.Response.StatusCode,
			Headers:    ep.Response.Headers,
			DelayMs:    int(ep.Response.Delay.Milliseconds()),
		}
		if raw := ep.Response.Body.Bytes(); raw != nil {
			var body any
			if err := json.Unmarshal(raw, &body); err != nil {
				return nil, fmt.Errorf("decoding body for %s %s: %w", ep.Method, ep.Path, err)
			}
			cfg.Body = body
		}
		c.Endpoints = append(c.Endpoints, cfg)
	}
	return c, nil
}

// Import registers every endpoint in c onto dst. Pairs already registered
// keep their existing response (first wins); Import reports how many
// endpoints actually took effect.
func Import(dst Registrar, c *Collection) (int, error) {
	if c == nil {
		return 0, nil
	}

	registered := 0
	for _, cfg := range c.Endpoints {
		if cfg.Path == "" || cfg.Method == "" {
			return registered, fmt.Errorf("endpoint %q %q: path and method are required", cfg.Method, cfg.Path)
		}

		resp := &mock.Response{
			StatusCode: cfg.StatusCode,
			Delay:      time.Duration(cfg.DelayMs) * time.Millisecond,
		}
		if len(cfg.Headers) > 0 {
			resp.Headers = make(map[string]string, len(cfg.Headers))
			for name, value := range cfg.Headers {
				resp.Headers[name] = value
			}
		}
		if cfg.Body != nil {
			body, err := mock.JSONValue(normalizeYAML(cfg.Body))
			if err != nil {
				return registered, fmt.Errorf("encoding body for %s %s: %w", cfg.Method, cfg.Path, err)
			}
			resp.Body = body
		}

		if dst.Register(cfg.Path, cfg.Method, resp) {
			registered++
		}
	}
	return registered, nil
}

// Marshal serializes c in the given format.
func Marshal(c *Collection, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(c)
	case FormatJSON, "":
		return json.MarshalIndent(c, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// Unmarshal parses a collection in the given format.
func Unmarshal(data []byte, format Format) (*Collection, error) {
	var c Collection
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parsing collection: %w", err)
		}
	case FormatJSON, "":
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parsing collection: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	return &c, nil
}

// ParseFormat maps a format string to a Format; unknown strings error.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json", "JSON", "":
		return FormatJSON, nil
	case "yaml", "yml", "YAML":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q", s)
	}
}

// normalizeYAML rewrites map[any]any trees (as produced by YAML decoding)
// into map[string]any so the body can be JSON-encoded.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = normalizeYAML(item)
		}
		return m
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeYAML(item)
		}
		return out
	default:
		return v
	}
}
