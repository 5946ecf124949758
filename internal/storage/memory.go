package storage

import (
	"sort"
	"strings"
	"sync"

	"github.com/jjs98/easy-server-mock/pkg/mock"
)

// InMemoryEndpointStore is a thread-safe in-memory EndpointStore.
type InMemoryEndpointStore struct {
	mu        sync.RWMutex
	endpoints map[string]map[string]*mock.Response // path -> method -> response
}

// NewInMemoryEndpointStore creates an empty InMemoryEndpointStore.
func NewInMemoryEndpointStore() *InMemoryEndpointStore {
	return &InMemoryEndpointStore{
		endpoints: make(map[string]map[string]*mock.Response),
	}
}

// Register inserts resp for (path, method) unless the pair already has a
// response. The first registration is authoritative; later calls return false
// and leave the stored response untouched. Method matching is case-insensitive
// per RFC 9110 verb conventions (verbs are stored uppercased).
func (s *InMemoryEndpointStore) Register(path, method string, resp *mock.Response) bool {
	if resp == nil {
		return false
	}
	method = strings.ToUpper(method)

	s.mu.Lock()
	defer s.mu.Unlock()

	byMethod, ok := s.endpoints[path]
	if !ok {
		byMethod = make(map[string]*mock.Response)
		s.endpoints[path] = byMethod
	}
	if _, exists := byMethod[method]; exists {
		return false
	}
	byMethod[method] = resp
	return true
}

// Lookup returns the response registered for (path, method), or nil.
func (s *InMemoryEndpointStore) Lookup(path, method string) *mock.Response {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.endpoints[path][strings.ToUpper(method)]
}

// Clear removes all registered endpoints.
func (s *InMemoryEndpointStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endpoints = make(map[string]map[string]*mock.Response)
}

// Len returns the number of registered (path, method) pairs.
func (s *InMemoryEndpointStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, byMethod := range s.endpoints {
		n += len(byMethod)
	}
	return n
}

// Snapshot returns all registered endpoints sorted by path then method.
func (s *InMemoryEndpointStore) Snapshot() []Endpoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Endpoint, 0, len(s.endpoints))
	for path, byMethod := range s.endpoints {
		for method, resp := range byMethod {
			result = append(result, Endpoint{Path: path, Method: method, Response: resp})
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Path != result[j].Path {
			return result[i].Path < result[j].Path
		}
		return result[i].Method < result[j].Method
	})
	return result
}

// Ensure InMemoryEndpointStore implements EndpointStore.
var _ EndpointStore = (*InMemoryEndpointStore)(nil)
