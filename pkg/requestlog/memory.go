package requestlog

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore is a mutex-guarded append-only Store. Entries are retained
// until Clear; the engine's Reset is the only caller that discards them.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []*Entry
}

// NewInMemoryStore creates an empty InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Append records an entry. The entry must be fully constructed by the
// caller; Append only fills in a missing ID or timestamp before publishing
// it under the lock.
func (s *InMemoryStore) Append(entry *Entry) {
	if entry == nil {
		return
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.mu.Unlock()
}

// List returns matching entries in arrival order. The returned slice is a
// snapshot: later appends never show up in it.
func (s *InMemoryStore) List(filter *Filter) []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		if filter != nil && !matches(entry, filter) {
			continue
		}
		result = append(result, entry)
	}
	return result
}

// Clear removes all entries.
func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
}

// Count returns the number of stored entries.
func (s *InMemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func matches(entry *Entry, filter *Filter) bool {
	if filter.Path != "" && entry.Request.Path != filter.Path {
		return false
	}
	if filter.Method != "" && !strings.EqualFold(entry.Request.Method, filter.Method) {
		return false
	}
	return true
}

// Ensure InMemoryStore implements Store.
var _ Store = (*InMemoryStore)(nil)
