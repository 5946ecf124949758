package requestlog

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjs98/easy-server-mock/pkg/mock"
)

func entry(method, path string) *Entry {
	return &Entry{Request: mock.Request{Method: method, Path: path}}
}

func TestAppendAssignsIDAndTimestamp(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStore()
	e := entry("GET", "/test")
	s.Append(e)

	got := s.List(nil)
	require.Len(t, got, 1)
	assert.NotEmpty(t, got[0].ID)
	assert.False(t, got[0].Timestamp.IsZero())
}

func TestAppendNil(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStore()
	s.Append(nil)
	assert.Equal(t, 0, s.Count())
}

func TestListOrderAndFilter(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStore()
	s.Append(entry("GET", "/a"))
	s.Append(entry("POST", "/a"))
	s.Append(entry("GET", "/b"))

	t.Run("nil filter returns all in arrival order", func(t *testing.T) {
		got := s.List(nil)
		require.Len(t, got, 3)
		assert.Equal(t, "/a", got[0].Request.Path)
		assert.Equal(t, "POST", got[1].Request.Method)
		assert.Equal(t, "/b", got[2].Request.Path)
	})

	t.Run("zero filter matches all", func(t *testing.T) {
		assert.Len(t, s.List(&Filter{}), 3)
	})

	t.Run("path filter is exact", func(t *testing.T) {
		got := s.List(&Filter{Path: "/a"})
		require.Len(t, got, 2)
		for _, e := range got {
			assert.Equal(t, "/a", e.Request.Path)
		}
		assert.Empty(t, s.List(&Filter{Path: "/"}))
	})

	t.Run("method filter ignores case", func(t *testing.T) {
		assert.Len(t, s.List(&Filter{Method: "get"}), 2)
		assert.Len(t, s.List(&Filter{Method: "POST"}), 1)
	})

	t.Run("combined filter", func(t *testing.T) {
		got := s.List(&Filter{Path: "/a", Method: "GET"})
		require.Len(t, got, 1)
		assert.Equal(t, "GET", got[0].Request.Method)
	})
}

func TestListSnapshotIsolation(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStore()
	s.Append(entry("GET", "/a"))

	snap := s.List(nil)
	s.Append(entry("GET", "/b"))

	assert.Len(t, snap, 1)
	assert.Equal(t, 2, s.Count())
}

func TestClear(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStore()
	s.Append(entry("GET", "/a"))
	s.Clear()

	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.List(nil))

	s.Append(entry("GET", "/b"))
	assert.Equal(t, 1, s.Count())
}

func TestConcurrentAppends(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStore()
	const writers = 16
	const perWriter = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				s.Append(entry("GET", fmt.Sprintf("/w/%d", w)))
				// Interleave reads; they must never observe torn entries.
				for _, e := range s.List(nil) {
					assert.NotNil(t, e)
					assert.Equal(t, "GET", e.Request.Method)
				}
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, writers*perWriter, s.Count())
	for w := 0; w < writers; w++ {
		assert.Len(t, s.List(&Filter{Path: fmt.Sprintf("/w/%d", w)}), perWriter)
	}
}
