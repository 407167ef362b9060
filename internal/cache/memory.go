package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/heartmarshall/wordjournal/internal/domain"
)

// DefaultMemoryCapacity bounds the in-memory tier when none is configured.
const DefaultMemoryCapacity = 10_000

// Memory is the in-memory tier. The LRU serializes access internally, so
// concurrent lookups for different words never corrupt it.
type Memory struct {
	entries *lru.Cache[string, domain.LookupResult]
}

// NewMemory creates a Memory tier holding up to capacity results.
func NewMemory(capacity int) (*Memory, error) {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	entries, err := lru.New[string, domain.LookupResult](capacity)
	if err != nil {
		return nil, fmt.Errorf("cache: create memory tier: %w", err)
	}
	return &Memory{entries: entries}, nil
}

// Get returns a copy of the result stored under key.
func (m *Memory) Get(key string) (domain.LookupResult, bool) {
	r, ok := m.entries.Get(key)
	if !ok {
		return domain.LookupResult{}, false
	}
	return r.Clone(), true
}

// Add stores a copy of r under key, replacing any previous value.
func (m *Memory) Add(key string, r domain.LookupResult) {
	m.entries.Add(key, r.Clone())
}

// Remove deletes key and reports whether it was present.
func (m *Memory) Remove(key string) bool {
	return m.entries.Remove(key)
}

// Len returns the number of cached results.
func (m *Memory) Len() int {
	return m.entries.Len()
}
