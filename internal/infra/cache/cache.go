// Package cache stores rendered lesson HTML keyed by content checksum.
package cache

import (
	"context"
	"sync"
)

// RenderCache is a byte cache for rendered lesson output.
// A miss is reported as (nil, false, nil).
type RenderCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte) error
}

// DefaultMemoryEntries is the capacity used by NewMemory when given zero.
const DefaultMemoryEntries = 256

// Memory is a bounded in-process RenderCache. When full, an arbitrary entry
// is evicted. Lesson bodies are immutable per checksum, so entries never go stale.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
	max     int
}

// NewMemory creates a Memory cache holding at most maxEntries values.
func NewMemory(maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoryEntries
	}
	return &Memory{
		entries: make(map[string][]byte, maxEntries),
		max:     maxEntries,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	return clone(v), true, nil
}

func (m *Memory) Set(_ context.Context, key string, val []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.max {
		for k := range m.entries {
			delete(m.entries, k)
			break
		}
	}
	m.entries[key] = clone(val)
	return nil
}

// Len returns the number of cached entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
