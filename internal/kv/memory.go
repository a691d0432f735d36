package kv

import (
	"bytes"
	"context"
	"sync"
)

type MemoryStore struct {
	mu     sync.Mutex
	values map[string][]byte
	writes int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (m *MemoryStore) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, nil
	}
	return bytes.Clone(v), nil
}

func (m *MemoryStore) Write(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if value == nil {
		delete(m.values, key)
		return nil
	}
	m.values[key] = bytes.Clone(value)
	return nil
}

// Writes reports how many Write calls the store has seen.
func (m *MemoryStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
