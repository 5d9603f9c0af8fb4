package coeffstore

import (
	"context"
	"sync"

	"github.com/cwbudde/algo-iir/dsp/filter/butter"
)

// Memory is an in-process Store.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]butter.Coefficients
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: map[string]butter.Coefficients{}}
}

func (m *Memory) Get(_ context.Context, key Key) (butter.Coefficients, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.entries[key.String()]
	if !ok {
		return butter.Coefficients{}, ErrNotFound
	}
	return clone(c), nil
}

func (m *Memory) Put(_ context.Context, key Key, c butter.Coefficients) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key.String()] = clone(c)
	return nil
}

// Len returns the number of cached designs.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func clone(c butter.Coefficients) butter.Coefficients {
	c.B = append([]float64(nil), c.B...)
	c.A = append([]float64(nil), c.A...)
	return c
}
