package store

import (
	"context"
	"sync"

	"github.com/warp/utilization-engine/engine"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/demo)
// =============================================================================

// Memory is an in-process EventStore. It backs the test suite and the demo
// mode; production deployments use store/sqlite.
type Memory struct {
	mu        sync.RWMutex
	windows   map[string]CachedWindow
	employees []engine.Employee
}

// Compile-time check that Memory implements EventStore.
var _ EventStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{windows: make(map[string]CachedWindow)}
}

func (m *Memory) SaveWindow(_ context.Context, cw CachedWindow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.windows[WindowKey(cw.Window)] = copyWindow(cw)
	return nil
}

func (m *Memory) LoadWindow(_ context.Context, w engine.Window) (CachedWindow, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cw, ok := m.windows[WindowKey(w)]
	if !ok {
		return CachedWindow{}, false, nil
	}
	return copyWindow(cw), true, nil
}

func (m *Memory) SaveEmployees(_ context.Context, employees []engine.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees = append([]engine.Employee(nil), employees...)
	return nil
}

func (m *Memory) LoadEmployees(_ context.Context) ([]engine.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.employees == nil {
		return nil, nil
	}
	return append([]engine.Employee(nil), m.employees...), nil
}

// copyWindow keeps callers from sharing slices with the cache.
func copyWindow(cw CachedWindow) CachedWindow {
	out := cw
	out.Events = append([]engine.Event(nil), cw.Events...)
	out.Holidays = append([]engine.Event(nil), cw.Holidays...)
	return out
}
