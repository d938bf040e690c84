// Package state persists the overlay's collapsed and hidden flags.
//
// Keys are plain strings: one per quadrant ("bottom-left") and one per
// quadrant/panel pair ("bottom-left-fps"). Writes are synchronous and
// independent; there is no transaction or rollback.
package state

import "sync"

// Store is a boolean key-value store.
type Store interface {
	// Bool returns the stored value and whether the key was present.
	Bool(key string) (value, ok bool)
	// SetBool stores value under key.
	SetBool(key string, value bool) error
}

// QuadrantKey returns the key for a quadrant's collapsed flag.
func QuadrantKey(quadrant string) string {
	return quadrant
}

// PanelKey returns the key for a panel's hidden flag within a quadrant.
func PanelKey(quadrant, name string) string {
	return quadrant + "-" + name
}

// Memory is an in-process Store. Safe for concurrent use.
type Memory struct {
	mu     sync.RWMutex
	values map[string]bool
}

// Ensure Memory implements Store.
var _ Store = (*Memory)(nil)

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]bool)}
}

// Bool implements Store.
func (m *Memory) Bool(key string) (bool, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// SetBool implements Store.
func (m *Memory) SetBool(key string, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
