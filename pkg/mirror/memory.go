package mirror

import (
	"context"
	"sync"
)

// MemoryMirror is an in-process mirror for development and tests.
type MemoryMirror struct {
	mu      sync.RWMutex
	entries map[string][]byte
	closed  bool
}

// NewMemoryMirror creates an empty in-memory mirror.
func NewMemoryMirror() *MemoryMirror {
	return &MemoryMirror{entries: make(map[string][]byte)}
}

// Get retrieves the mirrored page for a user.
func (m *MemoryMirror) Get(ctx context.Context, userID string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, false, ErrClosed
	}
	data, ok := m.entries[Key(userID)]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

// Set stores the mirrored page for a user.
func (m *MemoryMirror) Set(ctx context.Context, userID string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	m.entries[Key(userID)] = stored
	return nil
}

// Delete removes the mirrored page for a user.
func (m *MemoryMirror) Delete(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.entries, Key(userID))
	return nil
}

// Close marks the mirror closed. Further operations return [ErrClosed].
func (m *MemoryMirror) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

var _ Mirror = (*MemoryMirror)(nil)
