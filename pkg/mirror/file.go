package mirror

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileMirror stores mirrored pages as files in a directory, one per user.
// File names are the storage key plus a .json extension so entries stay
// inspectable with ordinary tools.
type FileMirror struct {
	mu  sync.RWMutex
	dir string
}

// NewFileMirror creates a file-backed mirror in dir, creating it if needed.
func NewFileMirror(dir string) (*FileMirror, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create mirror dir: %w", err)
	}
	return &FileMirror{dir: dir}, nil
}

func (m *FileMirror) path(userID string) string {
	return filepath.Join(m.dir, Key(userID)+".json")
}

// Get retrieves the mirrored page for a user.
func (m *FileMirror) Get(ctx context.Context, userID string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := os.ReadFile(m.path(userID))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read mirror entry: %w", err)
	}
	return data, true, nil
}

// Set stores the mirrored page for a user, overwriting any prior entry.
func (m *FileMirror) Set(ctx context.Context, userID string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.WriteFile(m.path(userID), data, 0o644); err != nil {
		return fmt.Errorf("write mirror entry: %w", err)
	}
	return nil
}

// Delete removes the mirrored page for a user.
func (m *FileMirror) Delete(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.Remove(m.path(userID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove mirror entry: %w", err)
	}
	return nil
}

// Close does nothing for the file backend.
func (m *FileMirror) Close() error { return nil }

// Path returns the directory holding mirror entries.
func (m *FileMirror) Path() string { return m.dir }

var _ Mirror = (*FileMirror)(nil)
