package mirror

import "context"

// NullMirror is a no-op mirror that never stores anything.
// Useful for testing or when local mirroring should be disabled.
type NullMirror struct{}

// NewNullMirror creates a null mirror.
func NewNullMirror() *NullMirror {
	return &NullMirror{}
}

// Get always reports no entry.
func (NullMirror) Get(ctx context.Context, userID string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (NullMirror) Set(ctx context.Context, userID string, data []byte) error {
	return nil
}

// Delete does nothing.
func (NullMirror) Delete(ctx context.Context, userID string) error {
	return nil
}

// Close does nothing.
func (NullMirror) Close() error { return nil }

var _ Mirror = (*NullMirror)(nil)
