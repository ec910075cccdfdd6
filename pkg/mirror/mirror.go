// Package mirror provides the durable local mirror of saved pages.
//
// The mirror lets a session reload its page without a round trip to the
// save endpoint. Entries are keyed per user and hold the serialized page
// elements exactly as submitted to the endpoint. Backends:
//   - file: JSON files in a directory (CLI usage)
//   - redis: shared mirror for multi-instance deployments
//   - memory: in-process map for development and tests
//   - null: mirroring disabled
//
// The mirror stores opaque bytes; decoding (and corruption handling) is
// the persistence gateway's concern.
package mirror

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a closed mirror.
var ErrClosed = errors.New("mirror closed")

// Mirror is the interface for durable local page storage.
type Mirror interface {
	// Get retrieves the mirrored page for a user.
	// found is false when no entry exists.
	Get(ctx context.Context, userID string) (data []byte, found bool, err error)

	// Set stores the mirrored page for a user, overwriting any prior entry.
	Set(ctx context.Context, userID string, data []byte) error

	// Delete removes the mirrored page for a user. Absent entries are a no-op.
	Delete(ctx context.Context, userID string) error

	// Close releases backend resources.
	Close() error
}

// Key returns the storage key for a user's page.
// The format is fixed: "page_<userID>".
func Key(userID string) string {
	return "page_" + userID
}
