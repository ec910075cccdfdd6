// Package gateway implements the persistence gateway between the canvas
// engine, the remote save endpoint, and the durable local mirror.
//
// A save serializes a store snapshot into the transport form (ordered
// {type, content, position} records, no ids), submits it to the save
// endpoint, and on acknowledgment writes the same payload to the mirror so
// the page reloads without a round trip. A load reads the mirror and
// reconstructs elements with fresh ids.
//
// # Ordering
//
// Saves are versioned with a monotonically increasing counter per gateway.
// The snapshot reflects the state at call time, not at acknowledgment
// time, so a slow save can be acknowledged after a newer one already
// synchronized the mirror. Stale acknowledgments are discarded: the mirror
// only ever moves forward.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Firecargit/BizHub-saas/pkg/errors"
	"github.com/Firecargit/BizHub-saas/pkg/httputil"
	"github.com/Firecargit/BizHub-saas/pkg/mirror"
	"github.com/Firecargit/BizHub-saas/pkg/page"
	"github.com/Firecargit/BizHub-saas/pkg/session"
)

// Default save behavior.
const (
	DefaultTimeout       = 10 * time.Second
	DefaultRetryAttempts = 3
	DefaultRetryDelay    = 500 * time.Millisecond
)

// Options tune the gateway's remote save behavior.
type Options struct {
	Timeout       time.Duration // per-save deadline on the endpoint call
	RetryAttempts int           // attempts for transient endpoint failures
	RetryDelay    time.Duration // initial backoff delay, doubling per retry
}

func (o *Options) setDefaults() {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.RetryAttempts <= 0 {
		o.RetryAttempts = DefaultRetryAttempts
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = DefaultRetryDelay
	}
}

// Gateway persists page documents to the save endpoint and the local mirror.
type Gateway struct {
	endpoint string
	http     *http.Client
	mirror   mirror.Mirror
	opts     Options

	mu       sync.Mutex
	version  uint64            // last issued save version
	mirrored map[string]uint64 // per-user version last written to the mirror
}

// New creates a gateway posting to the given save endpoint URL.
// A nil mirror disables local mirroring.
func New(endpoint string, m mirror.Mirror, opts Options) *Gateway {
	opts.setDefaults()
	if m == nil {
		m = mirror.NewNullMirror()
	}
	return &Gateway{
		endpoint: endpoint,
		http:     &http.Client{Timeout: opts.Timeout},
		mirror:   m,
		opts:     opts,
		mirrored: make(map[string]uint64),
	}
}

// Save serializes the snapshot and submits it to the save endpoint. On
// acknowledgment the serialized elements overwrite the user's mirror entry,
// unless a newer save already has. On endpoint failure the mirror is left
// unchanged (stale but not corrupt) and the failure is reported: SAVE_FAILED
// for unreachable or non-success responses, TIMEOUT when the deadline
// elapsed. A failed save is retryable by calling Save again.
func (g *Gateway) Save(ctx context.Context, sess *session.Session, snapshot []page.Element) error {
	if !sess.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "save requires a session with a user id")
	}

	elements, err := page.MarshalRecords(snapshot)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "serialize page for %s", sess.UserID)
	}
	body, err := marshalSaveBody(sess.UserID, elements)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "serialize save request for %s", sess.UserID)
	}

	version := g.issueVersion()

	if err := g.submit(ctx, body); err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return errors.Wrap(errors.ErrCodeTimeout, err, "save endpoint timed out for %s", sess.UserID)
		}
		return errors.Wrap(errors.ErrCodeSaveFailed, err, "save page for %s", sess.UserID)
	}

	return g.commit(ctx, sess.UserID, elements, version)
}

// Load reads the user's mirror entry and reconstructs the element sequence.
// An absent or empty entry loads as an empty sequence. An entry that cannot
// be decoded also loads as empty, reporting LOAD_CORRUPT so the caller can
// tell the session started from a broken mirror rather than a blank page.
func (g *Gateway) Load(ctx context.Context, sess *session.Session) ([]page.Element, error) {
	if !sess.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "load requires a session with a user id")
	}

	data, found, err := g.mirror.Get(ctx, sess.UserID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read mirror for %s", sess.UserID)
	}
	if !found || len(data) == 0 {
		return nil, nil
	}

	records, err := page.UnmarshalRecords(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoadCorrupt, err, "mirror entry for %s is not decodable", sess.UserID)
	}

	elements := make([]page.Element, len(records))
	for i, r := range records {
		elements[i] = page.FromRecord(r)
	}
	return elements, nil
}

// issueVersion hands out the next save version.
func (g *Gateway) issueVersion() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.version++
	return g.version
}

// commit writes acknowledged elements to the mirror unless a newer save for
// the same user already did. The lock is held across the write so the
// version ledger only records writes that actually landed, and concurrent
// commits reach the mirror in version order.
func (g *Gateway) commit(ctx context.Context, userID string, elements []byte, version uint64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if version <= g.mirrored[userID] {
		return nil
	}
	if err := g.mirror.Set(ctx, userID, elements); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write mirror for %s", userID)
	}
	g.mirrored[userID] = version
	return nil
}

// submit posts the save body, retrying transient failures.
func (g *Gateway) submit(ctx context.Context, body []byte) error {
	return httputil.Retry(ctx, g.opts.RetryAttempts, g.opts.RetryDelay, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := g.http.Do(req)
		if err != nil {
			return &httputil.RetryableError{Err: err}
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return nil
		case resp.StatusCode >= 500:
			return &httputil.RetryableError{Err: fmt.Errorf("save endpoint returned %d", resp.StatusCode)}
		default:
			return fmt.Errorf("save endpoint returned %d", resp.StatusCode)
		}
	})
}

// marshalSaveBody builds the endpoint request body
// {userId, elements: [...]} around pre-serialized elements.
func marshalSaveBody(userID string, elements []byte) ([]byte, error) {
	return json.Marshal(struct {
		UserID   string          `json:"userId"`
		Elements json.RawMessage `json:"elements"`
	}{UserID: userID, Elements: elements})
}
