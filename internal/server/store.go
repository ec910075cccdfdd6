package server

import (
	"context"
	"sync"

	"github.com/Firecargit/BizHub-saas/pkg/errors"
	"github.com/Firecargit/BizHub-saas/pkg/page"
)

// DocStore is the server-side storage for page documents, one document per
// user. Put overwrites: the save endpoint has last-write-wins semantics.
type DocStore interface {
	Put(ctx context.Context, doc page.Document) error
	Get(ctx context.Context, userID string) (page.Document, error)
}

// MemoryStore is an in-process document store for development and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]page.Document
}

// NewMemoryStore creates an empty in-memory document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]page.Document)}
}

// Put stores a document, overwriting any prior one for the same user.
func (s *MemoryStore) Put(ctx context.Context, doc page.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.UserID] = doc
	return nil
}

// Get returns the stored document for a user.
func (s *MemoryStore) Get(ctx context.Context, userID string) (page.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[userID]
	if !ok {
		return page.Document{}, errors.New(errors.ErrCodePageNotFound, "no page for user %s", userID)
	}
	return doc, nil
}

var _ DocStore = (*MemoryStore)(nil)
