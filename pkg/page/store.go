package page

import (
	"slices"

	"github.com/Firecargit/BizHub-saas/pkg/errors"
)

// Op identifies a store mutation kind in change events.
type Op string

// Store mutation kinds.
const (
	OpInsert  Op = "insert"
	OpRemove  Op = "remove"
	OpMove    Op = "move"
	OpUpdate  Op = "update"
	OpRestore Op = "restore"
)

// Event describes a store mutation, delivered to subscribers after the
// sequence has changed. ElementID is empty for restores.
type Event struct {
	Op        Op
	ElementID string
}

// Store is the ordered, mutable collection of placed elements. Sequence
// order is the user-intended visual top-to-bottom order; an element's order
// is always its index, never stored on the element.
//
// The store performs no I/O and no locking: all mutations are expected to
// arrive serialized on a single event loop. Late-arriving writes against a
// deleted element (an async image decode finishing after the user removed
// the widget) are tolerated as no-ops.
type Store struct {
	elements []Element
	subs     []func(Event)
}

// NewStore creates an empty store. The empty-state placeholder is showing.
func NewStore() *Store {
	return &Store{}
}

// Subscribe registers fn to be called after every mutation. Subscribers
// must not mutate the store from within the callback.
func (s *Store) Subscribe(fn func(Event)) {
	s.subs = append(s.subs, fn)
}

func (s *Store) notify(ev Event) {
	for _, fn := range s.subs {
		fn(ev)
	}
}

// Insert appends an element to the end of the sequence and clears the
// empty-state placeholder. An element whose id is already present is
// ignored, keeping ids unique for the lifetime of the document.
func (s *Store) Insert(el Element) {
	if s.indexOf(el.ID) >= 0 {
		return
	}
	s.elements = append(s.elements, el)
	s.notify(Event{Op: OpInsert, ElementID: el.ID})
}

// Remove deletes an element by id. Removing an absent id is a no-op, so
// Remove is idempotent. When the last element goes, the empty-state
// placeholder shows again.
func (s *Store) Remove(id string) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.elements = slices.Delete(s.elements, i, i+1)
	s.notify(Event{Op: OpRemove, ElementID: id})
}

// MoveBefore relocates an element to just before beforeID, or to the end of
// the sequence when beforeID is empty. The relative order of all other
// elements is preserved. A missing id or beforeID leaves the sequence
// untouched and reports ELEMENT_NOT_FOUND.
func (s *Store) MoveBefore(id, beforeID string) error {
	from := s.indexOf(id)
	if from < 0 {
		return errors.New(errors.ErrCodeElementNotFound, "element %s not found", id)
	}
	if beforeID != "" && s.indexOf(beforeID) < 0 {
		return errors.New(errors.ErrCodeElementNotFound, "element %s not found", beforeID)
	}
	if id == beforeID {
		return nil
	}

	el := s.elements[from]
	s.elements = slices.Delete(s.elements, from, from+1)

	to := len(s.elements)
	if beforeID != "" {
		to = s.indexOf(beforeID)
	}
	s.elements = slices.Insert(s.elements, to, el)
	s.notify(Event{Op: OpMove, ElementID: id})
	return nil
}

// UpdateContent replaces an element's content in place. Updating an absent
// id is a no-op: an asynchronous content read may complete after the user
// already deleted the element it targets.
func (s *Store) UpdateContent(id string, content Content) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.elements[i].Content = content
	s.notify(Event{Op: OpUpdate, ElementID: id})
}

// Restore atomically replaces the entire sequence, as on session load. The
// empty-state placeholder follows from the new sequence length.
func (s *Store) Restore(elements []Element) {
	s.elements = slices.Clone(elements)
	s.notify(Event{Op: OpRestore})
}

// Snapshot returns a copy of the ordered sequence for persistence. Mutating
// the returned slice does not affect the store.
func (s *Store) Snapshot() []Element {
	return slices.Clone(s.elements)
}

// Get returns the element with the given id, if present.
func (s *Store) Get(id string) (Element, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Element{}, false
	}
	return s.elements[i], true
}

// Len returns the number of placed elements.
func (s *Store) Len() int {
	return len(s.elements)
}

// Placeholder reports whether the empty-state marker is showing. It shows
// iff the sequence is empty; it is never present alongside elements.
func (s *Store) Placeholder() bool {
	return len(s.elements) == 0
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.elements, func(e Element) bool { return e.ID == id })
}
