package page

import (
	"github.com/Firecargit/BizHub-saas/pkg/errors"
)

// MoveToken is the transfer payload of a reorder drag. New-element drags
// carry the widget type token instead; the source element's identity is
// held in the controller's state, not in the payload.
const MoveToken = "move"

// gestureState is the controller's position in the drag state machine.
type gestureState int

const (
	stateIdle gestureState = iota
	stateDragging
)

// Controller orchestrates a single in-flight drag gesture across the
// catalog, factory, store, and reorder resolution. A gesture starts with
// StartNew or StartMove, tracks the pointer with Over/Leave, and ends in
// exactly one of Drop (one terminal mutation) or Cancel (no mutation).
// The terminal state is always idle; a new gesture starts fresh.
type Controller struct {
	factory *Factory
	store   *Store

	state    gestureState
	payload  string // widget type token, or MoveToken for reorder drags
	sourceID string // dragged element id for reorder drags

	active      bool   // drop zone highlighted
	indicator   string // current insertion target, "" = at end
	indicatorOK bool
}

// NewController creates a drag controller over the given factory and store.
func NewController(factory *Factory, store *Store) *Controller {
	return &Controller{factory: factory, store: store}
}

// StartNew begins a drag of a catalog item. A gesture already in flight is
// discarded first, so stale drag state never leaks into the new gesture.
func (c *Controller) StartNew(t ElementType) {
	c.reset()
	c.state = stateDragging
	c.payload = string(t)
}

// StartMove begins a reorder drag of a placed element.
func (c *Controller) StartMove(id string) {
	c.reset()
	c.state = stateDragging
	c.payload = MoveToken
	c.sourceID = id
}

// Over handles the pointer moving across the canvas. The drop zone becomes
// active, and for reorder drags the insertion indicator is recomputed from
// the candidate geometry. Candidates including the dragged element are
// filtered out here, so callers can pass the full rendered set. No state
// transition occurs; this is side effect only.
func (c *Controller) Over(pointerY float64, candidates []Candidate) {
	if c.state != stateDragging {
		return
	}
	c.active = true
	if c.payload != MoveToken {
		return
	}
	c.indicator, c.indicatorOK = InsertionTarget(pointerY, c.exclude(candidates))
}

// Leave clears the drop zone highlight. The gesture stays in flight.
func (c *Controller) Leave() {
	c.active = false
}

// Drop completes the gesture at a canvas-relative coordinate: a widget-type
// payload creates and inserts a new element, a move payload relocates the
// dragged element before the resolved insertion target. Exactly one
// mutation happens per completed drop, and the controller returns to idle
// whether or not the mutation succeeded.
func (c *Controller) Drop(x, y float64, candidates []Candidate) error {
	if c.state != stateDragging {
		return errors.New(errors.ErrCodeInvalidInput, "drop without a drag in flight")
	}

	payload, sourceID := c.payload, c.sourceID
	filtered := c.exclude(candidates)
	c.reset()

	if payload == MoveToken {
		beforeID, ok := InsertionTarget(y, filtered)
		if !ok {
			beforeID = ""
		}
		return c.store.MoveBefore(sourceID, beforeID)
	}

	t, err := ParseElementType(payload)
	if err != nil {
		return err
	}
	el, err := c.factory.Create(t, x, y)
	if err != nil {
		return err
	}
	c.store.Insert(el)
	return nil
}

// Cancel aborts the gesture without mutating the store, as when a drag ends
// outside the canvas.
func (c *Controller) Cancel() {
	c.reset()
}

// Dragging reports whether a gesture is in flight.
func (c *Controller) Dragging() bool {
	return c.state == stateDragging
}

// Payload returns the transfer token of the in-flight gesture: a widget
// type for new-element drags, or [MoveToken] for reorder drags.
func (c *Controller) Payload() string {
	return c.payload
}

// ActiveDropZone reports whether the canvas is highlighted as a drop target.
func (c *Controller) ActiveDropZone() bool {
	return c.active
}

// Indicator returns the current visual insertion target for a reorder drag.
// ok is false when the dragged element would land at the end.
func (c *Controller) Indicator() (id string, ok bool) {
	return c.indicator, c.indicatorOK
}

// exclude filters the dragged element out of the candidate set.
func (c *Controller) exclude(candidates []Candidate) []Candidate {
	if c.sourceID == "" {
		return candidates
	}
	out := make([]Candidate, 0, len(candidates))
	for _, cand := range candidates {
		if cand.ID != c.sourceID {
			out = append(out, cand)
		}
	}
	return out
}

func (c *Controller) reset() {
	c.state = stateIdle
	c.payload = ""
	c.sourceID = ""
	c.active = false
	c.indicator = ""
	c.indicatorOK = false
}
