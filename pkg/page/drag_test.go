package page

import (
	"testing"
)

func newTestController(t *testing.T) (*Controller, *Store) {
	t.Helper()
	store := NewStore()
	return NewController(NewFactory(NewCatalog()), store), store
}

func TestDropNewElementInsertsOnce(t *testing.T) {
	ctrl, store := newTestController(t)

	ctrl.StartNew(TypeHeading)
	if !ctrl.Dragging() {
		t.Fatal("gesture not in flight after StartNew")
	}
	if ctrl.Payload() != "heading" {
		t.Errorf("payload = %q, want heading", ctrl.Payload())
	}

	if err := ctrl.Drop(100, 60, nil); err != nil {
		t.Fatalf("Drop error: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("store has %d elements after drop, want 1", store.Len())
	}
	el := store.Snapshot()[0]
	if el.Position.X != 80 || el.Position.Y != 40 {
		t.Errorf("dropped element position = %+v, want (80, 40)", el.Position)
	}
	if ctrl.Dragging() {
		t.Error("controller not idle after drop")
	}

	// A second drop without a new gesture must not mutate.
	if err := ctrl.Drop(100, 60, nil); err == nil {
		t.Error("expected error dropping without a drag in flight")
	}
	if store.Len() != 1 {
		t.Errorf("stray drop mutated the store: %d elements", store.Len())
	}
}

func TestDropUnknownTypeCreatesNothing(t *testing.T) {
	ctrl, store := newTestController(t)

	ctrl.StartNew("banner")
	if err := ctrl.Drop(50, 50, nil); err == nil {
		t.Error("expected UNKNOWN_WIDGET_TYPE error")
	}
	if store.Len() != 0 {
		t.Errorf("store mutated by failed drop: %d elements", store.Len())
	}
	if ctrl.Dragging() {
		t.Error("controller stuck in dragging state after failed drop")
	}
}

func TestMoveDragUsesInsertionTarget(t *testing.T) {
	ctrl, store := newTestController(t)
	f := NewFactory(NewCatalog())

	var seq []Element
	for range 3 {
		el, _ := f.Create(TypeText, 30, 30)
		seq = append(seq, el)
		store.Insert(el)
	}

	// The rendered list: each element 100 tall, stacked top to bottom.
	candidates := []Candidate{
		{ID: seq[0].ID, Top: 0, Height: 100},
		{ID: seq[1].ID, Top: 100, Height: 100},
		{ID: seq[2].ID, Top: 200, Height: 100},
	}

	// Drag the first element; pointer at Y=150 is above only the third
	// midpoint (250), so it lands before the third element.
	ctrl.StartMove(seq[0].ID)
	ctrl.Over(150, candidates)
	if id, ok := ctrl.Indicator(); !ok || id != seq[2].ID {
		t.Errorf("indicator = (%q, %v), want (%q, true)", id, ok, seq[2].ID)
	}

	if err := ctrl.Drop(0, 150, candidates); err != nil {
		t.Fatalf("Drop error: %v", err)
	}
	got := ids(store.Snapshot())
	want := []string{seq[1].ID, seq[0].ID, seq[2].ID}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order after move = %v, want %v", got, want)
		}
	}
}

func TestMoveDragBelowEverythingLandsAtEnd(t *testing.T) {
	ctrl, store := newTestController(t)
	f := NewFactory(NewCatalog())

	a, _ := f.Create(TypeHeading, 30, 30)
	b, _ := f.Create(TypeText, 30, 30)
	store.Insert(a)
	store.Insert(b)

	candidates := []Candidate{
		{ID: a.ID, Top: 0, Height: 100},
		{ID: b.ID, Top: 100, Height: 100},
	}

	ctrl.StartMove(a.ID)
	if err := ctrl.Drop(0, 500, candidates); err != nil {
		t.Fatalf("Drop error: %v", err)
	}
	got := ids(store.Snapshot())
	if got[0] != b.ID || got[1] != a.ID {
		t.Errorf("order = %v, want [%s %s]", got, b.ID, a.ID)
	}
}

func TestOverExcludesDraggedElement(t *testing.T) {
	ctrl, store := newTestController(t)
	f := NewFactory(NewCatalog())

	a, _ := f.Create(TypeHeading, 30, 30)
	store.Insert(a)

	// The dragged element is the only candidate; with it excluded the
	// pointer is below everything and the indicator clears.
	ctrl.StartMove(a.ID)
	ctrl.Over(10, []Candidate{{ID: a.ID, Top: 0, Height: 100}})
	if _, ok := ctrl.Indicator(); ok {
		t.Error("dragged element used as its own insertion target")
	}
}

func TestCancelLeavesStoreUntouched(t *testing.T) {
	ctrl, store := newTestController(t)

	ctrl.StartNew(TypeServices)
	ctrl.Over(40, nil)
	if !ctrl.ActiveDropZone() {
		t.Error("drop zone not active during dragover")
	}
	ctrl.Leave()
	if ctrl.ActiveDropZone() {
		t.Error("drop zone still active after dragleave")
	}
	if !ctrl.Dragging() {
		t.Error("dragleave should not end the gesture")
	}

	ctrl.Cancel()
	if ctrl.Dragging() {
		t.Error("controller not idle after cancel")
	}
	if store.Len() != 0 {
		t.Errorf("cancel mutated the store: %d elements", store.Len())
	}
}

func TestStartDiscardsStaleGesture(t *testing.T) {
	ctrl, store := newTestController(t)

	ctrl.StartNew(TypeHeading)
	ctrl.StartNew(TypeText)
	if err := ctrl.Drop(30, 30, nil); err != nil {
		t.Fatalf("Drop error: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("store has %d elements, want 1", store.Len())
	}
	if got := store.Snapshot()[0].Type; got != TypeText {
		t.Errorf("dropped type = %s, want text (latest gesture)", got)
	}
}
