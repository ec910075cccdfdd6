package page

// Candidate is the rendered geometry of a placed element, as reported by
// the presentation layer during a reorder drag.
type Candidate struct {
	ID     string
	Top    float64
	Height float64
}

// Midpoint returns the vertical center of the candidate.
func (c Candidate) Midpoint() float64 {
	return c.Top + c.Height/2
}

// InsertionTarget resolves the insertion point for a reorder drag: given
// the pointer's vertical coordinate and the currently-placed elements
// excluding the one being dragged, it returns the id of the element the
// dragged one should be placed before.
//
// For each candidate, offset = pointerY - midpoint. Among candidates with a
// negative offset (pointer above their midpoint), the one with the greatest
// offset wins, i.e. the nearest below the pointer. When the pointer is below
// every midpoint, ok is false, meaning "insert at end". Ties on identical
// midpoints resolve to the earliest candidate in sequence order, so the
// result is deterministic for a fixed input.
func InsertionTarget(pointerY float64, candidates []Candidate) (id string, ok bool) {
	best := ""
	bestOffset := 0.0

	for _, c := range candidates {
		offset := pointerY - c.Midpoint()
		if offset >= 0 {
			continue
		}
		if best == "" || offset > bestOffset {
			best = c.ID
			bestOffset = offset
		}
	}
	return best, best != ""
}
