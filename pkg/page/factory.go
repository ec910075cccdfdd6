package page

// CanvasPadding is the fixed interior padding of the canvas, subtracted
// uniformly from both axes of a drop coordinate.
const CanvasPadding = 20.0

// Factory builds new canvas elements from a widget type and a drop
// coordinate. It has no side effects beyond object construction; inserting
// the element into a [Store] is the caller's responsibility.
type Factory struct {
	catalog *Catalog
}

// NewFactory creates a factory backed by the given catalog.
func NewFactory(catalog *Catalog) *Factory {
	return &Factory{catalog: catalog}
}

// Create builds an element of the given type at a canvas-relative drop
// coordinate. The position is the coordinate minus [CanvasPadding] on both
// axes, floored at zero. Content comes from the catalog template; the id is
// fresh and unique. An unregistered type fails with UNKNOWN_WIDGET_TYPE and
// no element is created.
func (f *Factory) Create(t ElementType, x, y float64) (Element, error) {
	content, err := f.catalog.TemplateFor(t)
	if err != nil {
		return Element{}, err
	}
	return Element{
		ID:       newID(),
		Type:     t,
		Content:  content,
		Position: Position{X: max(x-CanvasPadding, 0), Y: max(y-CanvasPadding, 0)},
	}, nil
}
