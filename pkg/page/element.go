// Package page implements the canvas engine of the BizHub page builder.
//
// The engine turns drag-and-drop gestures into an ordered collection of
// typed page elements. It is presentation-agnostic: elements are plain
// values, a renderer observes [Store] changes and projects them into
// whatever display layer is in use.
//
// # Components
//
//   - [Catalog]: registry of widget types and their default content
//   - [Factory]: builds new elements from a widget type and drop coordinate
//   - [Store]: the ordered, mutable element collection
//   - [InsertionTarget]: resolves reorder insertion points from pointer geometry
//   - [Controller]: orchestrates a single in-flight drag gesture
//
// # Serialization
//
// Elements serialize as id-free records ({type, content, position}); ids
// are minted at creation and never persisted. [Record] and [Document] are
// the transport forms shared by the save endpoint and the local mirror.
package page

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/Firecargit/BizHub-saas/pkg/errors"
)

// ElementType identifies one of the placeable widget kinds.
// The set is closed: anything outside it fails with UNKNOWN_WIDGET_TYPE.
type ElementType string

// The closed set of widget types.
const (
	TypeHeading  ElementType = "heading"
	TypeText     ElementType = "text"
	TypeImage    ElementType = "image"
	TypeServices ElementType = "services"
	TypeCalendar ElementType = "calendar"
	TypeLocation ElementType = "location"
)

// Types returns all widget types in catalog display order.
func Types() []ElementType {
	return []ElementType{TypeHeading, TypeText, TypeImage, TypeServices, TypeCalendar, TypeLocation}
}

// ParseElementType validates a widget type token.
func ParseElementType(s string) (ElementType, error) {
	t := ElementType(s)
	switch t {
	case TypeHeading, TypeText, TypeImage, TypeServices, TypeCalendar, TypeLocation:
		return t, nil
	}
	return "", errors.New(errors.ErrCodeUnknownWidgetType, "unknown widget type: %q", s)
}

// Position is a pixel offset relative to the canvas origin.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Content is the typed payload of an element. Each widget type has exactly
// one implementation; there is no free-form markup.
type Content interface {
	// ElementType reports which widget type this content belongs to.
	ElementType() ElementType
}

// Heading is a page title block.
type Heading struct {
	Text string `json:"text"`
}

// Text is an editable paragraph.
type Text struct {
	Text string `json:"text"`
}

// Image is an uploaded picture. Source is empty until the user picks a file.
type Image struct {
	Source string `json:"source,omitempty"`
	Alt    string `json:"alt,omitempty"`
}

// ServiceItem is one entry of a services list.
type ServiceItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

// Services is an ordered list of offered services.
type Services struct {
	Items []ServiceItem `json:"items"`
}

// Calendar is an appointment scheduling widget.
type Calendar struct {
	Label string `json:"label"`
}

// Location is an address / map widget.
type Location struct {
	Address string `json:"address"`
}

func (Heading) ElementType() ElementType  { return TypeHeading }
func (Text) ElementType() ElementType     { return TypeText }
func (Image) ElementType() ElementType    { return TypeImage }
func (Services) ElementType() ElementType { return TypeServices }
func (Calendar) ElementType() ElementType { return TypeCalendar }
func (Location) ElementType() ElementType { return TypeLocation }

// Element is a widget placed on the canvas. ID is assigned at creation and
// immutable; order is implicit in the Store sequence and never stored here.
type Element struct {
	ID       string
	Type     ElementType
	Content  Content
	Position Position
}

// Record is the transport form of an element. The remote save contract does
// not include ids, so loads mint fresh ones.
type Record struct {
	Type     ElementType `json:"type"`
	Content  Content     `json:"content"`
	Position Position    `json:"position"`
}

// Document is a user's page: an order-significant sequence of records.
type Document struct {
	UserID   string   `json:"userId"`
	Elements []Record `json:"elements"`
}

// Record converts an element to its id-free transport form.
func (e Element) Record() Record {
	return Record{Type: e.Type, Content: e.Content, Position: e.Position}
}

// FromRecord reconstructs an element from its transport form, assigning a
// fresh id. Content and position are preserved verbatim.
func FromRecord(r Record) Element {
	return Element{ID: newID(), Type: r.Type, Content: r.Content, Position: r.Position}
}

// newID mints an opaque unique element id.
func newID() string {
	return uuid.NewString()
}

// UnmarshalJSON decodes a record, dispatching the content payload on the
// record's type field.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type     string          `json:"type"`
		Content  json.RawMessage `json:"content"`
		Position Position        `json:"position"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	t, err := ParseElementType(raw.Type)
	if err != nil {
		return err
	}

	content, err := decodeContent(t, raw.Content)
	if err != nil {
		return err
	}

	r.Type = t
	r.Content = content
	r.Position = raw.Position
	return nil
}

// decodeContent unmarshals a content payload into the concrete variant for t.
// A missing payload yields the variant's zero value.
func decodeContent(t ElementType, data []byte) (Content, error) {
	var target any
	var done func() Content

	switch t {
	case TypeHeading:
		c := &Heading{}
		target, done = c, func() Content { return *c }
	case TypeText:
		c := &Text{}
		target, done = c, func() Content { return *c }
	case TypeImage:
		c := &Image{}
		target, done = c, func() Content { return *c }
	case TypeServices:
		c := &Services{}
		target, done = c, func() Content { return *c }
	case TypeCalendar:
		c := &Calendar{}
		target, done = c, func() Content { return *c }
	case TypeLocation:
		c := &Location{}
		target, done = c, func() Content { return *c }
	default:
		return nil, errors.New(errors.ErrCodeUnknownWidgetType, "unknown widget type: %q", t)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, target); err != nil {
			return nil, fmt.Errorf("decode %s content: %w", t, err)
		}
	}
	return done(), nil
}

// MarshalRecords serializes an element sequence to the ordered transport
// array shared by the save endpoint and the local mirror.
func MarshalRecords(elements []Element) ([]byte, error) {
	records := make([]Record, len(elements))
	for i, e := range elements {
		records[i] = e.Record()
	}
	return json.Marshal(records)
}

// UnmarshalRecords deserializes an ordered transport array.
func UnmarshalRecords(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
