package page

import (
	"github.com/Firecargit/BizHub-saas/pkg/errors"
)

// Catalog is the static registry mapping widget types to their default
// content templates. It is total over the declared type set; any other
// type fails closed with UNKNOWN_WIDGET_TYPE.
type Catalog struct {
	templates map[ElementType]func() Content
}

// NewCatalog creates a catalog with the default template for every widget type.
func NewCatalog() *Catalog {
	return &Catalog{
		templates: map[ElementType]func() Content{
			TypeHeading: func() Content { return Heading{Text: "Edit this title"} },
			TypeText: func() Content {
				return Text{Text: "Edit this paragraph of text. You can write whatever your page needs."}
			},
			TypeImage: func() Content { return Image{} },
			TypeServices: func() Content {
				return Services{Items: []ServiceItem{
					{Title: "Service 1", Description: "Service description", Price: "$50.00"},
				}}
			},
			TypeCalendar: func() Content { return Calendar{Label: "Appointment scheduling widget"} },
			TypeLocation: func() Content { return Location{Address: "Enter your address here"} },
		},
	}
}

// TemplateFor returns a fresh copy of the default content for a widget type.
// Templates are built per call so callers can mutate the result freely.
func (c *Catalog) TemplateFor(t ElementType) (Content, error) {
	tmpl, ok := c.templates[t]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownWidgetType, "unknown widget type: %q", t)
	}
	return tmpl(), nil
}

// Has reports whether the catalog registers the given widget type.
func (c *Catalog) Has(t ElementType) bool {
	_, ok := c.templates[t]
	return ok
}
