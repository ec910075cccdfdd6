package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Firecargit/BizHub-saas/pkg/page"
)

// Palette shared by the builder and the show preview.
var (
	colorCyan  = lipgloss.Color("14")
	colorGreen = lipgloss.Color("10")
	colorWhite = lipgloss.Color("15")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSelected = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleNormal   = lipgloss.NewStyle().Foreground(colorWhite)
	styleDim      = lipgloss.NewStyle().Foreground(colorDim)
	styleStatus   = lipgloss.NewStyle().Foreground(colorGreen)
	styleTypeTag  = lipgloss.NewStyle().Foreground(colorGray)

	styleBlock = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1).
			Width(48)

	stylePlaceholder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Foreground(colorDim).
				Padding(1, 2).
				Align(lipgloss.Center).
				Width(48)
)

// RenderPage projects an element sequence into a styled terminal preview,
// one block per element in visual order. An empty sequence renders the
// empty-state placeholder.
func RenderPage(elements []page.Element) string {
	if len(elements) == 0 {
		return stylePlaceholder.Render("Drag elements here to build your page")
	}

	blocks := make([]string, len(elements))
	for i, el := range elements {
		header := styleTypeTag.Render(widgetLabel(el.Type))
		body := styleNormal.Render(contentSummary(el.Content))
		blocks[i] = styleBlock.Render(header + "\n" + body)
	}
	return strings.Join(blocks, "\n")
}

// widgetLabel returns the display name of a widget type.
func widgetLabel(t page.ElementType) string {
	switch t {
	case page.TypeHeading:
		return "Heading"
	case page.TypeText:
		return "Text"
	case page.TypeImage:
		return "Image"
	case page.TypeServices:
		return "Services"
	case page.TypeCalendar:
		return "Scheduling"
	case page.TypeLocation:
		return "Location"
	}
	return string(t)
}

// contentSummary produces a one-or-few-line rendition of typed content.
func contentSummary(c page.Content) string {
	switch v := c.(type) {
	case page.Heading:
		return v.Text
	case page.Text:
		return v.Text
	case page.Image:
		if v.Source == "" {
			return "Click to upload an image"
		}
		return fmt.Sprintf("[image: %s]", truncate(v.Source, 40))
	case page.Services:
		lines := make([]string, len(v.Items))
		for i, item := range v.Items {
			lines[i] = fmt.Sprintf("%s: %s (%s)", item.Title, item.Description, item.Price)
		}
		return strings.Join(lines, "\n")
	case page.Calendar:
		return v.Label
	case page.Location:
		return v.Address
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
