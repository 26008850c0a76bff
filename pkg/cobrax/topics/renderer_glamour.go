package topics

import (
	"github.com/charmbracelet/glamour"
)

// GlamourRenderer renders markdown topics with glamour
type GlamourRenderer struct {
	// Style is "dark", "light", "notty", "auto" or a path to a style file
	Style string
	// Width wraps output at this many columns. 0 keeps glamour's default.
	Width int
}

// NewGlamourRenderer returns a renderer for the given colour setting.
// Without colour the "notty" style is used so no escape codes are written.
func NewGlamourRenderer(color bool) *GlamourRenderer {
	style := "auto"
	if !color {
		style = "notty"
	}
	return &GlamourRenderer{Style: style}
}

// Render converts markdown to terminal output. Other formats, and any
// glamour failure, fall back to the raw content.
func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	switch r.Style {
	case "", "auto":
		options = append(options, glamour.WithAutoStyle())
	default:
		options = append(options, glamour.WithStandardStyle(r.Style))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
