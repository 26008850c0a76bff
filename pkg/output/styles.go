package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors adapt to light and dark terminals
var (
	PrimaryColor = lipgloss.AdaptiveColor{Light: "#007ACC", Dark: "#3D9EFF"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#28A745", Dark: "#4CDD76"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFD54F"}
	HeadingColor = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#F8F9FA"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#ADB5BD"}
)

// Styles is the set of styles bound to one lipgloss renderer
type Styles struct {
	Title   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
	Path    lipgloss.Style
	Name    lipgloss.Style
}

// NewStyles builds the styles on r
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title:   r.NewStyle().Foreground(HeadingColor).Bold(true),
		Success: r.NewStyle().Foreground(SuccessColor).Bold(true),
		Error:   r.NewStyle().Foreground(ErrorColor).Bold(true),
		Warning: r.NewStyle().Foreground(WarningColor).Bold(true),
		Muted:   r.NewStyle().Foreground(MutedColor),
		Path:    r.NewStyle().Foreground(PrimaryColor).Italic(true),
		Name:    r.NewStyle().Bold(true),
	}
}
