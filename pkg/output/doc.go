// Package output renders command results for the terminal.
//
// Human output is styled with lipgloss; the list table is drawn with pterm.
// Colour is decided once per Renderer (see DetectColor) and every style is
// created from that renderer's lipgloss.Renderer, so a no-colour renderer
// never emits escape codes. `list` can also be rendered as JSON or YAML.
package output
