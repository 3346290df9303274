package report

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.Color("39")
	colorSecondary = lipgloss.Color("86")
	colorSuccess   = lipgloss.Color("42")
	colorError     = lipgloss.Color("196")
	colorDim       = lipgloss.Color("241")
)

type styles struct {
	header  lipgloss.Style
	rule    lipgloss.Style
	section lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	dim     lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	path    lipgloss.Style
}

// newStyles binds every style to r so color output follows the writer's
// terminal capabilities.
func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header:  r.NewStyle().Bold(true).Foreground(colorPrimary),
		rule:    r.NewStyle().Foreground(colorDim),
		section: r.NewStyle().Bold(true).Foreground(colorSecondary),
		label:   r.NewStyle().Foreground(colorDim),
		value:   r.NewStyle(),
		dim:     r.NewStyle().Foreground(colorDim).Italic(true),
		success: r.NewStyle().Foreground(colorSuccess),
		failure: r.NewStyle().Foreground(colorError),
		path:    r.NewStyle().Bold(true).Foreground(colorSecondary),
	}
}
