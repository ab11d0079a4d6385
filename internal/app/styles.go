package app

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorBorder  = lipgloss.AdaptiveColor{Light: "#DBDBDB", Dark: "#383838"}
	colorGreen   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}
)

type styles struct {
	header      lipgloss.Style
	dim         lipgloss.Style
	best        lipgloss.Style
	border      lipgloss.Style
	tableHeader lipgloss.Style
	cell        lipgloss.Style
}

// newStyles builds styles bound to r so color output follows the writer,
// not the process stdout.
func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header:      r.NewStyle().Bold(true).Foreground(colorPrimary),
		dim:         r.NewStyle().Foreground(colorDim),
		best:        r.NewStyle().Bold(true).Foreground(colorGreen),
		border:      r.NewStyle().Foreground(colorBorder),
		tableHeader: r.NewStyle().Bold(true).Foreground(colorPrimary).Padding(0, 1),
		cell:        r.NewStyle().Padding(0, 1),
	}
}
