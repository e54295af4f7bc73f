package client

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// styles holds the lipgloss styles of the menu screens, bound to the
// client's output so colors match what the remote terminal supports.
type styles struct {
	renderer *lipgloss.Renderer
	title    lipgloss.Style
	panel    lipgloss.Style
	text     lipgloss.Style
	dim      lipgloss.Style
	accent   lipgloss.Style
	warn     lipgloss.Style
	hud      lipgloss.Style
}

func newStyles(w io.Writer, profile termenv.Profile) styles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	r.SetHasDarkBackground(true)

	return styles{
		renderer: r,
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7fb3d5")),
		panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5f5f87")).
			Padding(0, 2),
		text:   r.NewStyle().Foreground(lipgloss.Color("#d0d0d0")),
		dim:    r.NewStyle().Foreground(lipgloss.Color("#808080")),
		accent: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffcc66")),
		warn:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff5f5f")),
		hud:    r.NewStyle().Foreground(lipgloss.Color("#d0d0d0")),
	}
}

// parentPanel returns a panel framed in the parent's inherited color.
func (s styles) parentPanel(hex string, width int) lipgloss.Style {
	return s.panel.
		BorderForeground(lipgloss.Color(hex)).
		Width(width)
}
