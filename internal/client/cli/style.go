package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Prompt  lipgloss.Style
}

// newStyles detects the color profile of w, so piped output stays plain.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		Title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#6B2FA8")),
		Heading: r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("245")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("#D7263D")),
		Success: r.NewStyle().Foreground(lipgloss.Color("#2E8B57")),
		Prompt:  r.NewStyle().Foreground(lipgloss.Color("#BA55D3")),
	}
}
