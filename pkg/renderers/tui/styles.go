package tui

import "github.com/charmbracelet/lipgloss"

// Palette mirrors the HTML screens: grey card border, bold labels, muted
// values and a green accent.
var (
	colorBorder = lipgloss.AdaptiveColor{Light: "#d1d5db", Dark: "#374151"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#d1d5db"}
	colorAccent = lipgloss.Color("#16a34a")
	colorError  = lipgloss.Color("#ef4444")
)

// Styles holds the lipgloss styles used by the preview and messages.
type Styles struct {
	Card  lipgloss.Style
	Title lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
	Error lipgloss.Style
	Info  lipgloss.Style
}

// DefaultStyles returns the standard styles.
func DefaultStyles() Styles {
	return Styles{
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2),
		Title: lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1),
		Label: lipgloss.NewStyle().Bold(true).Width(labelWidth),
		Value: lipgloss.NewStyle().Foreground(colorMuted),
		Error: lipgloss.NewStyle().Foreground(colorError),
		Info:  lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
	}
}

// PlainStyles renders without colour or borders, for pipes and tests.
func PlainStyles() Styles {
	return Styles{
		Card:  lipgloss.NewStyle(),
		Title: lipgloss.NewStyle().MarginBottom(1),
		Label: lipgloss.NewStyle().Width(labelWidth),
		Value: lipgloss.NewStyle(),
		Error: lipgloss.NewStyle(),
		Info:  lipgloss.NewStyle(),
	}
}
