package tui

import "github.com/charmbracelet/lipgloss"

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Theme is the single style configuration threaded explicitly into the
// form and every viewer constructor. There is no global style state.
type Theme struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Button   lipgloss.Style
	Group    lipgloss.Style
	Subtle   lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Border   lipgloss.Border
	BorderFg lipgloss.AdaptiveColor
}

// DefaultTheme returns the standard theme.
func DefaultTheme() Theme {
	return Theme{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan),
		Header: lipgloss.NewStyle().
			Foreground(colorGray),
		Label: lipgloss.NewStyle(),
		Focused: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan),
		Button: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 2).
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}),
		Group: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorYellow),
		Subtle: lipgloss.NewStyle().
			Foreground(colorGray),
		Error: lipgloss.NewStyle().
			Foreground(colorRed),
		Success: lipgloss.NewStyle().
			Foreground(colorGreen),
		Border:   lipgloss.RoundedBorder(),
		BorderFg: colorGray,
	}
}
