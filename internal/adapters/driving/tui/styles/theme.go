// Package styles holds the chat TUI palette and lipgloss styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme is the palette. Each colour adapts to light and dark terminals.
type Theme struct {
	Accent     lipgloss.AdaptiveColor // title and the user's turns
	Agent      lipgloss.AdaptiveColor // answers
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor // hints and the status line
	Error      lipgloss.AdaptiveColor
	Border     lipgloss.AdaptiveColor
	Bar        lipgloss.AdaptiveColor // status bar background
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:     lipgloss.AdaptiveColor{Light: "#5B21B6", Dark: "#A78BFA"},
		Agent:      lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#22D3EE"},
		Foreground: lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E5E7EB"},
		Muted:      lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},
		Error:      lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"},
		Border:     lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"},
		Bar:        lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#111827"},
	}
}

// Styles are the rendered styles derived from a Theme.
type Styles struct {
	theme *Theme

	Title      lipgloss.Style
	User       lipgloss.Style
	Agent      lipgloss.Style
	Text       lipgloss.Style
	Muted      lipgloss.Style
	Error      lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
}

// NewStyles derives styles from theme, or from DefaultTheme when nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	label := lipgloss.NewStyle().Bold(true)

	return &Styles{
		theme:      theme,
		Title:      label.Foreground(theme.Accent).MarginBottom(1),
		User:       label.Foreground(theme.Accent),
		Agent:      label.Foreground(theme.Agent),
		Text:       lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:      lipgloss.NewStyle().Foreground(theme.Muted),
		Error:      lipgloss.NewStyle().Foreground(theme.Error).Bold(true),
		InputField: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border).Padding(0, 1),
		StatusBar:  lipgloss.NewStyle().Foreground(theme.Muted).Background(theme.Bar).Padding(0, 1),
	}
}

// DefaultStyles is NewStyles(DefaultTheme()).
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}
