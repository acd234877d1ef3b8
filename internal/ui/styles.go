// Package ui renders the application's pages and prompts in the terminal.
package ui

import "github.com/charmbracelet/lipgloss"

// Styles contains the lipgloss styles shared by pages and the layout.
type Styles struct {
	Brand   lipgloss.Style
	User    lipgloss.Style
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Card    lipgloss.Style
	Header  lipgloss.Style
}

// Theme names accepted by ThemeStyles.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ValidTheme reports whether name is a known theme.
func ValidTheme(name string) bool {
	return name == ThemeDark || name == ThemeLight
}

// ThemeStyles returns the styles for name. Unknown names get the default
// (dark) styles.
func ThemeStyles(name string) Styles {
	if name != ThemeLight {
		return DefaultStyles()
	}

	s := DefaultStyles()
	s.Brand = s.Brand.Foreground(lipgloss.Color("54"))  // Dark purple
	s.User = s.User.Foreground(lipgloss.Color("24"))    // Dark cyan
	s.Muted = s.Muted.Foreground(lipgloss.Color("238")) // Dark gray
	s.Success = s.Success.Foreground(lipgloss.Color("28"))
	s.Card = s.Card.BorderForeground(lipgloss.Color("238"))
	s.Header = s.Header.BorderForeground(lipgloss.Color("238"))
	return s
}

// DefaultStyles returns the default lipgloss styles.
func DefaultStyles() Styles {
	return Styles{
		Brand: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")), // Purple
		User: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")), // Cyan
		Title: lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 2).
			Width(26),
		Header: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("241")),
	}
}
