package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mandalnilabja/authdash/internal/session"
)

// AppName is shown in the page header.
const AppName = "authdash"

// Layout is the page chrome: a header with the application name and the
// signed-in user, followed by the page.
type Layout struct {
	Width  int
	styles Styles
}

// NewLayout creates a layout at the given terminal width (80 when zero).
func NewLayout(width int) *Layout {
	if width <= 0 {
		width = 80
	}
	return &Layout{Width: width, styles: DefaultStyles()}
}

// SetTheme switches the chrome to the named theme.
func (l *Layout) SetTheme(name string) {
	l.styles = ThemeStyles(name)
}

// Wrap renders body under the header. sess may be nil.
func (l *Layout) Wrap(sess *session.Session, title, body string) string {
	var b strings.Builder
	b.WriteString(l.header(sess))
	b.WriteString("\n\n")
	if title != "" {
		b.WriteString(l.styles.Title.Render(title))
		b.WriteString("\n")
	}
	b.WriteString(strings.TrimRight(body, "\n"))
	b.WriteString("\n")
	return b.String()
}

func (l *Layout) header(sess *session.Session) string {
	left := l.styles.Brand.Render(AppName)

	right := ""
	if sess != nil {
		right = l.styles.User.Render(sess.DisplayName)
		if sess.Email != "" {
			right += " " + l.styles.Muted.Render("<"+sess.Email+">")
		}
	}

	gap := l.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + right
	return l.styles.Header.Width(l.Width).Render(line)
}
