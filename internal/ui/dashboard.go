package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mandalnilabja/authdash/internal/session"
)

// HourlyBucket is one point of the message activity series.
type HourlyBucket struct {
	Start     time.Time
	Sent      int
	Received  int
	Delivered int
	Read      int
}

// HourlyBuckets returns 24 empty buckets, one per hour, starting at the
// current hour of the previous day.
func HourlyBuckets(now time.Time) []HourlyBucket {
	start := time.Date(now.Year(), now.Month(), now.Day()-1, now.Hour(), 0, 0, 0, now.Location())
	buckets := make([]HourlyBucket, 24)
	for i := range buckets {
		buckets[i] = HourlyBucket{Start: start.Add(time.Duration(i) * time.Hour)}
	}
	return buckets
}

// StatusCard is one of the dashboard counters.
type StatusCard struct {
	Label string
	Value int
}

// DashboardPage is the protected landing page.
type DashboardPage struct {
	Now    func() time.Time
	styles Styles
}

// NewDashboardPage creates the dashboard using the wall clock.
func NewDashboardPage() *DashboardPage {
	return &DashboardPage{Now: time.Now, styles: DefaultStyles()}
}

// Title is shown in the page chrome.
func (p *DashboardPage) Title() string { return "Dashboard" }

// Cards returns the status counters. The API does not report them yet.
func (p *DashboardPage) Cards() []StatusCard {
	return []StatusCard{
		{Label: "Connected instances"},
		{Label: "Messages sent"},
		{Label: "Messages received"},
	}
}

// Render prints the status cards followed by the hourly activity table.
func (p *DashboardPage) Render(w io.Writer, _ *session.Session) error {
	cards := p.Cards()
	boxes := make([]string, len(cards))
	for i, c := range cards {
		boxes[i] = p.styles.Card.Render(
			p.styles.Title.Render(fmt.Sprintf("%d", c.Value)) + "\n" + p.styles.Muted.Render(c.Label))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%-17s %8s %9s %10s %5s\n", "Time", "Sent", "Received", "Delivered", "Read")
	for _, bucket := range HourlyBuckets(p.Now()) {
		fmt.Fprintf(&b, "%-17s %8d %9d %10d %5d\n",
			bucket.Start.Format("02/01/2006 15:04"),
			bucket.Sent, bucket.Received, bucket.Delivered, bucket.Read)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
