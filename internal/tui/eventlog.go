package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// EventLog keeps the most recent view events (animations, reloads, errors)
// for the toggleable log panel.
type EventLog struct {
	visible bool
	lines   []string
	buffer  int
	now     func() time.Time
}

// NewEventLog creates an event log keeping the last buffer lines.
func NewEventLog(buffer int, now func() time.Time) EventLog {
	if now == nil {
		now = time.Now
	}
	return EventLog{buffer: buffer, now: now}
}

// Toggle shows or hides the panel.
func (l *EventLog) Toggle() {
	l.visible = !l.visible
}

// Visible reports whether the panel is shown.
func (l *EventLog) Visible() bool {
	return l.visible
}

const errorKind = "error"

// Add records an event. Events are kept while the panel is hidden.
func (l *EventLog) Add(kind, details string) {
	line := l.now().Format("15:04:05.000") + " [" + kind + "]"
	if details != "" {
		line += " " + details
	}
	l.lines = append(l.lines, line)
	if len(l.lines) > l.buffer {
		l.lines = l.lines[len(l.lines)-l.buffer:]
	}
}

// Lines returns the recorded lines, oldest first.
func (l *EventLog) Lines() []string {
	return l.lines
}

// Render renders the panel with the newest lines that fit.
func (l *EventLog) Render(width, height int) string {
	if !l.visible {
		return ""
	}

	title := lipgloss.NewStyle().
		Foreground(ColorYellow).
		Bold(true).
		Render("EVENTS")

	// title line plus borders
	contentHeight := max(height-3, 1)
	start := max(len(l.lines)-contentHeight, 0)

	maxLen := max(width-4, 10)
	lines := make([]string, 0, contentHeight)
	for _, line := range l.lines[start:] {
		if lipgloss.Width(line) > maxLen {
			r := []rune(line)
			if n := maxLen - 3; len(r) > n {
				r = r[:n]
			}
			line = string(r) + "..."
		}
		lines = append(lines, lineStyle(line).Render(line))
	}
	for len(lines) < contentHeight {
		lines = append(lines, "")
	}

	return lipgloss.NewStyle().
		Width(width-2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorYellow).
		Padding(0, 1).
		Render(title + "\n" + strings.Join(lines, "\n"))
}

// lineStyle highlights error events.
func lineStyle(line string) lipgloss.Style {
	if strings.Contains(line, " ["+errorKind+"]") {
		return ErrorStyle
	}
	return DimStyle
}
