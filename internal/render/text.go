package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/clive/milestones/internal/milestone"
)

// Marker glyphs for the terminal renderer.
const (
	GlyphPending = "○"
	GlyphActive  = "◉"
	GlyphDone    = "✔"
	glyphTrack   = "─"
	glyphFill    = "━"
)

// TextStyles are the lipgloss styles of the terminal renderer.
type TextStyles struct {
	Track    lipgloss.Style
	Fill     lipgloss.Style
	Pending  lipgloss.Style
	Active   lipgloss.Style
	Done     lipgloss.Style
	Label    lipgloss.Style
	Emphasis lipgloss.Style
}

// DefaultTextStyles derives terminal styles from a theme. Alpha channels
// are dropped; terminals have no transparency.
func DefaultTextStyles(t Theme) TextStyles {
	t = t.Merge(DefaultTheme())
	fg := func(hex string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(rgbHex(mustColor(hex))))
	}
	return TextStyles{
		Track:    fg(t.Track),
		Fill:     fg(t.Progress),
		Pending:  fg(t.Text),
		Active:   fg(t.Active).Bold(true),
		Done:     fg(t.Completed).Bold(true),
		Label:    fg(t.Text),
		Emphasis: fg(t.Emphasis).Bold(true),
	}
}

// TextViewport is the cell viewport the terminal renderer expects: one cell
// per unit, markers half a cell wide so centers land mid-cell.
func TextViewport(width int) milestone.Viewport {
	return milestone.Viewport{
		Width:             float64(width),
		Height:            2,
		MarkerRadius:      0.5,
		SmallMarkerRadius: 0.5,
	}
}

// Text renders frame as two lines, the track with markers and the labels.
// The frame must have been computed for TextViewport(width) with a cell
// measurer. An empty frame renders as an empty string.
func Text(frame milestone.Frame, width int, st TextStyles) string {
	if frame.Empty() || width <= 0 {
		return ""
	}
	return textBar(frame, width, st) + "\n" + textLabels(frame, width, st)
}

type cellKind int

const (
	cellBlank cellKind = iota
	cellTrack
	cellFill
	cellMarker
)

func textBar(frame milestone.Frame, width int, st TextStyles) string {
	kinds := make([]cellKind, width)
	markers := make(map[int]milestone.Item, len(frame.Items))

	l := frame.Layout
	for col := range kinds {
		x := float64(col) + 0.5
		switch {
		case x < l.TrackLeft || x > l.TrackRight:
			kinds[col] = cellBlank
		case x <= frame.FilledRight:
			kinds[col] = cellFill
		default:
			kinds[col] = cellTrack
		}
	}
	for _, it := range frame.Items {
		col := cellOf(it.CenterX, width)
		// Later items win a shared cell; they are further along the track.
		markers[col] = it
		kinds[col] = cellMarker
	}

	var b strings.Builder
	for col := 0; col < width; {
		kind := kinds[col]
		if kind == cellMarker {
			it := markers[col]
			b.WriteString(markerStyle(it.State, st).Render(markerGlyph(it.State)))
			col++
			continue
		}
		run := col
		for run < width && kinds[run] == kind {
			run++
		}
		n := run - col
		switch kind {
		case cellFill:
			b.WriteString(st.Fill.Render(strings.Repeat(glyphFill, n)))
		case cellTrack:
			b.WriteString(st.Track.Render(strings.Repeat(glyphTrack, n)))
		default:
			b.WriteString(strings.Repeat(" ", n))
		}
		col = run
	}
	return b.String()
}

func textLabels(frame milestone.Frame, width int, st TextStyles) string {
	var b strings.Builder
	cursor := 0
	for _, it := range frame.Items {
		label := it.Label
		w := lipgloss.Width(label)
		if w == 0 {
			continue
		}
		start := int(math.Round(it.CenterX - float64(w)/2))
		if start < cursor {
			start = cursor
		}
		if start >= width {
			break
		}
		if start+w > width {
			label = truncateCells(label, width-start)
			w = lipgloss.Width(label)
			if w == 0 {
				break
			}
		}

		b.WriteString(strings.Repeat(" ", start-cursor))
		style := st.Label
		if it.Emphasized {
			style = st.Emphasis
		}
		b.WriteString(style.Render(label))
		// keep one blank cell between neighbouring labels
		cursor = start + w + 1
		if cursor > width {
			break
		}
		b.WriteString(" ")
	}
	return strings.TrimRight(b.String(), " ")
}

func cellOf(x float64, width int) int {
	col := int(math.Floor(x))
	if col < 0 {
		return 0
	}
	if col >= width {
		return width - 1
	}
	return col
}

func markerGlyph(s milestone.State) string {
	switch s {
	case milestone.Done:
		return GlyphDone
	case milestone.Active:
		return GlyphActive
	default:
		return GlyphPending
	}
}

func markerStyle(s milestone.State, st TextStyles) lipgloss.Style {
	switch s {
	case milestone.Done:
		return st.Done
	case milestone.Active:
		return st.Active
	default:
		return st.Pending
	}
}

// truncateCells cuts s down to at most n cells.
func truncateCells(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > n {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}
