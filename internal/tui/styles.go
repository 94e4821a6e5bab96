package tui

import "github.com/charmbracelet/lipgloss"

// One Dark Pro color palette
var (
	ColorFgPrimary = lipgloss.Color("#ABB2BF")
	ColorFgMuted   = lipgloss.Color("#636B78")
	ColorFgComment = lipgloss.Color("#5C6370")

	ColorRed    = lipgloss.Color("#E06C75")
	ColorGreen  = lipgloss.Color("#98C379")
	ColorYellow = lipgloss.Color("#E5C07B")
	ColorBlue   = lipgloss.Color("#61AFEF")
	ColorOrange = lipgloss.Color("#D19A66")

	ColorBorder = lipgloss.Color("#3F4451")
)

// Component styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorOrange).
			Bold(true).
			PaddingLeft(1)

	// Track panel around the rendered bar
	TrackStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(1).
			PaddingRight(1)

	StatusAnimatingStyle = lipgloss.NewStyle().
				Foreground(ColorGreen).
				Bold(true)

	StatusIdleStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted)

	HelpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	HelpTitleStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment)
)
