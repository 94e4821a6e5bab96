package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the progress view
type KeyMap struct {
	// Progress
	Back    key.Binding
	Forward key.Binding
	Animate key.Binding
	Random  key.Binding
	Reset   key.Binding

	// UI
	Help      key.Binding
	Log       key.Binding
	Quit      key.Binding
	Interrupt key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Back: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "back 5%"),
		),
		Forward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "forward 5%"),
		),
		Animate: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "animate to 100%"),
		),
		Random: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "animate to random"),
		),
		Reset: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "reset"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Log: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "event log"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "interrupt"),
		),
	}
}

// ShortHelp returns a short help string
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Forward, k.Animate, k.Help, k.Quit}
}

// FullHelp returns the full help string
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Back, k.Forward, k.Reset},
		{k.Animate, k.Random},
		{k.Help, k.Log, k.Quit},
	}
}
