// Package tui is the terminal host of a milestone progress view.
package tui

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/clive/milestones/internal/config"
	"github.com/clive/milestones/internal/measure"
	"github.com/clive/milestones/internal/milestone"
	"github.com/clive/milestones/internal/render"
	"github.com/clive/milestones/internal/view"
)

// frameInterval is the animation frame clock, about 60 frames a second.
const frameInterval = 16 * time.Millisecond

// step is how far the arrow keys move progress.
const step = 0.05

// frameTickMsg asks the model to advance the animation session it names.
// Ticks for a superseded session are dropped by the view.
type frameTickMsg struct {
	session uint64
}

// boardReloadedMsg is sent after the watched board file changed.
type boardReloadedMsg struct {
	board *config.Board
	err   error
}

// Options configures a Model.
type Options struct {
	Board *config.Board
	// Watcher, if set, reloads milestones when the board file changes.
	Watcher *BoardWatcher
	// Clock drives animations. Nil uses the wall clock.
	Clock milestone.Clock
	// Rand picks targets for the random animation. Nil uses math/rand.
	Rand func() float64
}

// Model is the bubbletea model of the progress view.
type Model struct {
	view     *view.View
	board    *config.Board
	watcher  *BoardWatcher
	rand     func() float64
	keys     KeyMap
	help     help.Model
	styles   render.TextStyles
	events   EventLog
	width    int
	height   int
	ready    bool
	showHelp bool
}

// New creates the model and seeds its view from the board.
func New(opts Options) Model {
	board := opts.Board
	if board == nil {
		board = config.DefaultBoard()
	}
	clock := opts.Clock
	if clock == nil {
		clock = milestone.SystemClock{}
	}
	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.Float64
	}

	v := view.New("tui", clock)
	board.Seed(v)

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(ColorFgPrimary)
	h.Styles.ShortDesc = DimStyle
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(ColorYellow)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(ColorFgPrimary)

	m := Model{
		view:    v,
		board:   board,
		watcher: opts.Watcher,
		rand:    rnd,
		keys:    DefaultKeyMap(),
		help:    h,
		styles:  render.DefaultTextStyles(board.Theme),
		events:  NewEventLog(100, clock.Now),
	}
	m.events.Add("load", fmt.Sprintf("%d milestones", len(board.Milestones)))
	return m
}

// Init starts the board watcher loop, if any.
func (m Model) Init() tea.Cmd {
	return waitForBoardCmd(m.watcher)
}

// Update handles one message
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameTickMsg:
		if m.view.Tick(msg.session) {
			return m, frameTickCmd(msg.session)
		}
		return m, nil

	case boardReloadedMsg:
		if msg.err != nil {
			m.events.Add(errorKind, msg.err.Error())
		} else {
			m.board = msg.board
			m.styles = render.DefaultTextStyles(msg.board.Theme)
			// progress stays where the user left it
			m.view.SetMilestones(msg.board.Milestones)
			m.events.Add("reload", fmt.Sprintf("%d milestones", len(msg.board.Milestones)))
		}
		return m, waitForBoardCmd(m.watcher)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Interrupt), key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp

	case key.Matches(msg, m.keys.Log):
		m.events.Toggle()

	case key.Matches(msg, m.keys.Back):
		m.setProgress(m.view.Snapshot().Progress - step)

	case key.Matches(msg, m.keys.Forward):
		m.setProgress(m.view.Snapshot().Progress + step)

	case key.Matches(msg, m.keys.Reset):
		m.setProgress(0)

	case key.Matches(msg, m.keys.Animate):
		return m, m.animate(1)

	case key.Matches(msg, m.keys.Random):
		return m, m.animate(m.rand())
	}
	return m, nil
}

func (m *Model) setProgress(p float64) {
	snap := m.view.SetProgress(p)
	m.events.Add("progress", percent(snap.Progress))
}

// animate starts a session and schedules its first frame.
func (m *Model) animate(target float64) tea.Cmd {
	s := m.view.Animate(target, m.board.Animation.Duration())
	m.events.Add("animate", fmt.Sprintf("%s -> %s over %s", percent(s.Start), percent(s.Target), s.Duration))
	if s.Duration <= 0 {
		return nil
	}
	return frameTickCmd(s.ID)
}

func frameTickCmd(session uint64) tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameTickMsg{session: session}
	})
}

// waitForBoardCmd blocks until the board changes, then reads it. It is nil
// without a watcher.
func waitForBoardCmd(w *BoardWatcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-w.Changes(); !ok {
			return nil
		}
		b, err := config.ReadFile(w.Path())
		return boardReloadedMsg{board: b, err: err}
	}
}

// View renders the model
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.helpView()
	}

	sections := []string{m.renderHeader(), m.renderTrack(), m.renderStatusBar()}
	if m.events.Visible() {
		sections = append(sections, m.events.Render(m.width, max(m.height-12, 5)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.board.Title
	if title == "" {
		title = "Milestones"
	}
	return HeaderStyle.Width(m.width).Render(title) + "\n"
}

// renderTrack draws the bar inside the track panel. The panel takes two
// border cells and four padding cells.
func (m Model) renderTrack() string {
	inner := max(m.width-6, 1)
	frame := m.view.Frame(render.TextViewport(inner), measure.Cells{})
	body := render.Text(frame, inner, m.styles)
	if body == "" {
		body = DimStyle.Render("no milestones")
	}
	return TrackStyle.Width(m.width - 2).Render(body)
}

func (m Model) renderStatusBar() string {
	st := m.view.Status()

	var status string
	if st.Animating && st.Target != nil {
		status = StatusAnimatingStyle.Render("● " + percent(st.Snapshot.Progress) + " → " + percent(*st.Target))
	} else {
		status = StatusIdleStyle.Render("○ " + percent(st.Snapshot.Progress))
	}

	done := 0
	for _, ms := range st.Snapshot.Milestones {
		if milestone.Classify(st.Snapshot.Progress, ms) == milestone.Done {
			done++
		}
	}
	count := DimStyle.Render(fmt.Sprintf(" │ %d/%d milestones", done, len(st.Snapshot.Milestones)))

	return StatusBarStyle.Render(status + count + DimStyle.Render(" │ ") + m.help.View(m.keys))
}

func (m Model) helpView() string {
	content := HelpTitleStyle.Render("Keyboard Shortcuts") + "\n\n" +
		m.help.View(m.keys) + "\n\n" +
		DimStyle.Render("Press ? to close")

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		HelpStyle.Render(content),
	)
}

func percent(p float64) string {
	return strings.TrimSuffix(fmt.Sprintf("%.1f", p*100), ".0") + "%"
}
