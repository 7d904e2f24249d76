package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"headerscroll/internal/config"
	"headerscroll/internal/scroll/container"
	"headerscroll/internal/scroll/driver"
	"headerscroll/internal/tui/state"
	"headerscroll/internal/tui/widgets/helpoverlay"
	"headerscroll/internal/tui/widgets/statusbar"
	"headerscroll/internal/tui/widgets/tagchips"
)

// noticeFade is how long a transient notice stays in the status bar.
const noticeFade = 2 * time.Second

type clearNoticeMsg struct{ seq int }

// Options configures the demo program.
type Options struct {
	Layout  *config.Layout
	NoColor bool
	Logf    func(format string, args ...any)
}

// Run shows the container tree described by the layout full screen until
// the user quits.
func Run(opts Options) error {
	m := newModel(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// ===== Model =====

type phaseEvent struct {
	name     string
	from, to driver.Phase
}

type model struct {
	root   *container.Container
	ui     state.UIState
	keys   helpoverlay.KeyMap
	help   helpoverlay.HelpOverlay
	status statusbar.StatusBar

	// phase changes reported synchronously by drivers during Update
	events    *[]phaseEvent
	noticeSeq int
}

func newModel(opts Options) *model {
	layout := opts.Layout
	if layout == nil {
		layout = config.Default()
	}
	events := &[]phaseEvent{}
	root := layout.Build(config.BuildOptions{
		NoColor: opts.NoColor,
		Logf:    opts.Logf,
		OnPhase: func(name string, from, to driver.Phase) {
			*events = append(*events, phaseEvent{name: name, from: from, to: to})
		},
	})
	return &model{
		root:   root,
		ui:     state.UIState{Width: 80, Height: 24, NoColor: opts.NoColor},
		keys:   helpoverlay.DefaultKeyMap,
		help:   helpoverlay.NewHelpOverlay(helpoverlay.DefaultKeyMap),
		status: statusbar.NewStatusBar(),
		events: events,
	}
}

func (m *model) Init() tea.Cmd { return nil }

// Update handles keys, mouse gestures and animation frames.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui = state.Resize(m.ui, msg.Width, msg.Height)
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tea.MouseMsg, driver.FrameMsg:
		cmd = m.root.Update(msg)
	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.ui = state.ClearNotice(m.ui)
		}
	}
	m.drainEvents()
	return m, cmd
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	page := float64(m.treeHeight() / 2)
	if page < 1 {
		page = 1
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.ui = state.ToggleHelp(m.ui)
	case key.Matches(msg, m.keys.Up):
		m.root.ScrollInput(-1)
	case key.Matches(msg, m.keys.Down):
		m.root.ScrollInput(1)
	case key.Matches(msg, m.keys.PageUp):
		m.root.ScrollInput(-page)
	case key.Matches(msg, m.keys.PageDown):
		m.root.ScrollInput(page)
	case key.Matches(msg, m.keys.Top):
		m.root.Cancel()
		for _, c := range m.root.Chain() {
			c.SettleTo(c.MaxHeaderHeight())
			c.ScrollToTop()
		}
	case key.Matches(msg, m.keys.Switch):
		if sw := m.root.Switcher(); sw != nil {
			sw.Select((sw.Active() + 1) % sw.Len())
			return m.notify("Showing " + sw.Leaf().Name())
		}
	case key.Matches(msg, m.keys.Stop):
		m.root.Cancel()
	case key.Matches(msg, m.keys.Copy):
		if err := clipboard.WriteAll(m.chips(true)); err != nil {
			return m.notify(fmt.Sprintf("Copy failed: %v", err))
		}
		return m.notify("Copied")
	}
	return nil
}

func (m *model) notify(text string) tea.Cmd {
	m.noticeSeq++
	m.ui = state.Notify(m.ui, text)
	seq := m.noticeSeq
	return tea.Tick(noticeFade, func(time.Time) tea.Msg { return clearNoticeMsg{seq: seq} })
}

func (m *model) drainEvents() {
	for _, e := range *m.events {
		m.ui = state.PhaseChanged(m.ui, e.name, e.from.String(), e.to.String())
	}
	*m.events = (*m.events)[:0]
}

func (m *model) treeHeight() int {
	return max(m.ui.Height-m.ui.Chrome(), 0)
}

// ===== Views =====

var frameStyle = lipgloss.NewStyle().Faint(true)

func (m *model) View() string {
	if m.ui.ShowHelp {
		return m.help.View(m.ui.Width)
	}
	var b strings.Builder
	if h := m.treeHeight(); h > 0 {
		b.WriteString(m.root.View(m.ui.Width, h))
		b.WriteString("\n")
	}
	b.WriteString(m.chips(m.ui.NoColor) + "\n")
	b.WriteString(frameStyle.Render(m.status.View(m.ui, m.offset())) + "\n")
	b.WriteString(m.help.Short(m.ui.Width))
	return b.String()
}

func (m *model) chips(noColor bool) string {
	chain := m.root.Chain()
	chips := make([]tagchips.Chip, 0, len(chain))
	for _, c := range chain {
		chips = append(chips, tagchips.Chip{
			Name:      c.Name(),
			Height:    c.HeaderHeight(),
			MaxHeight: c.MaxHeaderHeight(),
			State:     c.HeaderState(),
			Pinned:    !c.ShouldCollapse(),
		})
	}
	return tagchips.View(chips, noColor)
}

func (m *model) offset() float64 {
	if o, ok := m.root.Leaf().Content().(interface{ Offset() float64 }); ok {
		return o.Offset()
	}
	return 0
}
