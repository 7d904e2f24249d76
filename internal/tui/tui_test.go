package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"headerscroll/internal/scroll/driver"
	"headerscroll/internal/scroll/header"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func setup(t *testing.T) *model {
	t.Helper()
	m := newModel(Options{NoColor: true})
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m.View()
	return m
}

func TestKeysCollapseOuterHeaderFirst(t *testing.T) {
	m := setup(t)
	m.Update(runes("j"))
	m.Update(runes("j"))
	if m.root.HeaderHeight() != 3 || m.root.Leaf().HeaderState() != header.Visible {
		t.Fatalf("expected outer header to shrink first, got %v", m.root.HeaderHeight())
	}
	m.Update(runes("k"))
	if m.root.HeaderHeight() != 4 {
		t.Fatalf("expected outer header to grow back, got %v", m.root.HeaderHeight())
	}
}

func TestTabSwitchesList(t *testing.T) {
	m := setup(t)
	if m.root.Leaf().Name() != "Inbox" {
		t.Fatalf("expected Inbox first")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.root.Leaf().Name() != "Archive" || !strings.Contains(m.ui.Notice, "Archive") {
		t.Fatalf("expected Archive after tab, notice %q", m.ui.Notice)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.root.Leaf().Name() != "Inbox" {
		t.Fatalf("expected tab to wrap around")
	}
}

func TestMouseDragReportsPhase(t *testing.T) {
	m := setup(t)
	m.Update(tea.MouseMsg{X: 5, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.ui.Phase != driver.Dragging.String() || m.ui.Active != "Inbox" {
		t.Fatalf("expected Inbox dragging, got %q %q", m.ui.Active, m.ui.Phase)
	}
	m.Update(tea.MouseMsg{X: 5, Y: 8, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if m.root.HeaderHeight() != 3 {
		t.Fatalf("expected drag of 2 rows to shrink outer header, got %v", m.root.HeaderHeight())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.root.Leaf().Phase() != driver.Idle || m.ui.Phase != driver.Idle.String() {
		t.Fatalf("expected esc to stop the drag")
	}
}

func TestHelpToggleAndView(t *testing.T) {
	m := setup(t)
	out := m.View()
	if !strings.Contains(out, "headerscroll") || !strings.Contains(out, "[idle]") {
		t.Fatalf("expected banner and status line, got:\n%s", out)
	}
	m.Update(runes("?"))
	if out := m.View(); !strings.Contains(out, "switch list") {
		t.Fatalf("expected help overlay, got:\n%s", out)
	}
}

func TestTopExpandsEverything(t *testing.T) {
	m := setup(t)
	for i := 0; i < 12; i++ {
		m.Update(runes("j"))
		m.View()
	}
	m.Update(runes("g"))
	for _, c := range m.root.Chain() {
		if c.HeaderState() != header.Visible {
			t.Fatalf("%s: expected visible header, got %v", c.Name(), c.HeaderState())
		}
	}
	if m.offset() != 0 {
		t.Fatalf("expected list at top, got %v", m.offset())
	}
}
