package helpoverlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap lists every binding the demo understands.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Switch   key.Binding
	Stop     key.Binding
	Copy     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap is the demo's key layout.
var DefaultKeyMap = KeyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", " ", "f"), key.WithHelp("pgdn", "page down")),
	Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "expand all")),
	Switch:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch list")),
	Stop:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop animation")),
	Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy header chips")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Switch, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top},
		{k.Switch, k.Stop, k.Copy},
		{k.Help, k.Quit},
	}
}

type HelpOverlay struct {
	model help.Model
	keys  KeyMap
}

func NewHelpOverlay(keys KeyMap) HelpOverlay {
	return HelpOverlay{model: help.New(), keys: keys}
}

// Short is the one-line hint shown under the content.
func (h HelpOverlay) Short(width int) string {
	h.model.Width = width
	return h.model.ShortHelpView(h.keys.ShortHelp())
}

// View returns grouped keys help plus the mouse gestures.
func (h HelpOverlay) View(width int) string {
	h.model.Width = width
	var b strings.Builder
	b.WriteString("Help\n\n")
	b.WriteString(h.model.FullHelpView(h.keys.FullHelp()))
	b.WriteString("\n\nMouse:\n")
	for _, line := range []string{"drag: collapse or expand headers", "release while moving: fling", "wheel: scroll"} {
		fmt.Fprintf(&b, "  %s\n", line)
	}
	return b.String()
}
