package driver

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FromMouse maps a left-button drag onto pan gesture phases. Wheel and other
// buttons are not gestures.
func FromMouse(msg tea.MouseMsg, at time.Time) (Gesture, bool) {
	g := Gesture{Y: float64(msg.Y), At: at}
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		g.Phase = GestureBegan
	case msg.Action == tea.MouseActionMotion && msg.Button == tea.MouseButtonLeft:
		g.Phase = GestureChanged
	case msg.Action == tea.MouseActionRelease && !tea.MouseEvent(msg).IsWheel():
		g.Phase = GestureEnded
	default:
		return Gesture{}, false
	}
	return g, true
}

// WheelDelta converts a wheel notch into a scroll delta of step rows.
// Wheel-down moves content up, which collapses the header.
func WheelDelta(msg tea.MouseMsg, step float64) (float64, bool) {
	if msg.Action != tea.MouseActionPress {
		return 0, false
	}
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		return step, true
	case tea.MouseButtonWheelUp:
		return -step, true
	default:
		return 0, false
	}
}
