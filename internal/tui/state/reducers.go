package state

import "fmt"

// ToggleHelp flips the help overlay and returns a new state copy.
func ToggleHelp(s UIState) UIState {
	s.ShowHelp = !s.ShowHelp
	return s
}

// Resize updates the terminal size and sets a notice when there is no room
// left for content.
func Resize(s UIState, width, height int) UIState {
	s.Width = width
	s.Height = height
	if height <= s.Chrome() {
		s.Notice = "Terminal too short"
	} else if s.Notice == "Terminal too short" {
		s.Notice = ""
	}
	return s
}

// PhaseChanged records a driver transition.
func PhaseChanged(s UIState, name, from, to string) UIState {
	s.Active = name
	s.Phase = to
	s.Notice = fmt.Sprintf("%s: %s → %s", name, from, to)
	return s
}

// Notify sets a transient notice.
func Notify(s UIState, msg string) UIState {
	s.Notice = msg
	return s
}

// ClearNotice drops the current notice.
func ClearNotice(s UIState) UIState {
	s.Notice = ""
	return s
}
