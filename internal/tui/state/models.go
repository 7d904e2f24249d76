package state

// UIState holds cross-widget UI state used by the status bar, chips and help.
type UIState struct {
	// Layout
	Width  int
	Height int

	ShowHelp bool
	NoColor  bool

	// Interaction as last reported by a driver
	Active string // container whose driver last changed phase
	Phase  string

	// Notices and ephemeral messages
	Notice string
}

// Chrome is the number of rows the demo reserves below the container tree.
func (s UIState) Chrome() int {
	if s.ShowHelp {
		return 0
	}
	return 3
}
