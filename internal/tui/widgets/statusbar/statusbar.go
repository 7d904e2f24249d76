package statusbar

import (
	"fmt"
	"strings"

	"headerscroll/internal/tui/state"
)

type StatusBar struct{}

func NewStatusBar() StatusBar { return StatusBar{} }

// View composes a concise status line reflecting the interaction state and
// the leaf content offset.
func (StatusBar) View(s state.UIState, offset float64) string {
	phase := s.Phase
	if phase == "" {
		phase = "idle"
	}
	parts := []string{"[" + phase + "]"}
	if s.Active != "" {
		parts = append(parts, "Active: "+s.Active)
	}
	parts = append(parts, fmt.Sprintf("Row: %.1f", offset), fmt.Sprintf("W:%d H:%d", s.Width, s.Height))
	if s.Notice != "" {
		parts = append(parts, s.Notice)
	}
	return strings.Join(parts, "  ")
}
