package util

import (
	"os"

	"github.com/charmbracelet/lipgloss"

	"headerscroll/internal/scroll/header"
)

// NoColor returns true if color output should be disabled.
func NoColor(explicit bool) bool {
	if explicit {
		return true
	}
	return os.Getenv("NO_COLOR") != ""
}

// Palette holds the banner colors and one chip background per header state.
type Palette struct {
	Title    lipgloss.Color
	Subtitle lipgloss.Color
	Rule     lipgloss.Color

	Visible    lipgloss.Color
	InProgress lipgloss.Color
	Hidden     lipgloss.Color
	Pinned     lipgloss.Color
	// Ink is the chip text color; InkDark is used on the light InProgress
	// background.
	Ink     lipgloss.Color
	InkDark lipgloss.Color
}

// DefaultPalette returns the default palette.
func DefaultPalette() Palette {
	return Palette{
		Title:    lipgloss.Color("#3D6DFF"),
		Subtitle: lipgloss.Color("#6C757D"),
		Rule:     lipgloss.Color("#5A5A5A"),

		Visible:    lipgloss.Color("#2AA876"),
		InProgress: lipgloss.Color("#F0AD4E"),
		Hidden:     lipgloss.Color("#6C757D"),
		Pinned:     lipgloss.Color("#5A5A5A"),
		Ink:        lipgloss.Color("#FFFFFF"),
		InkDark:    lipgloss.Color("#111111"),
	}
}

// State returns the background and text colors for a header chip. A pinned
// header keeps one color whatever its height.
func (p Palette) State(s header.State, pinned bool) (bg, fg lipgloss.Color) {
	switch {
	case pinned:
		return p.Pinned, p.Ink
	case s == header.Visible:
		return p.Visible, p.Ink
	case s == header.InProgress:
		return p.InProgress, p.InkDark
	default:
		return p.Hidden, p.Ink
	}
}
