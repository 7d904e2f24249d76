package tagchips

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"headerscroll/internal/scroll/header"
	"headerscroll/internal/tui/util"
)

// Chip summarises one container's header.
type Chip struct {
	Name      string
	Height    float64
	MaxHeight float64
	State     header.State
	Pinned    bool
}

// View renders one chip per container in a stable order using colored chips
// when possible and ASCII fallbacks when color is disabled.
func View(chips []Chip, noColor bool) string {
	if len(chips) == 0 {
		return ""
	}
	noColor = util.NoColor(noColor)
	p := util.DefaultPalette()
	parts := make([]string, 0, len(chips))
	for _, c := range chips {
		parts = append(parts, renderChip(c, p, noColor))
	}
	return strings.Join(parts, " ")
}

func renderChip(c Chip, p util.Palette, noColor bool) string {
	label := chipLabel(c)
	if noColor {
		return fmt.Sprintf("[%s]", label)
	}
	return chipStyle(c, p).Render(label)
}

func chipLabel(c Chip) string {
	label := fmt.Sprintf("%s %.1f/%.0f %s", c.Name, c.Height, c.MaxHeight, c.State)
	if c.Pinned {
		label += " pinned"
	}
	return label
}

func chipStyle(c Chip, p util.Palette) lipgloss.Style {
	bg, fg := p.State(c.State, c.Pinned)
	return lipgloss.NewStyle().Padding(0, 1).Bold(true).Background(bg).Foreground(fg)
}
