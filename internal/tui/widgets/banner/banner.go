package banner

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"headerscroll/internal/tui/util"
)

// Banner is collapsible header content. It is laid out at its full height
// and clipped from the top as the header shrinks, so the rule under it is
// the last thing to go.
type Banner struct {
	title    string
	subtitle string
	rows     int
	palette  util.Palette
	noColor  bool
}

func New(title, subtitle string, rows int, p util.Palette, noColor bool) Banner {
	return Banner{title: title, subtitle: subtitle, rows: rows, palette: p, noColor: util.NoColor(noColor)}
}

// View renders the bottom height rows of the full banner.
func (b Banner) View(width, height int) string {
	if height <= 0 {
		return ""
	}
	lines := b.lines(width)
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	for len(lines) < height {
		lines = append([]string{""}, lines...)
	}
	return strings.Join(lines, "\n")
}

func (b Banner) lines(width int) []string {
	rows := b.rows
	if rows < 1 {
		rows = 1
	}
	title := b.style(b.palette.Title, true).Render(b.title)
	if rows == 1 {
		return []string{title}
	}
	rule := b.style(b.palette.Rule, false).Render(strings.Repeat("─", max(width, 1)))
	out := make([]string, rows)
	out[0] = title
	if rows > 2 && b.subtitle != "" {
		out[1] = b.style(b.palette.Subtitle, false).Render(b.subtitle)
	}
	out[rows-1] = rule
	return out
}

func (b Banner) style(fg lipgloss.Color, bold bool) lipgloss.Style {
	s := lipgloss.NewStyle().PaddingLeft(1)
	if b.noColor {
		return s
	}
	return s.Foreground(fg).Bold(bold)
}
