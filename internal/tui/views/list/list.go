// Package list is a scrollable column of rows backed by a bubbles viewport.
package list

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

var (
	rowStyle    = lipgloss.NewStyle().PaddingLeft(2)
	altRowStyle = lipgloss.NewStyle().PaddingLeft(2).Faint(true)
)

// List keeps a fractional scroll offset and renders the nearest whole row.
type List struct {
	vp     viewport.Model
	lines  []string
	offset float64
	height int
}

// New builds a list with n numbered rows under title.
func New(title string, n int) *List {
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		style := rowStyle
		if i%2 == 1 {
			style = altRowStyle
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s · row %d", title, i+1)))
	}
	return FromLines(lines)
}

// FromLines builds a list over pre-rendered lines.
func FromLines(lines []string) *List {
	l := &List{vp: viewport.New(0, 0), lines: lines}
	l.vp.SetContent(strings.Join(lines, "\n"))
	return l
}

// SetHeight sets the visible row count, clamping the offset if needed.
func (l *List) SetHeight(h int) {
	if h < 0 {
		h = 0
	}
	l.height = h
	if limit := l.maxOffset(); l.offset > limit {
		l.offset = limit
	}
}

func (l *List) maxOffset() float64 {
	return math.Max(0, float64(len(l.lines)-l.height))
}

// ScrollBy moves the offset and returns what was left over at an edge.
func (l *List) ScrollBy(delta float64) float64 {
	next := l.offset + delta
	clamped := math.Min(math.Max(next, 0), l.maxOffset())
	l.offset = clamped
	return next - clamped
}

func (l *List) ScrollToTop() { l.offset = 0 }

func (l *List) AtTop() bool { return l.offset <= 0 }

// AtBottom reports whether the last row is visible.
func (l *List) AtBottom() bool { return l.offset >= l.maxOffset() }

// Offset is the current fractional scroll position in rows.
func (l *List) Offset() float64 { return l.offset }

func (l *List) Len() int { return len(l.lines) }

// View renders the rows visible at the current offset.
func (l *List) View(width, height int) string {
	l.SetHeight(height)
	l.vp.Width = width
	l.vp.Height = height
	l.vp.SetYOffset(int(math.Round(l.offset)))
	return l.vp.View()
}
