package diff

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

var (
	delLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	addLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
	delChar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).Underline(true)
	addChar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"}).Underline(true)
	faint   = lipgloss.NewStyle().Faint(true)
	plain   = lipgloss.NewStyle()
)

// Lines compares two traces line by line. It returns "" when they match,
// otherwise a unified listing with "-" for expected and "+" for actual lines.
// A changed line that pairs with exactly one replacement also gets
// character-level highlights.
func Lines(expected, actual []string, noColor bool) string {
	before := strings.Join(expected, "\n")
	after := strings.Join(actual, "\n")
	if before == after {
		return ""
	}
	st := styles{del: delLine, add: addLine, delChar: delChar, addChar: addChar, same: faint}
	if noColor {
		st = styles{del: plain, add: plain, delChar: plain, addChar: plain, same: plain}
	}

	d := dmp.New()
	a, b, lines := d.DiffLinesToChars(before+"\n", after+"\n")
	diffs := d.DiffCharsToLines(d.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for i := 0; i < len(diffs); i++ {
		df := diffs[i]
		switch df.Type {
		case dmp.DiffEqual:
			for _, l := range split(df.Text) {
				sb.WriteString("  " + st.same.Render(l) + "\n")
			}
		case dmp.DiffDelete:
			del := split(df.Text)
			if i+1 < len(diffs) && diffs[i+1].Type == dmp.DiffInsert {
				ins := split(diffs[i+1].Text)
				if len(del) == 1 && len(ins) == 1 {
					st.pair(&sb, d, del[0], ins[0])
					i++
					continue
				}
			}
			for _, l := range del {
				sb.WriteString(st.del.Render("- "+l) + "\n")
			}
		case dmp.DiffInsert:
			for _, l := range split(df.Text) {
				sb.WriteString(st.add.Render("+ "+l) + "\n")
			}
		}
	}
	return sb.String()
}

type styles struct {
	del, add, delChar, addChar, same lipgloss.Style
}

// pair renders one replaced line with the changed characters underlined.
func (st styles) pair(sb *strings.Builder, d *dmp.DiffMatchPatch, before, after string) {
	diffs := d.DiffMain(before, after, false)
	diffs = d.DiffCleanupSemantic(diffs)
	sb.WriteString(st.del.Render("- "))
	for _, df := range diffs {
		switch df.Type {
		case dmp.DiffDelete:
			sb.WriteString(st.delChar.Render(df.Text))
		case dmp.DiffEqual:
			sb.WriteString(st.del.Render(df.Text))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(st.add.Render("+ "))
	for _, df := range diffs {
		switch df.Type {
		case dmp.DiffInsert:
			sb.WriteString(st.addChar.Render(df.Text))
		case dmp.DiffEqual:
			sb.WriteString(st.add.Render(df.Text))
		}
	}
	sb.WriteString("\n")
}

func split(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
