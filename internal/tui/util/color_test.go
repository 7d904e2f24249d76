package util

import (
	"testing"

	"headerscroll/internal/scroll/header"
)

func TestNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	if NoColor(false) {
		t.Fatalf("expected color by default")
	}
	if !NoColor(true) {
		t.Fatalf("expected explicit flag to disable color")
	}
	t.Setenv("NO_COLOR", "1")
	if !NoColor(false) {
		t.Fatalf("expected NO_COLOR to disable color")
	}
}

func TestPaletteState(t *testing.T) {
	p := DefaultPalette()
	cases := []struct {
		state  header.State
		pinned bool
		bg, fg string
	}{
		{header.Visible, false, string(p.Visible), string(p.Ink)},
		{header.InProgress, false, string(p.InProgress), string(p.InkDark)},
		{header.Hidden, false, string(p.Hidden), string(p.Ink)},
		{header.InProgress, true, string(p.Pinned), string(p.Ink)},
	}
	for _, tc := range cases {
		bg, fg := p.State(tc.state, tc.pinned)
		if string(bg) != tc.bg || string(fg) != tc.fg {
			t.Fatalf("%v pinned=%t: got %s on %s, want %s on %s", tc.state, tc.pinned, fg, bg, tc.fg, tc.bg)
		}
	}
	if p.Visible == p.InProgress || p.InProgress == p.Hidden {
		t.Fatalf("expected distinct state colors")
	}
}
