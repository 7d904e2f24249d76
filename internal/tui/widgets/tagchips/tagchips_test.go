package tagchips

import (
	"testing"

	"headerscroll/internal/scroll/header"
)

func TestViewASCII(t *testing.T) {
	chips := []Chip{
		{Name: "Mail", Height: 2.5, MaxHeight: 5, State: header.InProgress},
		{Name: "Archive", Height: 3, MaxHeight: 3, State: header.Visible, Pinned: true},
	}
	want := "[Mail 2.5/5 inProgress] [Archive 3.0/3 visible pinned]"
	if got := View(chips, true); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestViewEmpty(t *testing.T) {
	if got := View(nil, true); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
