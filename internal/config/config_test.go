package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"headerscroll/internal/scroll/header"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default layout invalid: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := Save(path, Default()); err != nil {
		t.Fatalf("save: %v", err)
	}
	l, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(l.Root.Children) != 2 || l.Root.Children[1].Collapses() {
		t.Fatalf("unexpected layout after reload: %+v", l.Root)
	}
}

func TestValidateReportsPath(t *testing.T) {
	cases := []struct {
		name string
		json string
		want string
	}{
		{"rate", `{"deceleration":{"rate":1.5},"root":{"title":"a"}}`, "deceleration.rate"},
		{"threshold", `{"deceleration":{"stopThreshold":-1},"root":{"title":"a"}}`, "deceleration.stopThreshold"},
		{"title", `{"root":{"title":""}}`, "root.title"},
		{"height", `{"root":{"title":"a","children":[{"title":"b","maxHeaderHeight":-2}]}}`, "root.children[0].maxHeaderHeight"},
		{"exclusive", `{"root":{"title":"a","rows":3,"children":[{"title":"b"}]}}`, "mutually exclusive"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.json))
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in %q", tc.want, err.Error())
			}
		})
	}
}

func TestParseRejectsBadJSON(t *testing.T) {
	if _, err := Parse([]byte("{")); err == nil || errors.Is(err, ErrInvalid) {
		t.Fatalf("expected a JSON error, got %v", err)
	}
}

func TestBuildDefaultTree(t *testing.T) {
	root := Default().Build(BuildOptions{NoColor: true})
	chain := root.Chain()
	if len(chain) != 2 || chain[1].Name() != "Inbox" {
		t.Fatalf("expected root > Inbox, got %d containers", len(chain))
	}
	if root.Len() != 2 || root.Switcher() != root {
		t.Fatalf("expected root to switch between two lists")
	}
	if root.HeaderState() != header.Visible || root.MaxHeaderHeight() != 5 {
		t.Fatalf("expected expanded root header")
	}
	root.Select(1)
	if root.Leaf().Name() != "Archive" || root.Leaf().ShouldCollapse() {
		t.Fatalf("expected pinned Archive leaf")
	}
}
