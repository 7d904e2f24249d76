package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"time"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid layout")

// Layout describes a tree of header containers and how they animate.
//
//	{"deceleration": {"rate": 0.998, "stopThreshold": 0.1},
//	 "root": {"title": "Mail", "maxHeaderHeight": 5, "children": [...]}}
type Layout struct {
	Deceleration Deceleration `json:"deceleration"`
	// FrameIntervalMS is the animation tick period. Zero means 16ms.
	FrameIntervalMS int     `json:"frameIntervalMs,omitempty"`
	WheelStep       float64 `json:"wheelStep,omitempty"`
	Settle          bool    `json:"settle,omitempty"`
	Root            Node    `json:"root"`
}

// Deceleration holds the inertial curve parameters. Zero values pick the
// curve defaults.
type Deceleration struct {
	Rate          float64 `json:"rate,omitempty"`
	StopThreshold float64 `json:"stopThreshold,omitempty"`
}

// Node is one container. A node with children stacks them as switchable
// content; a node without children holds a list of Rows rows.
type Node struct {
	Title           string  `json:"title"`
	Subtitle        string  `json:"subtitle,omitempty"`
	MaxHeaderHeight float64 `json:"maxHeaderHeight"`
	// ShouldCollapse defaults to true when omitted.
	ShouldCollapse *bool  `json:"shouldCollapse,omitempty"`
	Rows           int    `json:"rows,omitempty"`
	Children       []Node `json:"children,omitempty"`
}

// Collapses reports the effective shouldCollapse flag.
func (n Node) Collapses() bool {
	return n.ShouldCollapse == nil || *n.ShouldCollapse
}

// FrameInterval returns the configured tick period.
func (l *Layout) FrameInterval() time.Duration {
	return time.Duration(l.FrameIntervalMS) * time.Millisecond
}

// Default is a two-level layout: an outer header over two tabs, each with
// its own header and list.
func Default() *Layout {
	return &Layout{
		Deceleration:    Deceleration{Rate: 0.998, StopThreshold: 0.1},
		FrameIntervalMS: 16,
		WheelStep:       1,
		Settle:          true,
		Root: Node{
			Title:           "headerscroll",
			Subtitle:        "drag, wheel or j/k; tab switches lists",
			MaxHeaderHeight: 5,
			Children: []Node{
				{Title: "Inbox", Subtitle: "unread first", MaxHeaderHeight: 3, Rows: 60},
				{Title: "Archive", Subtitle: "pinned header", MaxHeaderHeight: 3, ShouldCollapse: boolPtr(false), Rows: 40},
			},
		},
	}
}

func boolPtr(b bool) *bool { return &b }

func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a JSON layout.
func Parse(data []byte) (*Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse config JSON: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

func Save(path string, l *Layout) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// Validate reports the first field that is out of range.
func (l *Layout) Validate() error {
	if r := l.Deceleration.Rate; r != 0 && !(r > 0 && r < 1) {
		return invalid("deceleration.rate", "must be in (0, 1), got %v", r)
	}
	if s := l.Deceleration.StopThreshold; s < 0 || math.IsNaN(s) {
		return invalid("deceleration.stopThreshold", "must be >= 0, got %v", s)
	}
	if l.FrameIntervalMS < 0 {
		return invalid("frameIntervalMs", "must be >= 0, got %d", l.FrameIntervalMS)
	}
	if l.WheelStep < 0 || math.IsNaN(l.WheelStep) {
		return invalid("wheelStep", "must be >= 0, got %v", l.WheelStep)
	}
	return l.Root.validate("root")
}

func (n Node) validate(path string) error {
	if n.Title == "" {
		return invalid(path+".title", "must not be empty")
	}
	if h := n.MaxHeaderHeight; h < 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return invalid(path+".maxHeaderHeight", "must be a finite value >= 0, got %v", h)
	}
	if n.Rows < 0 {
		return invalid(path+".rows", "must be >= 0, got %d", n.Rows)
	}
	if n.Rows > 0 && len(n.Children) > 0 {
		return invalid(path, "rows and children are mutually exclusive")
	}
	for i, child := range n.Children {
		if err := child.validate(fmt.Sprintf("%s.children[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func invalid(path, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalid, path, fmt.Sprintf(format, args...))
}
