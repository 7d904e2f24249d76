package config

import (
	"math"

	"headerscroll/internal/scroll/container"
	"headerscroll/internal/scroll/driver"
	"headerscroll/internal/tui/util"
	"headerscroll/internal/tui/views/list"
	"headerscroll/internal/tui/widgets/banner"
)

// BuildOptions carries the runtime hooks a layout cannot express.
type BuildOptions struct {
	NoColor bool
	Logf    func(format string, args ...any)
	// OnPhase is installed on every container's driver.
	OnPhase func(name string, from, to driver.Phase)
}

// Build turns the layout into a container tree and returns its root.
func (l *Layout) Build(opts BuildOptions) *container.Container {
	return l.build(l.Root, opts)
}

func (l *Layout) build(n Node, opts BuildOptions) *container.Container {
	dopts := driver.Options{
		Rate:          l.Deceleration.Rate,
		StopThreshold: l.Deceleration.StopThreshold,
		FrameInterval: l.FrameInterval(),
		Logf:          opts.Logf,
	}
	if opts.OnPhase != nil {
		name := n.Title
		dopts.OnPhase = func(from, to driver.Phase) { opts.OnPhase(name, from, to) }
	}
	c := container.New(container.Options{
		Name:      n.Title,
		WheelStep: l.WheelStep,
		Settle:    l.Settle,
		Driver:    dopts,
	})
	rows := int(math.Round(n.MaxHeaderHeight))
	c.AttachHeader(banner.New(n.Title, n.Subtitle, rows, util.DefaultPalette(), opts.NoColor), n.MaxHeaderHeight, n.Collapses())
	if len(n.Children) == 0 {
		c.AttachScrollable(list.New(n.Title, n.Rows))
		return c
	}
	for _, child := range n.Children {
		c.AttachScrollable(l.build(child, opts))
	}
	c.Select(0)
	return c
}
