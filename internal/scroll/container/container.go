// Package container composes a collapsible header and scrollable content into
// one unit that can itself be nested as content of another container.
//
// Deltas enter at the innermost active container. Each container reconciles
// the delta against its own header and, when nested, its parent's header
// state. Whatever its header declines and its content cannot scroll is
// emitted upward on a single-slot signal the parent subscribes to when the
// child is attached.
package container

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"headerscroll/internal/scroll/curve"
	"headerscroll/internal/scroll/driver"
	"headerscroll/internal/scroll/header"
)

// Scrollable is content with a vertical scroll position.
type Scrollable interface {
	// ScrollBy moves the content by delta rows and returns the part it could
	// not absorb at either edge.
	ScrollBy(delta float64) float64
	ScrollToTop()
	AtTop() bool
}

// Content is a Scrollable that can render itself.
type Content interface {
	Scrollable
	View(width, height int) string
}

// HeaderView renders header content into the visible header rows.
type HeaderView interface {
	View(width, height int) string
}

// HeaderStateProvider exposes a container's derived header state read-only.
type HeaderStateProvider interface {
	HeaderState() header.State
	ShouldCollapse() bool
}

// DeltaSource exposes deltas a container did not consume.
type DeltaSource interface {
	OnUnconsumed(fn func(delta float64)) (cancel func())
}

// Options configures a Container.
type Options struct {
	Name string
	// WheelStep is the number of rows one wheel notch scrolls.
	WheelStep float64
	// Settle springs a partly collapsed header to the nearer bound once a
	// gesture ends.
	Settle bool
	Driver driver.Options
}

// Container is a collapsible header above scrollable content.
type Container struct {
	id        string
	name      string
	wheelStep float64
	settle    bool
	logf      func(format string, args ...any)

	view           HeaderView
	height         float64
	maxHeight      float64
	shouldCollapse bool

	parent   HeaderStateProvider
	children []Content
	unsubs   []func()
	active   int

	deltas     Emitter
	driver     *driver.Driver
	last       header.Decision
	overscroll float64
}

var (
	_ Content             = (*Container)(nil)
	_ HeaderStateProvider = (*Container)(nil)
	_ DeltaSource         = (*Container)(nil)
	_ driver.Settler      = (*Container)(nil)
)

// New returns an empty container with no header and no content.
func New(opts Options) *Container {
	c := &Container{
		id:             uuid.NewString(),
		name:           opts.Name,
		wheelStep:      opts.WheelStep,
		settle:         opts.Settle,
		shouldCollapse: true,
		active:         -1,
		logf:           opts.Driver.Logf,
	}
	if c.wheelStep <= 0 {
		c.wheelStep = 1
	}
	if c.logf == nil {
		c.logf = func(string, ...any) {}
	}
	dopts := opts.Driver
	dopts.Offset = c.contentOffset
	if opts.Settle {
		dopts.Settler = c
	}
	dopts.OnRest = c.settleParent
	c.driver = driver.New(c.id, c.Handle, dopts)
	return c
}

// AttachHeader installs the header content. The header starts fully expanded.
func (c *Container) AttachHeader(view HeaderView, maxHeight float64, shouldCollapse bool) {
	if maxHeight < 0 {
		maxHeight = 0
	}
	c.view = view
	c.maxHeight = maxHeight
	c.height = maxHeight
	c.shouldCollapse = shouldCollapse
}

// AttachScrollable adds content below the header and makes it active. A
// nested *Container gets this container as its read-only parent and has its
// unconsumed deltas routed into Handle.
func (c *Container) AttachScrollable(content Content) {
	var unsub func()
	if sub, ok := content.(*Container); ok {
		if sub == c || sub.parent != nil || c.hasAncestor(sub) {
			panic("container: content is already part of a container tree")
		}
		sub.parent = c
		unsub = sub.OnUnconsumed(c.Handle)
	}
	c.children = append(c.children, content)
	c.unsubs = append(c.unsubs, unsub)
	c.active = len(c.children) - 1
}

// Select makes the i-th attached content active, cancelling any interaction
// running in the previously active branch.
func (c *Container) Select(i int) bool {
	if i < 0 || i >= len(c.children) || i == c.active {
		return false
	}
	for _, x := range c.Chain()[1:] {
		x.driver.Cancel()
	}
	c.active = i
	return true
}

// Remove detaches the i-th content. A nested container is released from its
// parent and stops routing deltas here.
func (c *Container) Remove(i int) bool {
	if i < 0 || i >= len(c.children) {
		return false
	}
	if i == c.active {
		for _, x := range c.Chain()[1:] {
			x.driver.Cancel()
		}
	}
	if unsub := c.unsubs[i]; unsub != nil {
		unsub()
	}
	if sub, ok := c.children[i].(*Container); ok {
		sub.parent = nil
	}
	c.children = append(c.children[:i], c.children[i+1:]...)
	c.unsubs = append(c.unsubs[:i], c.unsubs[i+1:]...)
	switch {
	case len(c.children) == 0:
		c.active = -1
	case c.active >= i && c.active > 0:
		c.active--
	}
	return true
}

// Active returns the index of the active content, or -1.
func (c *Container) Active() int { return c.active }

// Len is the number of attached contents.
func (c *Container) Len() int { return len(c.children) }

// Handle routes one offset delta through the reconciler.
func (c *Container) Handle(delta float64) {
	if delta == 0 {
		return
	}
	d := header.Reconcile(delta, c.input())
	c.last = d
	c.logf("%s: delta %.2f height %.2f -> %s", c.name, delta, c.height, d.Action)
	switch d.Action {
	case header.ResizeHeader:
		c.height = d.Height
		if d.ScrollToTop {
			c.ScrollToTop()
		}
	case header.PassThroughToScroll:
		if rest := c.ScrollBy(delta); rest != 0 {
			c.remainder(rest)
		}
	case header.Suppress:
		if c.deltas.Emit(delta) {
			return
		}
		if rest := c.ScrollBy(delta); rest != 0 {
			c.remainder(rest)
		}
	}
}

// remainder offers what the content could not scroll to this container's
// own header once more, now that the content sits at its edge. Only what the
// header refuses as well travels upward.
func (c *Container) remainder(rest float64) {
	d := header.Reconcile(rest, c.input())
	if d.Action != header.ResizeHeader {
		c.unconsumed(rest)
		return
	}
	c.last = d
	c.logf("%s: remainder %.2f height %.2f -> %.2f", c.name, rest, c.height, d.Height)
	c.height = d.Height
	if d.ScrollToTop {
		c.ScrollToTop()
	}
}

func (c *Container) unconsumed(delta float64) {
	if c.deltas.Emit(delta) {
		return
	}
	if delta < 0 {
		c.overscroll += delta
	}
}

func (c *Container) input() header.Input {
	in := header.Input{
		Height:         c.height,
		MaxHeight:      c.maxHeight,
		ShouldCollapse: c.shouldCollapse,
		ScrollAtTop:    c.AtTop(),
	}
	if c.parent != nil && c.parent.ShouldCollapse() {
		s := c.parent.HeaderState()
		in.Parent = &s
	}
	return in
}

// Gesture feeds a pan gesture to the innermost active container. A new
// gesture stops any settle still running further up the chain.
func (c *Container) Gesture(g driver.Gesture) tea.Cmd {
	chain := c.Chain()
	leaf := chain[len(chain)-1]
	if g.Phase == driver.GestureBegan {
		for _, x := range chain[:len(chain)-1] {
			x.driver.Cancel()
		}
	}
	cmd := leaf.driver.Gesture(g)
	c.relax()
	return cmd
}

// ScrollInput applies a delta that did not come from a pan, such as a wheel
// notch or a key press. It stops any running animation first.
func (c *Container) ScrollInput(delta float64) {
	chain := c.Chain()
	for _, x := range chain {
		x.driver.Cancel()
	}
	chain[len(chain)-1].Handle(delta)
	c.relax()
}

// Cancel stops every drag or animation along the active path.
func (c *Container) Cancel() {
	for _, x := range c.Chain() {
		x.driver.Cancel()
	}
	c.relax()
}

// Update handles mouse input and animation frames for the whole tree.
func (c *Container) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		leaf := c.Leaf()
		if delta, ok := driver.WheelDelta(msg, leaf.wheelStep); ok {
			c.ScrollInput(delta)
			return nil
		}
		if g, ok := driver.FromMouse(msg, time.Now()); ok {
			return c.Gesture(g)
		}
	case driver.FrameMsg:
		return c.Frame(msg)
	}
	return nil
}

// Frame delivers an animation frame to the driver it is addressed to.
func (c *Container) Frame(msg driver.FrameMsg) tea.Cmd {
	defer c.relax()
	for _, x := range c.Chain() {
		if x.id == msg.ID {
			return x.driver.Frame(msg)
		}
	}
	return nil
}

// NextFrame returns the frame message an animating driver in the active
// chain is waiting for.
func (c *Container) NextFrame(at time.Time) (driver.FrameMsg, bool) {
	for _, x := range c.Chain() {
		if msg, ok := x.driver.Next(at); ok {
			return msg, true
		}
	}
	return driver.FrameMsg{}, false
}

// Animating reports whether any container in the active chain is animating.
func (c *Container) Animating() bool {
	_, ok := c.NextFrame(time.Time{})
	return ok
}

// relax drops accumulated overscroll once the drag that produced it is over.
func (c *Container) relax() {
	if c.overscroll != 0 && c.Leaf().driver.Phase() != driver.Dragging {
		c.overscroll = 0
	}
}

// Chain returns this container followed by every nested container along the
// active content path.
func (c *Container) Chain() []*Container {
	chain := []*Container{c}
	for x := c; ; {
		sub, ok := x.content().(*Container)
		if !ok {
			return chain
		}
		chain = append(chain, sub)
		x = sub
	}
}

// Leaf returns the innermost container on the active path.
func (c *Container) Leaf() *Container {
	chain := c.Chain()
	return chain[len(chain)-1]
}

// Content returns the active content, or nil.
func (c *Container) Content() Content { return c.content() }

// Switcher returns the innermost container on the active path that has more
// than one content to choose from, or nil.
func (c *Container) Switcher() *Container {
	chain := c.Chain()
	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i].Len() > 1 {
			return chain[i]
		}
	}
	return nil
}

func (c *Container) content() Content {
	if c.active < 0 {
		return nil
	}
	return c.children[c.active]
}

func (c *Container) hasAncestor(x *Container) bool {
	for p, ok := c.parent.(*Container); ok && p != nil; p, ok = p.parent.(*Container) {
		if p == x {
			return true
		}
	}
	return false
}

// ScrollBy scrolls the active content without touching the header.
func (c *Container) ScrollBy(delta float64) float64 {
	if content := c.content(); content != nil {
		return content.ScrollBy(delta)
	}
	return delta
}

func (c *Container) ScrollToTop() {
	if content := c.content(); content != nil {
		content.ScrollToTop()
	}
}

func (c *Container) AtTop() bool {
	if content := c.content(); content != nil {
		return content.AtTop()
	}
	return true
}

// OnUnconsumed subscribes to deltas this container hands upward.
func (c *Container) OnUnconsumed(fn func(delta float64)) (cancel func()) {
	return c.deltas.Subscribe(fn)
}

func (c *Container) HeaderState() header.State {
	return header.Classify(c.height, c.maxHeight)
}

func (c *Container) ShouldCollapse() bool { return c.shouldCollapse }

func (c *Container) HeaderHeight() float64 { return c.height }

func (c *Container) MaxHeaderHeight() float64 { return c.maxHeight }

func (c *Container) Name() string { return c.name }

func (c *Container) ID() string { return c.id }

// Phase is the state of this container's own driver.
func (c *Container) Phase() driver.Phase { return c.driver.Phase() }

// LastDecision is the most recent reconciler outcome.
func (c *Container) LastDecision() header.Decision { return c.last }

// Overscroll is the pull past the top that no container absorbed during the
// current drag.
func (c *Container) Overscroll() float64 { return c.overscroll }

func (c *Container) contentOffset() float64 {
	return c.maxHeight - c.height
}

// settleParent hands the settle over to the parent once this container's
// interaction ended with its own header at rest. Each container settles only
// its own header, through its own driver, so the request climbs the chain
// until one is left part way.
func (c *Container) settleParent() tea.Cmd {
	if p, ok := c.parent.(*Container); ok && p != nil {
		return p.driver.Settle()
	}
	return nil
}

// SettleTarget picks the nearer bound for a header left part way.
func (c *Container) SettleTarget() (from, to float64, ok bool) {
	if !c.settle || c.HeaderState() != header.InProgress {
		return 0, 0, false
	}
	if c.height < c.maxHeight/2 {
		return c.height, 0, true
	}
	return c.height, c.maxHeight, true
}

// SettleTo sets the header height directly, bypassing the reconciler.
func (c *Container) SettleTo(height float64) {
	c.height = header.Clamp(height, c.maxHeight)
}

// View renders the header rows followed by the content.
func (c *Container) View(width, height int) string {
	if height <= 0 {
		return ""
	}
	var parts []string
	if gap := c.overscrollRows(height); gap > 0 {
		parts = append(parts, blank(gap))
		height -= gap
	}
	rows := int(math.Round(c.height))
	if rows > height {
		rows = height
	}
	if rows > 0 {
		if c.view != nil {
			parts = append(parts, c.view.View(width, rows))
		} else {
			parts = append(parts, blank(rows))
		}
	}
	if rest := height - rows; rest > 0 {
		if content := c.content(); content != nil {
			parts = append(parts, content.View(width, rest))
		} else {
			parts = append(parts, blank(rest))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (c *Container) overscrollRows(height int) int {
	if c.overscroll >= 0 {
		return 0
	}
	gap := curve.RubberBand(-c.overscroll, float64(height)/4, curve.RubberBandCoefficient)
	return int(math.Round(gap))
}

func blank(rows int) string {
	return strings.Repeat("\n", rows-1)
}
