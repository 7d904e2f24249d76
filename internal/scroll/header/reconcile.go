package header

// Action says where a single offset delta goes.
type Action int

const (
	// Suppress leaves the header untouched and hands the delta on unchanged.
	Suppress Action = iota
	// ResizeHeader absorbs the delta into the header height.
	ResizeHeader
	// PassThroughToScroll leaves the header untouched and scrolls the content.
	PassThroughToScroll
)

func (a Action) String() string {
	switch a {
	case Suppress:
		return "suppress"
	case ResizeHeader:
		return "resize"
	case PassThroughToScroll:
		return "passthrough"
	default:
		return "unknown"
	}
}

// Input is the local view a container has when a delta arrives.
type Input struct {
	Height    float64
	MaxHeight float64
	// Parent is nil unless the container is nested and its parent collapses.
	Parent         *State
	ShouldCollapse bool
	// ScrollAtTop reports whether the content sits at its top offset.
	ScrollAtTop bool
}

// Decision is the outcome of Reconcile. Height and ScrollToTop are only
// meaningful for ResizeHeader.
type Decision struct {
	Action      Action
	Height      float64
	ScrollToTop bool
}

// Route applies the parent/child decision table. Rows are evaluated in order;
// positive deltas collapse the header, negative deltas expand it.
func Route(delta float64, local State, parent *State, shouldCollapse bool) Action {
	if !shouldCollapse {
		return Suppress
	}
	if parent == nil {
		return ResizeHeader
	}
	p := *parent
	switch {
	case p == Hidden && local == InProgress:
		return ResizeHeader
	case p == Visible && local == Visible:
		return Suppress
	case p == InProgress:
		return Suppress
	case local == Visible && delta < 0:
		return Suppress
	default:
		return ResizeHeader
	}
}

// Resize computes the header height after absorbing delta.
//
// The header never grows while the content is scrolled away from its top.
// Otherwise heights past either bound clamp to it, and an in-range height
// pins the content to its top so the delta is not consumed twice.
func Resize(height, max, delta float64, scrollAtTop bool) (newHeight float64, scrollToTop bool) {
	if delta <= 0 && !scrollAtTop {
		return height, false
	}
	next := height - delta
	switch {
	case next <= 0:
		return 0, false
	case next > max:
		return max, false
	default:
		return next, true
	}
}

// Reconcile decides what a single delta does to a container. A resize that
// leaves the height unchanged is reported as PassThroughToScroll, so one
// delta never both moves the header and scrolls the content.
func Reconcile(delta float64, in Input) Decision {
	current := Clamp(in.Height, in.MaxHeight)
	action := Route(delta, Classify(current, in.MaxHeight), in.Parent, in.ShouldCollapse)
	if action != ResizeHeader {
		return Decision{Action: action}
	}
	next, toTop := Resize(current, in.MaxHeight, delta, in.ScrollAtTop)
	if next == current {
		return Decision{Action: PassThroughToScroll}
	}
	return Decision{Action: ResizeHeader, Height: next, ScrollToTop: toTop}
}
