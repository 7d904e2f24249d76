package header

// State is the derived expansion state of a collapsible header.
type State int

const (
	Hidden State = iota
	InProgress
	Visible
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case InProgress:
		return "inProgress"
	case Visible:
		return "visible"
	default:
		return "unknown"
	}
}

// Classify maps a header height onto its State. Heights outside [0, max]
// resolve to the nearest bound; NaN is treated as hidden.
func Classify(height, max float64) State {
	switch {
	case !(height > 0):
		return Hidden
	case height >= max:
		return Visible
	default:
		return InProgress
	}
}

// Clamp bounds height to [0, max].
func Clamp(height, max float64) float64 {
	if !(height > 0) {
		return 0
	}
	if height > max {
		return max
	}
	return height
}
