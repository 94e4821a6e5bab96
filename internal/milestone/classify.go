package milestone

import (
	"fmt"
	"math"
)

// State is the render state of a single milestone.
type State int

const (
	Pending State = iota
	Active
	Done
)

var stateNames = [...]string{
	Pending: "pending",
	Active:  "active",
	Done:    "done",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// MarshalText encodes the state by name so frames read well as JSON.
func (s State) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(stateNames) {
		return nil, fmt.Errorf("unknown milestone state %d", int(s))
	}
	return []byte(stateNames[s]), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown milestone state %q", text)
}

// Classify resolves the marker state of m at the given progress.
// It looks at nothing but its arguments, so milestones classify independently.
func Classify(progress float64, m Milestone) State {
	switch {
	case m.Completed,
		progress > m.Position,
		progress >= m.Position && m.Position == 1.0:
		return Done
	case math.Abs(progress-m.Position) < Epsilon && m.Position < 1.0:
		return Active
	default:
		return Pending
	}
}

// LabelEmphasized reports whether the label is drawn in the emphasized color.
// The band is one Epsilon wider than Active on the approach side, so label
// color changes just before the marker does.
func LabelEmphasized(progress float64, m Milestone) bool {
	return Classify(progress, m) == Done || progress >= m.Position-Epsilon
}

// FilledRight is the right edge of the filled part of the track.
// An empty layout returns 0.
func FilledRight(l Layout, progress float64) float64 {
	if l.Empty() {
		return 0
	}
	right := l.TrackLeft + l.TrackWidth()*Clamp01(progress)
	return math.Min(right, l.TrackRight)
}
