// Package milestone computes the geometry and render state of a horizontal
// progress track annotated with milestones.
//
// Everything here is pure data and pure functions except Store and Driver,
// which own the mutable progress value. None of the types are safe for
// concurrent use; hosts that run on several goroutines serialize access
// through a single owner (see internal/view).
package milestone

import (
	"math"
	"sort"
)

// Epsilon is the tolerance used for the Active marker band and the label
// emphasis lead-in.
const Epsilon = 0.01

// Milestone is a labeled point on the track. Position runs from 0.0 to 1.0.
// Completed is an externally asserted completion flag, e.g. a historical
// record; Store.SetProgress re-derives it from progress.
type Milestone struct {
	Position  float64 `json:"position" yaml:"position"`
	Label     string  `json:"label" yaml:"label"`
	Completed bool    `json:"completed,omitempty" yaml:"completed,omitempty"`
}

// Clamp01 limits v to [0,1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// normalize returns a sorted copy of list with positions clamped.
// The sort is stable so milestones sharing a position keep their input order.
func normalize(list []Milestone) []Milestone {
	if len(list) == 0 {
		return nil
	}
	out := make([]Milestone, len(list))
	for i, m := range list {
		m.Position = Clamp01(m.Position)
		out[i] = m
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out
}
