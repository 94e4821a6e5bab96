package milestone

import "math"

// Viewport carries the host metrics needed to lay out one frame.
// Units are whatever the host draws in: pixels for SVG/PNG, cells for a terminal.
type Viewport struct {
	Width             float64 `json:"width" yaml:"width"`
	Height            float64 `json:"height" yaml:"height"`
	PaddingLeft       float64 `json:"padding_left" yaml:"padding_left"`
	PaddingRight      float64 `json:"padding_right" yaml:"padding_right"`
	MarkerRadius      float64 `json:"marker_radius" yaml:"marker_radius"`             // big marker: done / active
	SmallMarkerRadius float64 `json:"small_marker_radius" yaml:"small_marker_radius"` // pending marker
	BarHeight         float64 `json:"bar_height" yaml:"bar_height"`
	Spacing           float64 `json:"spacing" yaml:"spacing"`
}

// LabelMeasurer reports the rendered width of a label in viewport units.
type LabelMeasurer interface {
	Measure(label string) float64
}

// MeasureFunc adapts a plain function to LabelMeasurer.
type MeasureFunc func(label string) float64

// Measure implements LabelMeasurer.
func (f MeasureFunc) Measure(label string) float64 {
	if f == nil {
		return 0
	}
	return f(label)
}

// Layout is the geometry of one frame. Centers has one entry per milestone,
// in store order. The zero Layout is the empty frame.
type Layout struct {
	TrackLeft  float64   `json:"track_left"`
	TrackRight float64   `json:"track_right"`
	Centers    []float64 `json:"centers"`
}

// Empty reports whether there is nothing to draw.
func (l Layout) Empty() bool {
	return len(l.Centers) == 0
}

// TrackWidth is the drawn length of the track. Zero for a single milestone.
func (l Layout) TrackWidth() float64 {
	return l.TrackRight - l.TrackLeft
}

// Solve maps milestone positions to horizontal centers.
//
// Centers start proportional inside the area left after padding and marker
// radius, then get clamped so each label stays inside the padding. Near the
// ends wide labels win over strict linear spacing. The track runs between the
// first and last final centers, never to the raw viewport edges.
//
// Each label's clamp gives its center an allowed interval. Lower bounds are
// carried forward and upper bounds carried backward, so a center pulled left
// by a wide label near the right edge drags earlier centers with it instead
// of being pushed back past the padding. Centers come out non-decreasing.
// When a label is wider than the padded area it is centered in that area. A
// viewport narrower than its padding collapses everything onto PaddingLeft.
func Solve(milestones []Milestone, vp Viewport, m LabelMeasurer) Layout {
	if len(milestones) == 0 {
		return Layout{}
	}
	if m == nil {
		m = MeasureFunc(nil)
	}

	guardLeft := finite(vp.PaddingLeft)
	guardRight := math.Max(guardLeft, finite(vp.Width)-finite(vp.PaddingRight))
	radius := math.Max(0, finite(vp.MarkerRadius))

	usableLeft := guardLeft + radius
	usableRight := guardRight - radius
	usableWidth := math.Max(0, usableRight-usableLeft)

	n := len(milestones)
	target := make([]float64, n)
	lo := make([]float64, n)
	hi := make([]float64, n)
	for i, ms := range milestones {
		half := math.Max(0, finite(m.Measure(ms.Label))) / 2
		lo[i], hi[i] = guardLeft+half, guardRight-half
		if lo[i] > hi[i] {
			mid := (guardLeft + guardRight) / 2
			lo[i], hi[i] = mid, mid
		}
		target[i] = usableLeft + usableWidth*Clamp01(ms.Position)
	}
	for i := 1; i < n; i++ {
		lo[i] = math.Max(lo[i], lo[i-1])
	}
	for i := n - 2; i >= 0; i-- {
		hi[i] = math.Min(hi[i], hi[i+1])
	}

	centers := make([]float64, n)
	for i := range centers {
		if lo[i] > hi[i] {
			// labels cannot all fit in order; split the conflict
			centers[i] = (lo[i] + hi[i]) / 2
			continue
		}
		centers[i] = math.Min(math.Max(target[i], lo[i]), hi[i])
	}

	return Layout{
		TrackLeft:  centers[0],
		TrackRight: centers[n-1],
		Centers:    centers,
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
