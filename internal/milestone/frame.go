package milestone

// Item is the per-milestone output handed to a renderer.
type Item struct {
	Label      string  `json:"label"`
	CenterX    float64 `json:"center_x"`
	State      State   `json:"state"`
	Emphasized bool    `json:"emphasized"`
	Radius     float64 `json:"radius"`
}

// Frame is everything a renderer needs to paint one pass.
type Frame struct {
	Version     uint64  `json:"version"`
	Progress    float64 `json:"progress"`
	Layout      Layout  `json:"layout"`
	FilledRight float64 `json:"filled_right"`
	Items       []Item  `json:"items"`
}

// Empty reports whether the frame has no milestones. Renderers draw nothing
// for an empty frame.
func (f Frame) Empty() bool {
	return len(f.Items) == 0
}

// ComputeFrame lays out and classifies a snapshot. It is pure: the same
// snapshot, viewport and measurer always give the same frame.
func ComputeFrame(snap Snapshot, vp Viewport, m LabelMeasurer) Frame {
	frame := Frame{
		Version:  snap.Version,
		Progress: snap.Progress,
	}
	if len(snap.Milestones) == 0 {
		return frame
	}

	frame.Layout = Solve(snap.Milestones, vp, m)
	frame.FilledRight = FilledRight(frame.Layout, snap.Progress)

	frame.Items = make([]Item, len(snap.Milestones))
	for i, ms := range snap.Milestones {
		state := Classify(snap.Progress, ms)
		radius := vp.SmallMarkerRadius
		if state != Pending {
			radius = vp.MarkerRadius
		}
		frame.Items[i] = Item{
			Label:      ms.Label,
			CenterX:    frame.Layout.Centers[i],
			State:      state,
			Emphasized: LabelEmphasized(snap.Progress, ms),
			Radius:     radius,
		}
	}
	return frame
}
